package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"refrain/internal/lyrics"
)

func newMatchLyricsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match-lyrics",
		Short: "Match lyrics files against the song catalog and write the mapping CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			outcome, err := lyrics.NewWorkflow(cfg, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, lyricsOutput{
					RunID:      outcome.RunID,
					Matched:    outcome.Summary.Match,
					Review:     outcome.Summary.Review,
					NoMatch:    outcome.Summary.NoMatch,
					CSVPath:    outcome.CSVPath,
					ReportPath: outcome.ReportPath,
				})
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Matched", strconv.Itoa(outcome.Summary.Match)},
				{"Needs review", strconv.Itoa(outcome.Summary.Review)},
				{"No match", strconv.Itoa(outcome.Summary.NoMatch)},
				{"Total", strconv.Itoa(outcome.Summary.Total())},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Outcome", "Files"}, rows,
				[]columnAlignment{alignLeft, alignRight}))

			variantGroups := 0
			for _, group := range outcome.Groups {
				if group.Size() > 1 {
					variantGroups++
				}
			}
			if variantGroups > 0 {
				fmt.Fprintf(out, "%d songs have multiple lyrics variants\n", variantGroups)
			}
			for _, dir := range outcome.SkippedDirs {
				fmt.Fprintf(out, "warning: lyrics source %s does not exist\n", dir)
			}
			fmt.Fprintf(out, "Mapping written to %s\n", outcome.CSVPath)
			fmt.Fprintf(out, "Run report: %s\n", outcome.ReportPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run summary as JSON")
	return cmd
}

type lyricsOutput struct {
	RunID      string `json:"run_id"`
	Matched    int    `json:"matched"`
	Review     int    `json:"review"`
	NoMatch    int    `json:"no_match"`
	CSVPath    string `json:"csv_path"`
	ReportPath string `json:"report_path"`
}
