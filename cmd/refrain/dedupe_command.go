package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"refrain/internal/dedupe"
)

func newDedupeCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Deduplicate downloaded tracks against the library and stage unique ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			outcome, err := dedupe.NewWorkflow(cfg, logger).Run(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, dedupeOutput{
					RunID:        outcome.RunID,
					Unique:       len(outcome.Unique),
					Duplicates:   len(outcome.Duplicates),
					Uncertain:    len(outcome.Uncertain),
					CopyFailures: outcome.CopyFailures,
					ReportPath:   outcome.ReportPath,
				})
			}

			out := cmd.OutOrStdout()
			rows := [][]string{
				{"Unique", strconv.Itoa(len(outcome.Unique))},
				{"Duplicates", strconv.Itoa(len(outcome.Duplicates))},
				{"Uncertain", strconv.Itoa(len(outcome.Uncertain))},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Outcome", "Tracks"}, rows,
				[]columnAlignment{alignLeft, alignRight}))

			// Interactive runs get a truncated listing; piped output gets
			// everything.
			limit := 0
			if isTerminal(out) {
				limit = 20
			}
			printDecisions(cmd, "Duplicates (left in downloads):", outcome.Duplicates, limit, func(d dedupe.TrackDecision) string {
				return fmt.Sprintf("  %s - %s (%.0f pts, matches %s)",
					d.Artist, d.Title, d.Score, filepath.Base(d.ExistingPath))
			})
			printDecisions(cmd, "Uncertain (staged for review):", outcome.Uncertain, limit, func(d dedupe.TrackDecision) string {
				return fmt.Sprintf("  %s - %s (%.0f pts)", d.Artist, d.Title, d.Score)
			})
			printDecisions(cmd, "Unique (staged for upload):", outcome.Unique, limit, func(d dedupe.TrackDecision) string {
				return fmt.Sprintf("  %s: %s - %s", d.ArtistFolder, d.Artist, d.Title)
			})

			if outcome.CopyFailures > 0 {
				fmt.Fprintf(out, "warning: %d staging copies failed, see the log\n", outcome.CopyFailures)
			}
			fmt.Fprintf(out, "Upload staging: %s\n", cfg.Paths.UploadDir)
			fmt.Fprintf(out, "Run report: %s\n", outcome.ReportPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run summary as JSON")
	return cmd
}

func printDecisions(cmd *cobra.Command, heading string, decisions []dedupe.TrackDecision, limit int, format func(dedupe.TrackDecision) string) {
	if len(decisions) == 0 {
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, heading)

	shown := decisions
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, decision := range shown {
		fmt.Fprintln(out, format(decision))
	}
	if rest := len(decisions) - len(shown); rest > 0 {
		fmt.Fprintf(out, "  ... and %d more\n", rest)
	}
}

type dedupeOutput struct {
	RunID        string `json:"run_id"`
	Unique       int    `json:"unique"`
	Duplicates   int    `json:"duplicates"`
	Uncertain    int    `json:"uncertain"`
	CopyFailures int    `json:"copy_failures"`
	ReportPath   string `json:"report_path"`
}
