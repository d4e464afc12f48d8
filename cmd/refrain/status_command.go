package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refrain/internal/deps"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show configured paths and external tool availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			pathRows := [][]string{
				{"Library DB", cfg.Paths.LibraryDB},
				{"Library dir", cfg.Paths.LibraryDir},
				{"Downloads", cfg.Paths.DownloadsDir},
				{"Upload", cfg.Paths.UploadDir},
				{"Reports", cfg.Paths.ReportDir},
				{"Logs", cfg.Paths.LogDir},
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Path", "Location"}, pathRows,
				[]columnAlignment{alignLeft, alignLeft}))

			toolRows := make([][]string, 0, 2)
			for _, status := range deps.CheckBinaries(deps.Required(cfg)) {
				detail := status.Detail
				if status.Available {
					detail = status.Description
				}
				toolRows = append(toolRows, []string{
					status.Name,
					status.Command,
					yesNo(status.Available),
					detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Tool", "Command", "Found", "Notes"}, toolRows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}
}
