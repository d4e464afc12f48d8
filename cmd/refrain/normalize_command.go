package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"refrain/internal/textnorm"
	"refrain/internal/translit"
)

// newNormalizeCommand shows how the engine sees a name: the transliteration
// and the final comparison key. Handy when a lyrics file refuses to match.
func newNormalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "normalize <text>...",
		Short:       "Show the transliteration and comparison key for text",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(args))
			for _, arg := range args {
				latin := arg
				if translit.HasCyrillic(arg) {
					latin = translit.Transliterate(arg)
				}
				rows = append(rows, []string{arg, latin, textnorm.Normalize(arg)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Input", "Latin", "Key"}, rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft}))
			return nil
		},
	}
}
