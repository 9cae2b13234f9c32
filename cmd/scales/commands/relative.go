package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/handiism/scale-sheets/internal/theory"
)

var relativeCmd = &cobra.Command{
	Use:   "relative [key...]",
	Short: "Print the relative minor of major keys",
	Long: `Print the relative minor of each major key. Without arguments all
15 standard major keys are listed.

Examples:
  scales relative g eb
  # g  -> e
  # eb -> c`,
	RunE: func(cmd *cobra.Command, args []string) error {
		keys := args
		if len(keys) == 0 {
			keys = theory.MajorKeys()
		}

		resolver := theory.NewResolver(func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("! "+msg))
		})

		width := 0
		for _, key := range keys {
			width = max(width, len(key))
		}

		out := cmd.OutOrStdout()
		for _, key := range keys {
			key = strings.ToLower(key)
			fmt.Fprintf(out, "%s -> %s\n", keyStyle.Render(fmt.Sprintf("%-*s", width, key)), resolver.RelativeMinor(key))
		}
		return nil
	},
}
