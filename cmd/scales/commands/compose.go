package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	ioutils "github.com/handiism/scale-sheets/internal/io"
)

var composeCmd = &cobra.Command{
	Use:   "compose <left.png> <right.png>",
	Short: "Join two rendered pages side by side",
	Long: `Join two rendered pages side by side with their lowest staff lines
aligned, and write a caption below.

Examples:
  scales compose practice_c.png practice_g.png -o c_and_g.png
  scales compose a.png b.png -o out.png --gutter 40 --caption "Week 3"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			return fmt.Errorf("output file is required, use -o flag")
		}

		cfg := settings.ToCompositorConfig()
		if cmd.Flags().Changed("gutter") {
			cfg.Gutter, _ = cmd.Flags().GetInt("gutter")
		}
		if cmd.Flags().Changed("caption") {
			cfg.Caption, _ = cmd.Flags().GetString("caption")
		}
		if cmd.Flags().Changed("threshold") {
			threshold, _ := cmd.Flags().GetUint8("threshold")
			cfg.Threshold = threshold
		}

		compositor := ioutils.NewCompositor(cfg)
		if err := compositor.ComposeFiles(cmd.Context(), args[0], args[1], output); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Composite written: "+output))
		return nil
	},
}

func init() {
	composeCmd.Flags().StringP("output", "o", "", "output PNG file")
	composeCmd.Flags().Int("gutter", ioutils.DefaultGutter, "space between the pages in pixels")
	composeCmd.Flags().String("caption", ioutils.DefaultCaption, "caption below the pages")
	composeCmd.Flags().Uint8("threshold", ioutils.DefaultThreshold, "brightness below which a pixel is ink")
}
