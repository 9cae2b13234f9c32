package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/scale-sheets/internal/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "scales",
	Short: "Typeset scale practice sheets with LilyPond",
	Long: `scales - generate scale practice sheets.

Each key becomes one LilyPond document holding its major scale and the
scale of its relative minor. The document is compiled to PDF and MIDI with
lilypond and can be rasterized to PNG with pdftoppm.

Settings come from a JSON or YAML file (--config); flags override them.

Examples:
  # The classic sheet: C major and A minor, two octaves
  scales generate c

  # Several keys, harmonic minor, three octaves, with PNG pages
  scales generate g d bb --types major,harmonic_minor --octaves 3 --rasterize

  # Just look at the notes
  scales notes f# --type major --octaves 1`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(notesCmd)
	rootCmd.AddCommand(relativeCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(configCmd)
}

// loadSettings returns the settings file given by --config, or the
// defaults.
func loadSettings() (*config.Settings, error) {
	if configPath == "" {
		return config.DefaultSettings(), nil
	}
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return settings, nil
}
