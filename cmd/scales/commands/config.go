package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/handiism/scale-sheets/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or show a settings file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default settings",
	Long: `Write the default settings to a file, scales.yaml by default.
The format follows the extension: .yaml/.yml for YAML, anything else JSON.

Examples:
  scales config init
  scales config init sheets.json --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "scales.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		if err := config.DefaultSettings().Save(path); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ Settings written: "+path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(settings)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
