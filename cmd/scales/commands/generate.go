package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/handiism/scale-sheets/internal/config"
	"github.com/handiism/scale-sheets/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate [key...]",
	Short: "Typeset practice sheets",
	Long: `Typeset one practice sheet per key.

Keys are major keys such as c, f#, bb. Without arguments the keys of the
settings file are used. Existing .ly, .pdf, .png, thumbnail and MIDI
preview files of a sheet are deleted before it is generated again.

Examples:
  scales generate c
  scales generate c g d --octaves 1 --output sheets
  scales generate --config plan.yaml --jobs 4 --continue-on-error
  scales generate eb ab --rasterize --composite --playlist`,
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringSliceP("types", "t", nil, "scale types (major, natural_minor, harmonic_minor)")
	f.IntP("octaves", "n", 0, "octaves per scale (1-4)")
	f.StringP("output", "o", "", "output directory")
	f.String("base", "", "base file name")
	f.String("layout", "", "document layout (combined, single)")
	f.String("spelling", "", "spelling policy (key, sharp, flat)")
	f.Bool("relative", true, "start minor scales on the relative minor")
	f.Bool("rasterize", false, "render page one to PNG with pdftoppm")
	f.Bool("composite", false, "join rendered pages two by two")
	f.Bool("playlist", false, "write a playlist of the MIDI previews")
	f.Bool("detect-version", false, "use the installed LilyPond version in \\version")
	f.Bool("verify-midi", true, "check note count of the MIDI preview")
	f.Int("jobs", 0, "sheets rendered in parallel")
	f.Bool("continue-on-error", false, "keep going when a sheet fails")
	f.Bool("dry-run", false, "build the scales without running any tool")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	if len(args) > 0 {
		settings.Keys = args
	}
	if err := applyGenerateFlags(cmd, settings); err != nil {
		return err
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	manager, err := generate.NewManager(settings, nil, func(event generate.ProgressEvent) {
		if line := renderEvent(event, verbose); line != "" {
			fmt.Fprintln(out, line)
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("♪ Scale Sheets"))
	fmt.Fprintln(out, rule)

	if err := manager.Initialize(settings.Keys); err != nil {
		return err
	}
	for _, name := range manager.GetScoreNames() {
		fmt.Fprintln(out, keyStyle.Render("  ♪ "+name))
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(out, dimStyle.Render("\n[Dry run - not typesetting]"))
		return nil
	}
	fmt.Fprintln(out)

	if err := manager.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("cancelled: %w", err)
		}
		return err
	}

	done, total := manager.GetProgress()
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✨ Complete! %d/%d sheets in %s", done, total, settings.OutputDir)))
	return nil
}

// applyGenerateFlags copies every flag the user set onto settings.
func applyGenerateFlags(cmd *cobra.Command, settings *config.Settings) error {
	f := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && f.Changed(name) {
			err = apply()
		}
	}

	set("types", func() (e error) { settings.ScaleTypes, e = f.GetStringSlice("types"); return })
	set("octaves", func() (e error) { settings.Octaves, e = f.GetInt("octaves"); return })
	set("output", func() (e error) { settings.OutputDir, e = f.GetString("output"); return })
	set("base", func() (e error) { settings.BaseName, e = f.GetString("base"); return })
	set("layout", func() (e error) { settings.Layout, e = f.GetString("layout"); return })
	set("spelling", func() (e error) { settings.SpellingPolicy, e = f.GetString("spelling"); return })
	set("relative", func() (e error) { settings.RelativeMinor, e = f.GetBool("relative"); return })
	set("rasterize", func() (e error) { settings.Rasterize, e = f.GetBool("rasterize"); return })
	set("composite", func() (e error) { settings.Composite, e = f.GetBool("composite"); return })
	set("playlist", func() (e error) { settings.CreatePlaylist, e = f.GetBool("playlist"); return })
	set("detect-version", func() (e error) { settings.DetectVersion, e = f.GetBool("detect-version"); return })
	set("verify-midi", func() (e error) { settings.VerifyMIDI, e = f.GetBool("verify-midi"); return })
	set("jobs", func() (e error) { settings.MaxConcurrentJobs, e = f.GetInt("jobs"); return })
	set("continue-on-error", func() (e error) { settings.ContinueOnError, e = f.GetBool("continue-on-error"); return })

	// Compositing needs pages to composite.
	if err == nil && settings.Composite && !f.Changed("rasterize") {
		settings.Rasterize = true
	}
	return err
}
