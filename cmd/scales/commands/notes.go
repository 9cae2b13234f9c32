package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/handiism/scale-sheets/internal/lilypond"
	"github.com/handiism/scale-sheets/internal/model"
	"github.com/handiism/scale-sheets/internal/theory"
)

var notesCmd = &cobra.Command{
	Use:   "notes <key>",
	Short: "Print the note sequence of a scale",
	Long: `Print the ascending and descending notes of one scale, each as a
quarter note.

Examples:
  scales notes c
  # c4 d4 e4 f4 g4 a4 b4 c4 d4 e4 f4 g4 a4 b4 c4 b4 a4 ...

  scales notes f# --type harmonic_minor --octaves 1 --lilypond
  # fis4 gis4 a4 b4 cis4 d4 f4 fis4 f4 d4 ...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}

		scaleType, _ := cmd.Flags().GetString("type")
		octaves, _ := cmd.Flags().GetInt("octaves")
		if !cmd.Flags().Changed("octaves") {
			octaves = settings.Octaves
		}
		if cmd.Flags().Changed("spelling") {
			settings.SpellingPolicy, _ = cmd.Flags().GetString("spelling")
		}

		out := cmd.OutOrStdout()
		resolver := theory.NewResolver(func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("! "+msg))
		})
		gen, err := settings.ToGenerator(resolver)
		if err != nil {
			return err
		}

		req := model.ScaleRequest{Key: args[0], ScaleType: scaleType, Octaves: octaves}
		seq, err := gen.Generate(req, gen.Table(req.Key))
		if err != nil {
			return err
		}

		asLilyPond, _ := cmd.Flags().GetBool("lilypond")
		if !asLilyPond {
			fmt.Fprintln(out, seq.String())
			return nil
		}

		opts, err := settings.ToFormatOptions()
		if err != nil {
			return err
		}
		st, _ := gen.ScaleType(scaleType)
		staff := model.NewStaff(st.Name, seq.Notes[0], st.Mode, seq)
		fmt.Fprintln(out, lilypond.NewFormatter(opts).Notes(staff))
		return nil
	},
}

func init() {
	notesCmd.Flags().StringP("type", "t", "major", "scale type (major, natural_minor, harmonic_minor)")
	notesCmd.Flags().IntP("octaves", "n", 2, "octaves (1-4)")
	notesCmd.Flags().String("spelling", "", "spelling policy (key, sharp, flat)")
	notesCmd.Flags().Bool("lilypond", false, "print LilyPond note names")
}
