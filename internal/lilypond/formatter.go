package lilypond

import (
	"fmt"
	"strings"

	"github.com/handiism/scale-sheets/internal/model"
	"github.com/handiism/scale-sheets/internal/theory"
)

// DefaultVersion is written to \version when no typesetter version is known.
const DefaultVersion = "2.22.0"

// Layout selects how the staves of a score are arranged.
//
// Each layout produces a single document; they differ in how many \score
// blocks it contains:
//   - Combined: one \score per scale, each with its own heading
//   - Single: one \score with every scale on one staff, separated by bar lines
type Layout int

const (
	// LayoutCombined writes one \score block per staff.
	LayoutCombined Layout = iota

	// LayoutSingle chains all staves into one \score block.
	LayoutSingle
)

// String returns "combined" or "single".
func (l Layout) String() string {
	if l == LayoutSingle {
		return "single"
	}
	return "combined"
}

// ParseLayout parses "combined" or "single". The empty string is LayoutCombined.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "combined":
		return LayoutCombined, nil
	case "single":
		return LayoutSingle, nil
	}
	return LayoutCombined, fmt.Errorf("unknown layout %q", s)
}

// Options controls the generated document.
type Options struct {
	// Version is written to the \version tag. Empty means DefaultVersion.
	Version string

	// Layout selects the score arrangement.
	Layout Layout

	// Tempo is the MIDI preview tempo in quarter notes per minute.
	Tempo int

	// DescendingSharps spells the descending run with sharps only.
	DescendingSharps bool

	// LineWidth is the line width in centimetres.
	LineWidth float64
}

// DefaultOptions returns the options of the classic combined practice sheet.
func DefaultOptions() Options {
	return Options{
		Version:   DefaultVersion,
		Layout:    LayoutCombined,
		Tempo:     60,
		LineWidth: 16,
	}
}

// Formatter renders scores as LilyPond source.
//
// The output always contains a \version tag, a \header with title and
// composer, a \paper block, a key signature, a 4/4 time signature and the
// note tokens for every staff, and \layout and \midi blocks so the
// typesetter produces both a PDF and a MIDI preview.
//
// Example:
//
//	f := NewFormatter(DefaultOptions())
//	src := f.Format(score)
//	os.WriteFile(score.SourcePath, []byte(src), 0644)
type Formatter struct {
	opts Options
}

// NewFormatter creates a Formatter. Zero option values fall back to
// DefaultOptions.
func NewFormatter(opts Options) *Formatter {
	def := DefaultOptions()
	if opts.Version == "" {
		opts.Version = def.Version
	}
	if opts.Tempo <= 0 {
		opts.Tempo = def.Tempo
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = def.LineWidth
	}
	return &Formatter{opts: opts}
}

// Format returns the LilyPond document for score.
func (f *Formatter) Format(score *model.Score) string {
	var sb strings.Builder

	f.writeHeader(&sb, score)

	switch f.opts.Layout {
	case LayoutSingle:
		f.writeSingle(&sb, score)
	default:
		for _, staff := range score.Staves {
			f.writeCombined(&sb, staff)
		}
	}

	return sb.String()
}

// Notes returns the staff's note tokens in LilyPond spelling.
func (f *Formatter) Notes(staff *model.Staff) string {
	if staff.Sequence == nil {
		return ""
	}
	return strings.Join(staff.Sequence.Tokens(f.spell), " ")
}

func (f *Formatter) spell(note string, descending bool) string {
	if descending && f.opts.DescendingSharps {
		return theory.ToTypesetterSharps(note)
	}
	return theory.ToTypesetterSpelling(note)
}

func (f *Formatter) writeHeader(sb *strings.Builder, score *model.Score) {
	pf(sb, "\\version %s\n\n", quote(f.opts.Version))

	pf(sb, "\\header {\n")
	pf(sb, "  title = %s\n", quote(score.Title))
	pf(sb, "  composer = %s\n", quote(score.Composer))
	pf(sb, "  tagline = ##f\n")
	pf(sb, "}\n\n")

	pf(sb, "\\paper {\n")
	pf(sb, "  top-margin = 1.5\\cm\n")
	pf(sb, "  bottom-margin = 1.5\\cm\n")
	pf(sb, "  left-margin = 2\\cm\n")
	pf(sb, "  right-margin = 2\\cm\n")
	pf(sb, "  indent = 0\n")
	pf(sb, "  line-width = %g\\cm\n", f.opts.LineWidth)
	pf(sb, "}\n")
}

// writeCombined writes a heading and a self-contained \score for one staff.
func (f *Formatter) writeCombined(sb *strings.Builder, staff *model.Staff) {
	pf(sb, "\n\\markup \\column {\n")
	pf(sb, "  \\center-column {\n")
	pf(sb, "    \\bold %s\n", quote(staff.Heading()))
	pf(sb, "  }\n")
	pf(sb, "}\n\n")

	pf(sb, "\\score {\n")
	pf(sb, "  \\new Staff {\n")
	pf(sb, "    \\relative %s' {\n", theory.ToTypesetterSpelling(staff.Tonic))
	pf(sb, "      %s\n", keySignature(staff))
	pf(sb, "      \\time 4/4\n\n")
	pf(sb, "      %s\n", f.Notes(staff))
	pf(sb, "    }\n")
	pf(sb, "  }\n\n")
	f.writeOutputs(sb)
	pf(sb, "}\n")
}

// writeSingle writes every staff into one \score, separated by double bars.
func (f *Formatter) writeSingle(sb *strings.Builder, score *model.Score) {
	pf(sb, "\n\\score {\n")
	pf(sb, "  \\new Staff {\n")
	pf(sb, "    \\time 4/4\n")
	for i, staff := range score.Staves {
		pf(sb, "    \\relative %s' {\n", theory.ToTypesetterSpelling(staff.Tonic))
		pf(sb, "      %s\n", keySignature(staff))
		pf(sb, "      \\mark \\markup \\bold %s\n", quote(staff.Heading()))
		pf(sb, "      %s\n", f.Notes(staff))
		if i == len(score.Staves)-1 {
			pf(sb, "      \\bar \"|.\"\n")
		} else {
			pf(sb, "      \\bar \"||\"\n")
		}
		pf(sb, "    }\n")
	}
	pf(sb, "  }\n\n")
	f.writeOutputs(sb)
	pf(sb, "}\n")
}

func (f *Formatter) writeOutputs(sb *strings.Builder) {
	pf(sb, "  \\layout {\n")
	pf(sb, "    indent = 0\n")
	pf(sb, "    ragged-right = ##t\n")
	pf(sb, "  }\n")
	pf(sb, "  \\midi {\n")
	pf(sb, "    \\tempo 4 = %d\n", f.opts.Tempo)
	pf(sb, "  }\n")
}

func keySignature(staff *model.Staff) string {
	return fmt.Sprintf("\\key %s \\%s", theory.ToTypesetterSpelling(staff.Tonic), staff.Mode)
}

func pf(sb *strings.Builder, format string, args ...any) {
	_, _ = fmt.Fprintf(sb, format, args...)
}

// quote returns s as a LilyPond string literal.
func quote(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	return "\"" + s + "\""
}
