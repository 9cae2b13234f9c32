package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/handiism/scale-sheets/internal/model"
)

// DefaultLilyPond is the typesetter executable looked up in PATH.
const DefaultLilyPond = "lilypond"

var versionPattern = regexp.MustCompile(`GNU LilyPond (\d+\.\d+(?:\.\d+)?)`)

// Artifacts are the files produced by one typesetter run.
type Artifacts struct {
	PDF string

	// MIDI holds one preview per \score block, in document order.
	MIDI []string
}

// Typesetter wraps the lilypond command line.
//
// Typesetter provides:
//   - Version probing (`lilypond --version`)
//   - Compilation of a .ly file into a PDF sheet and its MIDI previews
//
// Every failure (missing executable, non-zero exit, missing artifact or an
// unparseable version) is a model.KindExternalTool error.
//
// Example usage:
//
//	ts := NewTypesetter("", nil)
//	out, err := ts.Compile(ctx, "out/practice_c.ly", "out/practice_c")
//	// out.PDF = "out/practice_c.pdf"
//	// out.MIDI = ["out/practice_c.midi", "out/practice_c-1.midi"]
type Typesetter struct {
	path   string
	runner Runner
}

// NewTypesetter creates a Typesetter. An empty path means DefaultLilyPond;
// a nil runner means ExecRunner.
func NewTypesetter(path string, runner Runner) *Typesetter {
	if path == "" {
		path = DefaultLilyPond
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Typesetter{path: path, runner: runner}
}

// Version returns the installed LilyPond version, e.g. "2.24.1".
func (t *Typesetter) Version(ctx context.Context) (string, error) {
	out, err := t.runner.Run(ctx, t.path, "--version")
	if err != nil {
		return "", toolError("detect typesetter version", t.path, err, out)
	}
	return ParseVersion(string(out))
}

// ParseVersion extracts the version number from `lilypond --version` output.
func ParseVersion(output string) (string, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return "", model.NewError(model.KindExternalTool, "parse typesetter version", fmt.Errorf("no version in %q", lastLines(output, 1)))
	}
	return m[1], nil
}

// Compile typesets sourcePath, writing outBase.pdf and the MIDI previews.
//
// LilyPond writes one MIDI file per \score: outBase.midi, outBase-1.midi,
// outBase-2.midi and so on. Some platforms use .mid instead; either is
// accepted. At least one preview is required.
func (t *Typesetter) Compile(ctx context.Context, sourcePath, outBase string) (*Artifacts, error) {
	op := "compile " + sourcePath
	out, err := t.runner.Run(ctx, t.path, "-o", outBase, sourcePath)
	if err != nil {
		return nil, toolError(op, t.path, err, out)
	}

	artifacts := &Artifacts{PDF: outBase + model.ExtPDF}
	if err := requireFile(op, artifacts.PDF); err != nil {
		return nil, err
	}

	for i := 0; ; i++ {
		path, ok := findPreview(outBase, i)
		if !ok {
			break
		}
		artifacts.MIDI = append(artifacts.MIDI, path)
	}
	if len(artifacts.MIDI) == 0 {
		return nil, model.NewError(model.KindExternalTool, op, errors.New("typesetter produced no MIDI preview"))
	}
	return artifacts, nil
}

func findPreview(outBase string, i int) (string, bool) {
	for _, ext := range []string{model.ExtMIDI, model.ExtMIDIShort} {
		path := model.PreviewPath(outBase, i, ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
