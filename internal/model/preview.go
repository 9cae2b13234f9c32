package model

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ExtMIDIShort is the MIDI extension LilyPond uses on some platforms.
const ExtMIDIShort = ".mid"

// Preview is one MIDI file written by the typesetter and the staves it
// plays. LilyPond writes a file per \score block: the combined layout gives
// one preview per staff, the single layout one preview for all staves.
type Preview struct {
	Path   string
	Staves []*Staff
}

// NoteCount returns the number of notes the preview should hold.
func (p *Preview) NoteCount() int {
	n := 0
	for _, staff := range p.Staves {
		if staff.Sequence != nil {
			n += staff.Sequence.Len()
		}
	}
	return n
}

// Heading names the preview after its staff, or "" when it plays several.
func (p *Preview) Heading() string {
	if len(p.Staves) != 1 {
		return ""
	}
	return p.Staves[0].Heading()
}

// PreviewPath returns the path of the i-th MIDI preview with extension
// ext: outBase.midi for the first \score, outBase-1.midi for the second,
// and so on.
func (s *Score) PreviewPath(i int, ext string) string {
	return PreviewPath(s.OutputBase(), i, ext)
}

// PreviewPath returns the name LilyPond gives the MIDI file of the i-th
// \score block written to outBase.
func PreviewPath(outBase string, i int, ext string) string {
	if i == 0 {
		return outBase + ext
	}
	return fmt.Sprintf("%s-%d%s", outBase, i, ext)
}

// SetPreviews assigns typesetter MIDI files to staves, in order. One path
// per staff maps one to one; a single path plays every staff. Any other
// count means the document and its previews disagree.
func (s *Score) SetPreviews(paths []string) error {
	switch {
	case len(paths) == len(s.Staves):
		s.Previews = make([]*Preview, len(paths))
		for i, path := range paths {
			s.Previews[i] = &Preview{Path: path, Staves: []*Staff{s.Staves[i]}}
		}
	case len(paths) == 1:
		s.Previews = []*Preview{{Path: paths[0], Staves: s.Staves}}
	default:
		return NewError(KindExternalTool, "match MIDI previews of "+s.BaseName,
			fmt.Errorf("typesetter wrote %d previews for %d staves", len(paths), len(s.Staves)))
	}
	return nil
}

// stalePreviews lists numbered previews of an earlier run in the output
// directory, e.g. practice_c-2.midi left behind after fewer scale types
// were requested.
func (s *Score) stalePreviews() []string {
	entries, err := os.ReadDir(s.dirOrDot())
	if err != nil {
		return nil
	}
	pattern := regexp.MustCompile(`^` + regexp.QuoteMeta(s.BaseName) + `-[1-9]\d*\.midi?$`)

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.Dir, entry.Name()))
	}
	return paths
}

func (s *Score) dirOrDot() string {
	if s.Dir == "" {
		return "."
	}
	return s.Dir
}
