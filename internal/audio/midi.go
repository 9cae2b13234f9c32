package audio

import (
	"fmt"

	"github.com/handiism/scale-sheets/internal/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// PreviewSummary describes the notes found in a MIDI preview.
type PreviewSummary struct {
	// Tracks is the number of tracks in the file.
	Tracks int

	// Keys lists the MIDI key number of every note start, in file order.
	Keys []uint8
}

// Notes returns the number of note starts.
func (s *PreviewSummary) Notes() int {
	return len(s.Keys)
}

// PreviewChecker reads back the MIDI preview written by the typesetter.
//
// The typesetter renders one note-on per scale note, so comparing the note
// count with the score catches truncated or stale previews.
//
// Example:
//
//	checker := NewPreviewChecker()
//	if err := checker.Verify(preview.Path, preview.NoteCount()); err != nil {
//	    return err
//	}
type PreviewChecker struct{}

// NewPreviewChecker creates a PreviewChecker.
func NewPreviewChecker() *PreviewChecker {
	return &PreviewChecker{}
}

// Summarize parses a standard MIDI file and collects its note starts.
// Note-on messages with velocity 0 are note ends and are not counted.
func (c *PreviewChecker) Summarize(path string) (*PreviewSummary, error) {
	file, err := smf.ReadFile(path)
	if err != nil {
		return nil, model.NewError(model.KindExternalTool, "read MIDI preview "+path, err)
	}

	summary := &PreviewSummary{Tracks: len(file.Tracks)}
	for _, track := range file.Tracks {
		for _, ev := range track {
			var channel, key, velocity uint8
			if midi.Message(ev.Message).GetNoteStart(&channel, &key, &velocity) {
				summary.Keys = append(summary.Keys, key)
			}
		}
	}
	return summary, nil
}

// Verify checks that the preview at path holds exactly expected notes.
func (c *PreviewChecker) Verify(path string, expected int) error {
	summary, err := c.Summarize(path)
	if err != nil {
		return err
	}
	if summary.Notes() != expected {
		return model.NewError(model.KindExternalTool, "verify MIDI preview "+path,
			fmt.Errorf("found %d notes, expected %d", summary.Notes(), expected))
	}
	return nil
}
