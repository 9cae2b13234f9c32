package audio

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/handiism/scale-sheets/internal/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestPreviewChecker_Summarize(t *testing.T) {
	path := writeTestMIDI(t, []uint8{60, 62, 64, 62, 60})

	summary, err := NewPreviewChecker().Summarize(path)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.Notes() != 5 {
		t.Errorf("Notes() = %d, want 5", summary.Notes())
	}
	if !slices.Equal(summary.Keys, []uint8{60, 62, 64, 62, 60}) {
		t.Errorf("Keys = %v", summary.Keys)
	}
	if summary.Tracks != 1 {
		t.Errorf("Tracks = %d, want 1", summary.Tracks)
	}
}

func TestPreviewChecker_Verify(t *testing.T) {
	path := writeTestMIDI(t, []uint8{60, 62, 60})
	checker := NewPreviewChecker()

	if err := checker.Verify(path, 3); err != nil {
		t.Errorf("Verify() with the right count failed: %v", err)
	}

	err := checker.Verify(path, 15)
	if !model.IsKind(err, model.KindExternalTool) {
		t.Errorf("Verify() with a wrong count = %v, want external tool error", err)
	}
}

func TestPreviewChecker_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.midi")
	if err := os.WriteFile(path, []byte("not a midi file"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := NewPreviewChecker().Summarize(path)
	if !model.IsKind(err, model.KindExternalTool) {
		t.Errorf("Summarize() = %v, want external tool error", err)
	}
}

// writeTestMIDI writes one quarter note per key. Note ends are sent as
// note-on with velocity 0, the way LilyPond writes them.
func writeTestMIDI(t *testing.T, keys []uint8) string {
	t.Helper()

	var track smf.Track
	for _, key := range keys {
		track.Add(0, midi.NoteOn(0, key, 90))
		track.Add(960, midi.NoteOn(0, key, 0))
	}
	track.Close(0)

	file := smf.New()
	if err := file.Add(track); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "preview.midi")
	if err := file.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	return path
}
