package audio

import (
	"strings"
	"testing"

	"github.com/handiism/scale-sheets/internal/model"
)

func TestPlaylistCreator_M3U(t *testing.T) {
	scores := createTestScores()
	creator := NewPlaylistCreator(FormatM3U, false, 60)

	content := creator.CreatePlaylist("Practice Scales", scores)

	if !strings.Contains(content, "practice_c.midi\n") {
		t.Error("M3U should contain preview filename")
	}
	if strings.Contains(content, "#EXTM3U") {
		t.Error("plain M3U should not contain #EXTM3U")
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	scores := createTestScores()
	creator := NewPlaylistCreator(FormatM3U, true, 60)

	content := creator.CreatePlaylist("Practice Scales", scores)

	if !strings.HasPrefix(content, "#EXTM3U") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	// 15 quarter notes at 60 bpm.
	if !strings.Contains(content, "#EXTINF:15,Practice Scales - C\n") {
		t.Errorf("Extended M3U should contain duration and title, got:\n%s", content)
	}
	if !strings.Contains(content, "#EXTINF:15,Practice Scales - F#\n") {
		t.Errorf("Extended M3U should capitalize the key, got:\n%s", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	creator := NewPlaylistCreator(FormatPLS, false, 120)

	content := creator.CreatePlaylist("Practice Scales", createTestScores())

	if !strings.HasPrefix(content, "[playlist]") {
		t.Error("PLS should start with [playlist]")
	}
	if !strings.Contains(content, "File1=practice_c.midi") {
		t.Error("PLS should contain File1=")
	}
	if !strings.Contains(content, "Length1=7") {
		t.Error("PLS length should follow the tempo")
	}
	if !strings.Contains(content, "NumberOfEntries=2") {
		t.Error("PLS should contain NumberOfEntries")
	}
}

func TestPlaylistCreator_WPL(t *testing.T) {
	creator := NewPlaylistCreator(FormatWPL, false, 60)

	content := creator.CreatePlaylist("Scales <C & G>", createTestScores())

	if !strings.Contains(content, "<?wpl") {
		t.Error("WPL should contain XML declaration")
	}
	if !strings.Contains(content, "<media src=\"practice_fsharp.midi\"/>") {
		t.Error("WPL should contain media elements")
	}
	if !strings.Contains(content, "<title>Scales &lt;C &amp; G&gt;</title>") {
		t.Error("WPL should escape the title")
	}
}

func TestPlaylistCreator_PreviewPerStaff(t *testing.T) {
	cfg := &model.PathConfig{OutputDir: "/out", FileNameFormat: "{base}_{key}", BaseName: "practice"}
	score := model.NewScore("c", "Practice Scales", "Traditional", cfg)
	score.AddStaff(model.NewStaff("major", "c", model.ModeMajor, model.NewSequence([]string{"c", "d", "e", "f", "g", "a", "b", "c"}, 1)))
	score.AddStaff(model.NewStaff("natural_minor", "a", model.ModeMinor, model.NewSequence([]string{"a", "b", "c", "d", "e", "f", "g", "a", "b", "c", "d", "e", "f", "g", "a"}, 2)))
	if err := score.SetPreviews([]string{score.PreviewPath(0, model.ExtMIDI), score.PreviewPath(1, model.ExtMIDI)}); err != nil {
		t.Fatalf("SetPreviews failed: %v", err)
	}

	content := NewPlaylistCreator(FormatM3U, true, 60).CreatePlaylist("Practice Scales", []*model.Score{score})

	for _, want := range []string{
		"#EXTINF:15,Practice Scales - C - Major Scale in C (Major)\npractice_c.midi\n",
		"#EXTINF:29,Practice Scales - C - Natural Minor Scale in A (Minor)\npractice_c-1.midi\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("playlist missing %q, got:\n%s", want, content)
		}
	}
}

func TestPlaylistCreator_SkipsScoresWithoutPreviews(t *testing.T) {
	scores := createTestScores()
	scores[1].Previews = nil

	content := NewPlaylistCreator(FormatPLS, false, 60).CreatePlaylist("Practice Scales", scores)

	if !strings.Contains(content, "NumberOfEntries=1\n") || strings.Contains(content, "fsharp") {
		t.Errorf("unexpected playlist:\n%s", content)
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := []struct {
		in   string
		want PlaylistFormat
		ext  string
	}{
		{"m3u", FormatM3U, ".m3u"},
		{"PLS", FormatPLS, ".pls"},
		{"wpl", FormatWPL, ".wpl"},
		{"zpl", FormatM3U, ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParsePlaylistFormat(tt.in)
			if got != tt.want || got.Extension() != tt.ext {
				t.Errorf("ParsePlaylistFormat(%q) = %v (%s)", tt.in, got, got.Extension())
			}
		})
	}
}

func createTestScores() []*model.Score {
	cfg := &model.PathConfig{OutputDir: "/out", FileNameFormat: "{base}_{key}", BaseName: "practice"}
	notes := []string{"c", "d", "e", "f", "g", "a", "b", "c"}

	var scores []*model.Score
	for _, key := range []string{"c", "f#"} {
		score := model.NewScore(key, "Practice Scales", "Traditional", cfg)
		score.AddStaff(model.NewStaff("major", key, model.ModeMajor, model.NewSequence(notes, 1)))
		if err := score.SetPreviews([]string{score.PreviewPath(0, model.ExtMIDI)}); err != nil {
			panic(err)
		}
		scores = append(scores, score)
	}
	return scores
}
