package model

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Artifact file extensions produced for each score.
const (
	ExtSource = ".ly"
	ExtPDF    = ".pdf"
	ExtMIDI   = ".midi"
	ExtImage  = ".png"
	ExtThumb  = "_thumb.jpg"
)

// maxBaseNameLen keeps room for the directory and extension under Windows
// MAX_PATH.
const maxBaseNameLen = 199

// Score is one generated practice document: a key, its staves and the
// computed paths of every artifact the pipeline writes for it.
//
// Paths are computed by NewScore from a PathConfig, using placeholders like
// {base} and {key}.
//
// Example:
//
//	cfg := &PathConfig{OutputDir: "out", FileNameFormat: "{base}_{key}", BaseName: "practice"}
//	score := NewScore("f#", "Practice Scales", "Traditional", cfg)
//	// score.SourcePath = "out/practice_fsharp.ly"
//	// score.PDFPath    = "out/practice_fsharp.pdf"
type Score struct {
	// Key is the requested key, lower-cased.
	Key string

	// Title and Composer fill the document header.
	Title    string
	Composer string

	// Staves holds one staff per requested scale type, in request order.
	Staves []*Staff

	// Dir is the output directory.
	Dir string

	// BaseName is the artifact file name without extension.
	BaseName string

	// SourcePath is the LilyPond source written for the typesetter.
	SourcePath string

	// PDFPath is produced by the typesetter.
	PDFPath string

	// Previews are the MIDI files of the last compile, set by SetPreviews.
	Previews []*Preview

	// ImagePath is produced by the raster converter, ThumbPath by the
	// thumbnail writer.
	ImagePath string
	ThumbPath string
}

// PathConfig holds artifact naming settings.
//
// FileNameFormat supports these placeholders:
//   - {base} - PathConfig.BaseName
//   - {key} - the key, with "#" spelled as "sharp"
//   - {title} - the score title
type PathConfig struct {
	// OutputDir is the directory every artifact is written to.
	OutputDir string

	// FileNameFormat is the template for artifact names, without extension.
	// Example: "{base}_{key}"
	FileNameFormat string

	// BaseName fills the {base} placeholder.
	// Example: "combined_practice"
	BaseName string
}

// NewScore creates a Score with computed artifact paths.
func NewScore(key, title, composer string, cfg *PathConfig) *Score {
	score := &Score{
		Key:      strings.ToLower(strings.TrimSpace(key)),
		Title:    title,
		Composer: composer,
		Dir:      cfg.OutputDir,
	}

	score.BaseName = score.parseBaseName(cfg)
	base := score.OutputBase()
	score.SourcePath = base + ExtSource
	score.PDFPath = base + ExtPDF
	score.ImagePath = base + ExtImage
	score.ThumbPath = base + ExtThumb

	return score
}

// AddStaff appends a staff and links it to the score.
func (s *Score) AddStaff(staff *Staff) {
	staff.Score = s
	s.Staves = append(s.Staves, staff)
}

// OutputBase returns the artifact path without extension. The typesetter is
// told to write its outputs there.
func (s *Score) OutputBase() string {
	return filepath.Join(s.Dir, s.BaseName)
}

// Artifacts returns every path a run may produce for this score, including
// numbered MIDI previews of an earlier run found in the output directory.
// They are deleted before the score is generated again.
func (s *Score) Artifacts() []string {
	paths := []string{s.SourcePath, s.PDFPath, s.ImagePath, s.ThumbPath}
	seen := make(map[string]bool)
	for i, n := 0, max(len(s.Staves), 1); i < n; i++ {
		for _, ext := range []string{ExtMIDI, ExtMIDIShort} {
			path := s.PreviewPath(i, ext)
			seen[path] = true
			paths = append(paths, path)
		}
	}
	for _, path := range s.stalePreviews() {
		if !seen[path] {
			paths = append(paths, path)
		}
	}
	return paths
}

// NoteCount returns the number of notes over all staves.
func (s *Score) NoteCount() int {
	n := 0
	for _, staff := range s.Staves {
		if staff.Sequence != nil {
			n += staff.Sequence.Len()
		}
	}
	return n
}

// parseBaseName computes the artifact name from the config template.
func (s *Score) parseBaseName(cfg *PathConfig) string {
	format := cfg.FileNameFormat
	if format == "" {
		format = "{base}"
	}
	name := format
	name = strings.ReplaceAll(name, "{base}", cfg.BaseName)
	name = strings.ReplaceAll(name, "{key}", KeyFileName(s.Key))
	name = strings.ReplaceAll(name, "{title}", s.Title)
	name = sanitizeFileName(name)

	return truncateName(name, maxBaseNameLen)
}

// truncateName cuts name to at most limit bytes without splitting a rune.
func truncateName(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}
	return name[:cut]
}

// KeyFileName spells a key for use in file names: "f#" becomes "fsharp".
func KeyFileName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "#", "sharp")
}

// sanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars) are replaced with underscore
//   - Trailing dots are removed (Windows limitation)
//   - Whitespace runs become a single underscore
//
// Example:
//
//	sanitizeFileName("Scales: C/G") // Returns "Scales__C_G"
func sanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = whitespace.ReplaceAllString(name, "_")
	return name
}

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots = regexp.MustCompile(`\.+$`)
	whitespace   = regexp.MustCompile(`\s+`)
)
