package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/scale-sheets/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL
)

// ParsePlaylistFormat parses "m3u", "pls" or "wpl". Unknown names fall back
// to M3U.
func ParsePlaylistFormat(s string) PlaylistFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pls":
		return FormatPLS
	case "wpl":
		return FormatWPL
	default:
		return FormatM3U
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates a playlist of the MIDI previews of a batch.
//
// Entry paths are relative (just the file name), assuming the playlist is
// written next to the previews. Durations are derived from the note count
// and the preview tempo, since every note is a quarter note.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true, 60)
//	content := creator.CreatePlaylist("Practice Scales", scores)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:30,Practice Scales - C
//	// combined_practice_c.midi
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
	tempo    int
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
//   - tempo: Preview tempo in quarter notes per minute
func NewPlaylistCreator(format PlaylistFormat, extended bool, tempo int) *PlaylistCreator {
	if tempo <= 0 {
		tempo = 60
	}
	return &PlaylistCreator{
		format:   format,
		extended: extended,
		tempo:    tempo,
	}
}

// Duration returns the length of a preview in whole seconds.
func (p *PlaylistCreator) Duration(preview *model.Preview) int {
	return preview.NoteCount() * 60 / p.tempo
}

// CreatePlaylist generates playlist content for the scores' previews.
// Scores without previews are skipped.
func (p *PlaylistCreator) CreatePlaylist(title string, scores []*model.Score) string {
	entries := p.entries(scores)
	switch p.format {
	case FormatPLS:
		return createPLS(entries)
	case FormatWPL:
		return createWPL(title, entries)
	default:
		return p.createM3U(entries)
	}
}

// entry is one playlist line.
type entry struct {
	file     string
	title    string
	duration int
}

func (p *PlaylistCreator) entries(scores []*model.Score) []entry {
	var out []entry
	for _, score := range scores {
		for _, preview := range score.Previews {
			out = append(out, entry{
				file:     filepath.Base(preview.Path),
				title:    entryTitle(score, preview),
				duration: p.Duration(preview),
			})
		}
	}
	return out
}

// entryTitle names a preview after the score title and key, e.g.
// "Practice Scales - F#". When a score has several previews the staff
// heading is appended.
func entryTitle(score *model.Score, preview *model.Preview) string {
	key := score.Key
	if key != "" {
		key = strings.ToUpper(key[:1]) + key[1:]
	}
	title := fmt.Sprintf("%s - %s", score.Title, key)
	if heading := preview.Heading(); heading != "" && len(score.Previews) > 1 {
		title += " - " + heading
	}
	return title
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:30,Practice Scales - C
//	combined_practice_c.midi
func (p *PlaylistCreator) createM3U(entries []entry) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, e := range entries {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:%d,%s\n", e.duration, e.title))
		}
		sb.WriteString(e.file + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
// PLS format is an INI-style text file:
//
//	[playlist]
//	File1=combined_practice_c.midi
//	Title1=Practice Scales - C
//	Length1=30
//	NumberOfEntries=1
//	Version=2
func createPLS(entries []entry) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, e := range entries {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, e.file))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, e.title))
		sb.WriteString(fmt.Sprintf("Length%d=%d\n", idx, e.duration))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(entries)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func createWPL(title string, entries []entry) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(e.file)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
