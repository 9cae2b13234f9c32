// Package audio checks and lists the MIDI previews produced by the
// typesetter.
//
// # Preview Verification
//
// The PreviewChecker reads a standard MIDI file and counts note starts:
//
//	checker := audio.NewPreviewChecker()
//	err := checker.Verify(preview.Path, preview.NoteCount())
//
// # Playlist Generation
//
// Generate a playlist of every preview in a batch:
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U, true, 60) // extended M3U
//	content := creator.CreatePlaylist("Practice Scales", scores)
//	os.WriteFile("out/combined_practice.m3u", []byte(content), 0644)
//
// Supported formats:
//   - M3U (with optional extended info)
//   - PLS
//   - WPL (Windows Media Player)
package audio
