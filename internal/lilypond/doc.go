// Package lilypond renders practice scores as LilyPond source text.
//
// The Formatter is the boundary between the scale generator and the
// external typesetter: it turns a model.Score into a document that
// `lilypond` compiles into a PDF sheet and a MIDI preview.
//
//	f := lilypond.NewFormatter(lilypond.Options{Version: "2.24.1", Tempo: 80})
//	src := f.Format(score)
//
// Supported layouts:
//   - Combined (one \score per scale, each with a bold heading)
//   - Single (all scales on one staff, separated by double bar lines)
package lilypond
