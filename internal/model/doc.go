// Package model defines the core data structures used throughout
// the scale-sheets application.
//
// # Requests and Sequences
//
// ScaleRequest describes one scale to generate and validates its octave count:
//
//	req := model.ScaleRequest{Key: "g", ScaleType: "harmonic_minor", Octaves: 1}
//	if err := req.Validate(); err != nil {
//	    // model.IsKind(err, model.KindValidation) == true
//	}
//
// Sequence holds a generated scale, ascending then descending:
//
//	seq := model.NewSequence([]string{"c", "d", "e", "f", "g", "a", "b", "c"}, 1)
//	fmt.Println(seq.String()) // "c4 d4 e4 f4 g4 a4 b4 c4 b4 a4 g4 f4 e4 d4 c4"
//
// # Scores
//
// Score is one practice document with its staves and artifact paths:
//
//	cfg := &model.PathConfig{OutputDir: "out", FileNameFormat: "{base}_{key}", BaseName: "practice"}
//	score := model.NewScore("eb", "Practice Scales", "Traditional", cfg)
//	score.AddStaff(model.NewStaff("major", "eb", model.ModeMajor, seq))
//	fmt.Println(score.PDFPath) // "out/practice_eb.pdf"
//
// Available placeholders: {base}, {key}, {title}
//
// # Errors
//
// Error classifies failures as validation, external tool or file system
// problems. Use KindOf or IsKind to inspect a returned error.
package model
