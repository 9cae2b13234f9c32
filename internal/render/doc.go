// Package render invokes the external tools that turn generated LilyPond
// source into documents and images.
//
// Both collaborators are blocking subprocess calls and fail fast: a missing
// executable, a non-zero exit status or a missing output file is returned as
// a model.KindExternalTool error and never retried.
//
// # Typesetting
//
//	ts := render.NewTypesetter("lilypond", nil)
//	version, err := ts.Version(ctx) // "2.24.1"
//	out, err := ts.Compile(ctx, "out/practice_c.ly", "out/practice_c")
//
// # Rasterizing
//
//	r := render.NewRasterizer("pdftoppm", 300, nil)
//	png, err := r.Rasterize(ctx, out.PDF, "out/practice_c")
//
// Tests and callers that need to intercept the subprocesses can pass their
// own Runner.
package render
