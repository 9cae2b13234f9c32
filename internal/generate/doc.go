// Package generate drives a batch of practice sheet renders.
//
// A Builder turns a key into a model.Score: one staff per scale type,
// minor types on the relative minor. The Manager then runs one job per
// score:
//
//  1. Delete the artifacts of a previous run
//  2. Write the LilyPond source
//  3. Compile it into PDF and MIDI
//  4. Optionally check the MIDI preview and rasterize page one
//
// Jobs run on an errgroup limited by Settings.MaxConcurrentJobs. After the
// batch, pages are composited in pairs and a playlist of the MIDI previews
// can be written.
//
// Progress is reported through a callback, never printed:
//
//	m, err := generate.NewManager(settings, nil, func(e generate.ProgressEvent) {
//	    fmt.Println(e.Message)
//	})
//	if err := m.Initialize(settings.Keys); err != nil { ... }
//	err = m.Run(ctx)
package generate
