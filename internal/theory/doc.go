// Package theory builds practice scales from static pitch tables.
//
// It contains the 12-tone pitch table in sharp and flat spellings, the
// enharmonic map, the scale type definitions, the relative minor table and
// the Generator that walks an interval pattern through them.
//
// # Spelling
//
//	table := theory.ChooseTable("eb")      // FlatTable
//	r := theory.NewResolver(func(msg string) { log.Println(msg) })
//	r.ResolveIndex("D#", theory.SharpTable) // 3
//	r.ResolveIndex("xyz", table)            // 0, with a warning
//	theory.ToTypesetterSpelling("f#")       // "fis"
//
// # Generating
//
//	gen := theory.NewGenerator(theory.DefaultScaleTypes(), theory.PolicyKey, r)
//	req := model.ScaleRequest{Key: "g", ScaleType: "harmonic_minor", Octaves: 1}
//	seq, err := gen.Generate(req, gen.Table(req.Key))
//	// seq.Ascending() == [g a a# c d d# f# g]
//
// All tables are package-level data that is never modified, so a Generator
// can be shared between goroutines as long as its warning callback is safe
// for concurrent use.
package theory
