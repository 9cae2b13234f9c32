package generate

import (
	"fmt"

	"github.com/handiism/scale-sheets/internal/model"
	"github.com/handiism/scale-sheets/internal/theory"
)

// Builder assembles the score of one key: a staff per requested scale type.
//
// Major scales start on the key itself. Minor scale types start on the
// relative minor of the key unless relative minors are disabled, in which
// case they start on the key too. Each staff is spelled with the table the
// generator selects for its own tonic.
//
// Example usage:
//
//	b := NewBuilder(gen, pathCfg, BuildOptions{
//	    ScaleTypes:    []string{"major", "minor"},
//	    Octaves:       2,
//	    RelativeMinor: true,
//	})
//	score, err := b.Build("g")
//	// score.Staves[0]: G major, score.Staves[1]: E natural minor
type Builder struct {
	gen     *theory.Generator
	pathCfg *model.PathConfig
	opts    BuildOptions
}

// BuildOptions selects what goes on a score.
type BuildOptions struct {
	Title         string
	Composer      string
	ScaleTypes    []string
	Octaves       int
	RelativeMinor bool
}

// NewBuilder creates a new Builder.
func NewBuilder(gen *theory.Generator, pathCfg *model.PathConfig, opts BuildOptions) *Builder {
	return &Builder{
		gen:     gen,
		pathCfg: pathCfg,
		opts:    opts,
	}
}

// Build generates every staff for key and returns the score with its
// artifact paths computed. The octave count is checked before any key is
// resolved, so an invalid request produces no resolver warnings.
// Validation errors are returned unchanged.
func (b *Builder) Build(key string) (*model.Score, error) {
	if err := (model.ScaleRequest{Key: key, Octaves: b.opts.Octaves}).Validate(); err != nil {
		return nil, fmt.Errorf("key %s: %w", key, err)
	}

	score := model.NewScore(key, b.opts.Title, b.opts.Composer, b.pathCfg)

	for _, name := range b.opts.ScaleTypes {
		staff, err := b.buildStaff(score.Key, name)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", key, err)
		}
		score.AddStaff(staff)
	}

	return score, nil
}

func (b *Builder) buildStaff(key, name string) (*model.Staff, error) {
	st, err := b.gen.ScaleType(name)
	if err != nil {
		return nil, err
	}

	start := key
	if st.Mode == model.ModeMinor && b.opts.RelativeMinor {
		start = b.gen.Resolver().RelativeMinor(key)
	}

	req := model.ScaleRequest{Key: start, ScaleType: st.Name, Octaves: b.opts.Octaves}
	seq, err := b.gen.Generate(req, b.gen.Table(start))
	if err != nil {
		return nil, err
	}

	return model.NewStaff(st.Name, seq.Notes[0], st.Mode, seq), nil
}
