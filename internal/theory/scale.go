package theory

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/handiism/scale-sheets/internal/model"
)

// ScaleType is a named interval pattern. The intervals sum to 12 and
// cannot be changed once the type is created.
type ScaleType struct {
	Name      string
	Mode      model.Mode
	intervals []int
}

// NewScaleType creates a scale type from a copy of intervals.
func NewScaleType(name string, mode model.Mode, intervals ...int) ScaleType {
	return ScaleType{Name: name, Mode: mode, intervals: slices.Clone(intervals)}
}

// Intervals returns a copy of the semitone steps of one octave.
func (t ScaleType) Intervals() []int {
	return slices.Clone(t.intervals)
}

// Steps returns the number of intervals per octave.
func (t ScaleType) Steps() int {
	return len(t.intervals)
}

var (
	Major         = NewScaleType("major", model.ModeMajor, 2, 2, 1, 2, 2, 2, 1)
	NaturalMinor  = NewScaleType("natural_minor", model.ModeMinor, 2, 1, 2, 2, 1, 2, 2)
	HarmonicMinor = NewScaleType("harmonic_minor", model.ModeMinor, 2, 1, 2, 2, 1, 3, 1)
)

// ScaleTypeTable is the set of scale types a Generator accepts, keyed by
// canonical name.
type ScaleTypeTable map[string]ScaleType

// DefaultScaleTypes returns major, natural minor and harmonic minor.
func DefaultScaleTypes() ScaleTypeTable {
	return NewScaleTypeTable(Major, NaturalMinor, HarmonicMinor)
}

// NewScaleTypeTable builds a table from the given types.
func NewScaleTypeTable(types ...ScaleType) ScaleTypeTable {
	table := make(ScaleTypeTable, len(types))
	for _, t := range types {
		table[t.Name] = t
	}
	return table
}

// Lookup finds a scale type by name. Names are matched after
// NormalizeScaleType.
func (t ScaleTypeTable) Lookup(name string) (ScaleType, bool) {
	st, ok := t[NormalizeScaleType(name)]
	return st, ok
}

// Names returns the canonical names in the table, sorted.
func (t ScaleTypeTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NormalizeScaleType lower-cases a scale type name, turns "-" and spaces
// into "_" and maps the bare "minor" onto "natural_minor".
func NormalizeScaleType(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.NewReplacer("-", "_", " ", "_").Replace(name)
	if name == "minor" {
		return NaturalMinor.Name
	}
	return name
}

// SpellingPolicy decides which SpellingTable a Generator uses for a key.
type SpellingPolicy int

const (
	// PolicyKey applies ChooseTable to the key.
	PolicyKey SpellingPolicy = iota

	// PolicySharp always uses SharpTable.
	PolicySharp

	// PolicyFlat always uses FlatTable.
	PolicyFlat
)

// String returns "key", "sharp" or "flat".
func (p SpellingPolicy) String() string {
	switch p {
	case PolicySharp:
		return "sharp"
	case PolicyFlat:
		return "flat"
	default:
		return "key"
	}
}

// ParseSpellingPolicy parses "key", "sharp" or "flat". The empty string is
// PolicyKey.
func ParseSpellingPolicy(s string) (SpellingPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "key":
		return PolicyKey, nil
	case "sharp", "sharps":
		return PolicySharp, nil
	case "flat", "flats":
		return PolicyFlat, nil
	}
	return PolicyKey, fmt.Errorf("unknown spelling policy %q", s)
}

// Generator builds scale sequences from a scale type table and a spelling
// policy.
//
// Example:
//
//	gen := NewGenerator(DefaultScaleTypes(), PolicyKey, NewResolver(nil))
//	req := model.ScaleRequest{Key: "c", ScaleType: "major", Octaves: 1}
//	seq, err := gen.Generate(req, gen.Table(req.Key))
//	// seq.String() == "c4 d4 e4 f4 g4 a4 b4 c4 b4 a4 g4 f4 e4 d4 c4"
type Generator struct {
	types    ScaleTypeTable
	policy   SpellingPolicy
	resolver *Resolver
}

// NewGenerator creates a Generator. A nil types table means
// DefaultScaleTypes; a nil resolver discards warnings.
func NewGenerator(types ScaleTypeTable, policy SpellingPolicy, resolver *Resolver) *Generator {
	if types == nil {
		types = DefaultScaleTypes()
	}
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Generator{
		types:    types,
		policy:   policy,
		resolver: resolver,
	}
}

// Resolver returns the resolver used for key lookups.
func (g *Generator) Resolver() *Resolver {
	return g.resolver
}

// Table returns the spelling table the policy selects for key.
func (g *Generator) Table(key string) SpellingTable {
	switch g.policy {
	case PolicySharp:
		return SharpTable
	case PolicyFlat:
		return FlatTable
	default:
		return ChooseTable(key)
	}
}

// ScaleType looks up a scale type, returning a validation error when it
// is not in the generator's table.
func (g *Generator) ScaleType(name string) (ScaleType, error) {
	st, ok := g.types.Lookup(name)
	if !ok {
		return ScaleType{}, model.NewError(model.KindValidation, fmt.Sprintf("scale type %q", name), model.ErrUnknownScaleType)
	}
	return st, nil
}

// Generate builds the ascending and descending sequence for req.
//
// The octave count is validated before any table lookup. Each octave
// continues from the last note of the previous one. Only note names are
// tracked, not absolute octave heights.
func (g *Generator) Generate(req model.ScaleRequest, table SpellingTable) (*model.Sequence, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := g.ScaleType(req.ScaleType)
	if err != nil {
		return nil, err
	}

	current := g.resolver.ResolveIndex(req.Key, table)
	ascending := make([]string, 0, req.Octaves*st.Steps()+1)
	ascending = append(ascending, table.Note(current))

	for i := 0; i < req.Octaves; i++ {
		for _, interval := range st.intervals {
			current = current.Add(interval)
			ascending = append(ascending, table.Note(current))
		}
	}

	return model.NewSequence(ascending, req.Octaves), nil
}
