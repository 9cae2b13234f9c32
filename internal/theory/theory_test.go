package theory

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/handiism/scale-sheets/internal/model"
)

func TestResolveIndex(t *testing.T) {
	tests := []struct {
		note  string
		table SpellingTable
		want  PitchClass
	}{
		{"c", SharpTable, 0},
		{"C#", SharpTable, 1},
		{"eb", FlatTable, 3},
		{"d#", SharpTable, 3},
		{"eb", SharpTable, 3},
		{"cb", FlatTable, 11},
		{"fb", SharpTable, 4},
		{"bb", SharpTable, 10},
		{" Gb ", FlatTable, 6},
	}

	r := NewResolver(nil)
	for _, tt := range tests {
		t.Run(tt.note+"/"+tt.table.Name(), func(t *testing.T) {
			if got := r.ResolveIndex(tt.note, tt.table); got != tt.want {
				t.Errorf("ResolveIndex(%q) = %d, want %d", tt.note, got, tt.want)
			}
		})
	}
}

func TestResolveIndex_Enharmonic(t *testing.T) {
	r := NewResolver(nil)
	if r.ResolveIndex("eb", FlatTable) != r.ResolveIndex("d#", SharpTable) {
		t.Error("eb in the flat table and d# in the sharp table should be the same pitch class")
	}
}

func TestResolveIndex_Unrecognized(t *testing.T) {
	var warnings []string
	r := NewResolver(func(msg string) { warnings = append(warnings, msg) })

	for _, table := range []SpellingTable{SharpTable, FlatTable} {
		if got := r.ResolveIndex("xyz", table); got != 0 {
			t.Errorf("ResolveIndex(xyz) in %s table = %d, want 0", table.Name(), got)
		}
	}
	if len(warnings) != 2 {
		t.Errorf("got %d warnings, want 2", len(warnings))
	}
}

func TestChooseTable(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"c", "sharp"},
		{"g", "sharp"},
		{"F#", "sharp"},
		{"f", "flat"},
		{"Bb", "flat"},
		{"eb", "flat"},
		{"cb", "flat"},
		// "b" contains the letter b, so the heuristic picks flats.
		{"b", "flat"},
		{"a#", "sharp"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := ChooseTable(tt.key).Name(); got != tt.want {
				t.Errorf("ChooseTable(%q) = %s, want %s", tt.key, got, tt.want)
			}
		})
	}
}

func TestRelativeMinor(t *testing.T) {
	var warnings []string
	r := NewResolver(func(msg string) { warnings = append(warnings, msg) })

	tests := map[string]string{
		"c":       "a",
		"eb":      "c",
		"A":       "f#",
		"cb":      "ab",
		"db":      "bb",
		"unknown": "a",
	}
	for key, want := range tests {
		if got := r.RelativeMinor(key); got != want {
			t.Errorf("RelativeMinor(%q) = %q, want %q", key, got, want)
		}
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 for the unknown key", len(warnings))
	}
	for _, key := range MajorKeys() {
		if _, ok := relativeMinors[key]; !ok {
			t.Errorf("MajorKeys() lists %q without a relative minor", key)
		}
	}
	if len(MajorKeys()) != 15 {
		t.Errorf("MajorKeys() has %d keys, want 15", len(MajorKeys()))
	}
}

func TestToTypesetterSpelling(t *testing.T) {
	tests := []struct {
		note, want, wantSharps string
	}{
		{"c", "c", "c"},
		{"f#", "fis", "fis"},
		{"eb", "ees", "dis"},
		{"Bb", "bes", "ais"},
		{"cb", "ces", "b"},
		{"fb", "fes", "e"},
		{"ais", "ais", "ais"},
	}

	for _, tt := range tests {
		t.Run(tt.note, func(t *testing.T) {
			if got := ToTypesetterSpelling(tt.note); got != tt.want {
				t.Errorf("ToTypesetterSpelling(%q) = %q, want %q", tt.note, got, tt.want)
			}
			if got := ToTypesetterSharps(tt.note); got != tt.wantSharps {
				t.Errorf("ToTypesetterSharps(%q) = %q, want %q", tt.note, got, tt.wantSharps)
			}
		})
	}
}

func TestGenerate_CMajor(t *testing.T) {
	gen := NewGenerator(nil, PolicyKey, nil)
	seq, err := gen.Generate(model.ScaleRequest{Key: "c", ScaleType: "major", Octaves: 1}, SharpTable)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	wantAsc := []string{"c", "d", "e", "f", "g", "a", "b", "c"}
	wantDesc := []string{"b", "a", "g", "f", "e", "d", "c"}
	if !slices.Equal(seq.Ascending(), wantAsc) {
		t.Errorf("Ascending() = %v, want %v", seq.Ascending(), wantAsc)
	}
	if !slices.Equal(seq.Descending(), wantDesc) {
		t.Errorf("Descending() = %v, want %v", seq.Descending(), wantDesc)
	}
	if seq.Len() != 15 {
		t.Errorf("Len() = %d, want 15", seq.Len())
	}
}

func TestScaleType_IntervalsAreCopies(t *testing.T) {
	want := []int{2, 2, 1, 2, 2, 2, 1}

	got := Major.Intervals()
	got[0] = 7
	if !slices.Equal(Major.Intervals(), want) {
		t.Errorf("Major.Intervals() = %v after mutating a copy, want %v", Major.Intervals(), want)
	}

	source := []int{2, 2, 1, 2, 2, 2, 1}
	custom := NewScaleType("custom_major", model.ModeMajor, source...)
	source[1] = 5
	if !slices.Equal(custom.Intervals(), want) {
		t.Errorf("custom.Intervals() = %v after mutating the input, want %v", custom.Intervals(), want)
	}

	seq, err := NewGenerator(nil, PolicyKey, nil).Generate(model.ScaleRequest{Key: "c", ScaleType: "major", Octaves: 1}, SharpTable)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if wantAsc := []string{"c", "d", "e", "f", "g", "a", "b", "c"}; !slices.Equal(seq.Ascending(), wantAsc) {
		t.Errorf("Ascending() = %v, want %v", seq.Ascending(), wantAsc)
	}
}

func TestGenerate_GHarmonicMinor(t *testing.T) {
	gen := NewGenerator(nil, PolicyKey, nil)
	seq, err := gen.Generate(model.ScaleRequest{Key: "g", ScaleType: "harmonic_minor", Octaves: 1}, SharpTable)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := []string{"g", "a", "a#", "c", "d", "d#", "f#", "g"}
	if !slices.Equal(seq.Ascending(), want) {
		t.Errorf("Ascending() = %v, want %v", seq.Ascending(), want)
	}
	if seq.Len() != 15 {
		t.Errorf("Len() = %d, want 15", seq.Len())
	}
}

func TestGenerate_OctaveChaining(t *testing.T) {
	gen := NewGenerator(nil, PolicyKey, nil)
	seq, err := gen.Generate(model.ScaleRequest{Key: "c", ScaleType: "major", Octaves: 2}, SharpTable)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	asc := seq.Ascending()
	if len(asc) != 15 {
		t.Fatalf("ascending length = %d, want 15", len(asc))
	}
	if !slices.Equal(asc[7:], []string{"c", "d", "e", "f", "g", "a", "b", "c"}) {
		t.Errorf("second octave = %v", asc[7:])
	}
}

func TestGenerate_FlatKey(t *testing.T) {
	gen := NewGenerator(nil, PolicyKey, nil)
	seq, err := gen.Generate(model.ScaleRequest{Key: "Eb", ScaleType: "major", Octaves: 1}, gen.Table("Eb"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := []string{"eb", "f", "g", "ab", "bb", "c", "d", "eb"}
	if !slices.Equal(seq.Ascending(), want) {
		t.Errorf("Ascending() = %v, want %v", seq.Ascending(), want)
	}
}

func TestGenerate_LengthProperty(t *testing.T) {
	gen := NewGenerator(nil, PolicyKey, nil)

	for _, st := range DefaultScaleTypes() {
		for _, table := range []SpellingTable{SharpTable, FlatTable} {
			for pc := PitchClass(0); pc < 12; pc++ {
				for octaves := model.MinOctaves; octaves <= model.MaxOctaves; octaves++ {
					key := table.Note(pc)
					name := fmt.Sprintf("%s/%s/%s/%d", st.Name, table.Name(), key, octaves)
					seq, err := gen.Generate(model.ScaleRequest{Key: key, ScaleType: st.Name, Octaves: octaves}, table)
					if err != nil {
						t.Fatalf("%s: %v", name, err)
					}
					if want := model.ExpectedLen(octaves, st.Steps()); seq.Len() != want {
						t.Errorf("%s: Len() = %d, want %d", name, seq.Len(), want)
					}
					reversed := slices.Clone(seq.Ascending())
					slices.Reverse(reversed)
					if !slices.Equal(seq.Descending(), reversed[1:]) {
						t.Errorf("%s: descending is not the reversed ascending run without its top", name)
					}
					if seq.Notes[0] != key {
						t.Errorf("%s: first note = %q, want %q", name, seq.Notes[0], key)
					}
				}
			}
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	var warnings []string
	gen := NewGenerator(nil, PolicyKey, NewResolver(func(msg string) { warnings = append(warnings, msg) }))

	tests := []struct {
		name    string
		req     model.ScaleRequest
		wantErr error
	}{
		{"zero octaves", model.ScaleRequest{Key: "xyz", ScaleType: "major", Octaves: 0}, model.ErrInvalidOctaves},
		{"five octaves", model.ScaleRequest{Key: "xyz", ScaleType: "major", Octaves: 5}, model.ErrInvalidOctaves},
		{"unknown type", model.ScaleRequest{Key: "xyz", ScaleType: "dorian", Octaves: 1}, model.ErrUnknownScaleType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gen.Generate(tt.req, SharpTable)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Generate() error = %v, want %v", err, tt.wantErr)
			}
			if !model.IsKind(err, model.KindValidation) {
				t.Errorf("error kind = %v, want validation", model.KindOf(err))
			}
		})
	}

	// Validation happens before the key is looked up.
	if len(warnings) != 0 {
		t.Errorf("got warnings %v, want none", warnings)
	}
}

func TestGenerate_UnknownKeyDefaultsToC(t *testing.T) {
	var warnings []string
	gen := NewGenerator(nil, PolicyKey, NewResolver(func(msg string) { warnings = append(warnings, msg) }))

	seq, err := gen.Generate(model.ScaleRequest{Key: "h", ScaleType: "major", Octaves: 1}, SharpTable)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if seq.Notes[0] != "c" {
		t.Errorf("first note = %q, want c", seq.Notes[0])
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1", len(warnings))
	}
}

func TestGenerator_BasicVariant(t *testing.T) {
	gen := NewGenerator(NewScaleTypeTable(Major, NaturalMinor), PolicyKey, nil)

	if _, err := gen.ScaleType("minor"); err != nil {
		t.Errorf("minor should resolve to natural_minor: %v", err)
	}
	if _, err := gen.ScaleType("Harmonic-Minor"); !errors.Is(err, model.ErrUnknownScaleType) {
		t.Errorf("harmonic minor should be unknown to the basic table, got %v", err)
	}
}

func TestGenerator_Table(t *testing.T) {
	tests := []struct {
		policy SpellingPolicy
		key    string
		want   string
	}{
		{PolicyKey, "eb", "flat"},
		{PolicyKey, "d", "sharp"},
		{PolicySharp, "eb", "sharp"},
		{PolicyFlat, "d", "flat"},
	}

	for _, tt := range tests {
		t.Run(tt.policy.String()+"/"+tt.key, func(t *testing.T) {
			if got := NewGenerator(nil, tt.policy, nil).Table(tt.key).Name(); got != tt.want {
				t.Errorf("Table(%q) = %s, want %s", tt.key, got, tt.want)
			}
		})
	}
}

func TestParseSpellingPolicy(t *testing.T) {
	for in, want := range map[string]SpellingPolicy{"": PolicyKey, "key": PolicyKey, "Sharp": PolicySharp, "flats": PolicyFlat} {
		got, err := ParseSpellingPolicy(in)
		if err != nil || got != want {
			t.Errorf("ParseSpellingPolicy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSpellingPolicy("dutch"); err == nil {
		t.Error("ParseSpellingPolicy(dutch) should fail")
	}
}

func TestPitchClass_Add(t *testing.T) {
	if got := PitchClass(11).Add(2); got != 1 {
		t.Errorf("11+2 = %d, want 1", got)
	}
	if got := PitchClass(0).Add(-1); got != 11 {
		t.Errorf("0-1 = %d, want 11", got)
	}
}
