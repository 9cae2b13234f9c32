package theory

import "strings"

// PitchClass identifies one of the 12 chromatic pitch classes, 0 = C.
type PitchClass int

// Add moves the pitch class by a number of semitones, wrapping at the octave.
func (p PitchClass) Add(semitones int) PitchClass {
	return PitchClass(((int(p)+semitones)%12 + 12) % 12)
}

// SpellingTable names each pitch class, preferring either sharps or flats.
//
// The two tables are package-level values; a SpellingTable is passed by
// value and has no mutators.
type SpellingTable struct {
	name  string
	notes [12]string
}

var (
	// SharpTable spells black keys with sharps.
	SharpTable = SpellingTable{
		name:  "sharp",
		notes: [12]string{"c", "c#", "d", "d#", "e", "f", "f#", "g", "g#", "a", "a#", "b"},
	}

	// FlatTable spells black keys with flats.
	FlatTable = SpellingTable{
		name:  "flat",
		notes: [12]string{"c", "db", "d", "eb", "e", "f", "gb", "g", "ab", "a", "bb", "b"},
	}
)

// enharmonic maps alternate spellings onto names found in at least one table.
var enharmonic = map[string]string{
	"cb": "b",
	"fb": "e",
	"db": "c#",
	"eb": "d#",
	"gb": "f#",
	"ab": "g#",
	"bb": "a#",
}

// flatKeys are the conventional flat major keys.
var flatKeys = map[string]bool{
	"f": true, "bb": true, "eb": true, "ab": true, "db": true, "gb": true, "cb": true,
}

// Name returns "sharp" or "flat".
func (t SpellingTable) Name() string {
	return t.name
}

// Note returns the spelling of a pitch class.
func (t SpellingTable) Note(p PitchClass) string {
	return t.notes[p.Add(0)]
}

// Notes returns a copy of the 12 spellings.
func (t SpellingTable) Notes() []string {
	return t.notes[:]
}

// Index returns the pitch class of a note spelled exactly as in the table.
func (t SpellingTable) Index(note string) (PitchClass, bool) {
	for i, n := range t.notes {
		if n == note {
			return PitchClass(i), true
		}
	}
	return 0, false
}

// ChooseTable picks the flat table when the lower-cased key is a
// conventional flat key or contains the letter "b", and the sharp table
// otherwise.
//
// The "b" test is a heuristic: "b" itself selects the flat table. Generated
// note names depend on it, so it is kept as is.
func ChooseTable(key string) SpellingTable {
	key = strings.ToLower(key)
	if flatKeys[key] || strings.Contains(key, "b") {
		return FlatTable
	}
	return SharpTable
}
