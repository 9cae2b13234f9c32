package theory

import "strings"

// lilypondNames maps accidental spellings to LilyPond's Dutch note names.
// It is kept apart from the enharmonic map: this table changes the
// notation, not the pitch.
var lilypondNames = map[string]string{
	"c": "c", "c#": "cis", "cb": "ces",
	"d": "d", "d#": "dis", "db": "des",
	"e": "e", "e#": "eis", "eb": "ees",
	"f": "f", "f#": "fis", "fb": "fes",
	"g": "g", "g#": "gis", "gb": "ges",
	"a": "a", "a#": "ais", "ab": "aes",
	"b": "b", "b#": "bis", "bb": "bes",
}

// flatToSharp re-spells flat names with the sharp (or natural) enharmonic.
var flatToSharp = map[string]string{
	"cb": "b",
	"db": "c#",
	"eb": "d#",
	"fb": "e",
	"gb": "f#",
	"ab": "g#",
	"bb": "a#",
}

// ToTypesetterSpelling converts "f#" to "fis", "eb" to "ees" and so on.
// Names that are already in LilyPond syntax, or unknown, are returned
// lower-cased and otherwise unchanged.
func ToTypesetterSpelling(note string) string {
	note = strings.ToLower(strings.TrimSpace(note))
	if name, ok := lilypondNames[note]; ok {
		return name
	}
	return note
}

// ToTypesetterSharps is ToTypesetterSpelling favouring sharps: flats are
// first re-spelled as sharps, so "eb" becomes "dis".
func ToTypesetterSharps(note string) string {
	note = strings.ToLower(strings.TrimSpace(note))
	if sharp, ok := flatToSharp[note]; ok {
		note = sharp
	}
	return ToTypesetterSpelling(note)
}
