package theory

// relativeMinors covers the 15 standard major keys.
var relativeMinors = map[string]string{
	"c":  "a",
	"g":  "e",
	"d":  "b",
	"a":  "f#",
	"e":  "c#",
	"b":  "g#",
	"f#": "d#",
	"c#": "a#",
	"f":  "d",
	"bb": "g",
	"eb": "c",
	"ab": "f",
	"db": "bb",
	"gb": "eb",
	"cb": "ab",
}

// MajorKeys returns the major keys known to RelativeMinor, sharps first,
// then flats, in circle-of-fifths order.
func MajorKeys() []string {
	return []string{"c", "g", "d", "a", "e", "b", "f#", "c#", "f", "bb", "eb", "ab", "db", "gb", "cb"}
}
