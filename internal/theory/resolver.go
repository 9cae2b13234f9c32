package theory

import (
	"fmt"
	"strings"
)

// Resolver maps free-form note and key names onto the static tables.
//
// Unrecognized names never fail: the resolver reports a warning through its
// callback and falls back to a default, so one exotic key does not stop a
// batch run.
type Resolver struct {
	warn func(string)
}

// NewResolver creates a Resolver. warn receives each fallback diagnostic;
// nil discards them.
func NewResolver(warn func(string)) *Resolver {
	return &Resolver{warn: warn}
}

// ResolveIndex returns the pitch class of note within table.
//
// The lookup is case-insensitive. A direct match wins; otherwise the
// enharmonic map is tried. Anything else resolves to C with a warning.
func (r *Resolver) ResolveIndex(note string, table SpellingTable) PitchClass {
	note = strings.ToLower(strings.TrimSpace(note))
	if pc, ok := table.Index(note); ok {
		return pc
	}
	if alt, ok := enharmonic[note]; ok {
		if pc, ok := table.Index(alt); ok {
			return pc
		}
	}
	r.warnf("note %q is not recognized, defaulting to 'c'", note)
	pc, _ := table.Index("c")
	return pc
}

// RelativeMinor returns the relative minor of a major key.
//
// Unknown keys resolve to "a" with a warning. There is no inverse lookup.
func (r *Resolver) RelativeMinor(majorKey string) string {
	key := strings.ToLower(strings.TrimSpace(majorKey))
	if minor, ok := relativeMinors[key]; ok {
		return minor
	}
	r.warnf("relative minor for key %q not found, defaulting to 'a'", majorKey)
	return "a"
}

func (r *Resolver) warnf(format string, args ...any) {
	if r == nil || r.warn == nil {
		return
	}
	r.warn(fmt.Sprintf(format, args...))
}
