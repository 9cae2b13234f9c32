package model

import (
	"fmt"
	"strings"
)

// Mode is the tonality of a staff's key signature.
type Mode int

const (
	// ModeMajor renders as \major.
	ModeMajor Mode = iota

	// ModeMinor renders as \minor.
	ModeMinor
)

// String returns "major" or "minor".
func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Staff is one scale within a score.
//
// Example:
//
//	staff := NewStaff("harmonic_minor", "g", ModeMinor, seq)
//	staff.Heading() // "Harmonic Minor Scale in G (Minor)"
type Staff struct {
	// Score is a reference to the parent score.
	Score *Score

	// ScaleType is the canonical scale type name, e.g. "natural_minor".
	ScaleType string

	// Tonic is the first note of the scale in the spelling used for the
	// sequence, e.g. "f#".
	Tonic string

	// Mode selects the key signature mode.
	Mode Mode

	// Sequence is the generated scale.
	Sequence *Sequence
}

// NewStaff creates a Staff. Use Score.AddStaff to attach it.
func NewStaff(scaleType, tonic string, mode Mode, seq *Sequence) *Staff {
	return &Staff{
		ScaleType: scaleType,
		Tonic:     tonic,
		Mode:      mode,
		Sequence:  seq,
	}
}

// Heading returns the title printed above the staff.
func (s *Staff) Heading() string {
	return fmt.Sprintf("%s Scale in %s (%s)", titleCase(s.ScaleType), capitalize(s.Tonic), capitalize(s.Mode.String()))
}

// titleCase turns "harmonic_minor" into "Harmonic Minor".
func titleCase(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
