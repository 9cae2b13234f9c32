package model

import (
	"fmt"
	"slices"
	"strings"
)

// Duration is a note length in LilyPond notation (4 = quarter note).
type Duration int

// Quarter is the rhythmic value given to every scale note.
const Quarter Duration = 4

// Sequence is a generated scale: the ascending run followed by the
// descending run, sharing the turnaround note once.
//
// Notes holds plain note names ("c", "f#", "eb"). The descending half is
// always the reversed ascending half without its top note.
type Sequence struct {
	Notes    []string
	Octaves  int
	Duration Duration
}

// NewSequence builds a Sequence from the ascending notes.
func NewSequence(ascending []string, octaves int) *Sequence {
	notes := make([]string, 0, 2*len(ascending)-1)
	notes = append(notes, ascending...)
	if len(ascending) > 1 {
		descending := slices.Clone(ascending)
		slices.Reverse(descending)
		notes = append(notes, descending[1:]...)
	}
	return &Sequence{
		Notes:    notes,
		Octaves:  octaves,
		Duration: Quarter,
	}
}

// ExpectedLen returns the length of a full sequence for the given octave
// count and number of steps per octave.
func ExpectedLen(octaves, stepsPerOctave int) int {
	return 2*(octaves*stepsPerOctave+1) - 1
}

// Len returns the number of notes in the sequence.
func (s *Sequence) Len() int {
	return len(s.Notes)
}

// Ascending returns the ascending run, including the top note.
func (s *Sequence) Ascending() []string {
	if len(s.Notes) == 0 {
		return nil
	}
	return s.Notes[:s.turnaround()+1]
}

// Descending returns the descending run, excluding the top note.
func (s *Sequence) Descending() []string {
	if len(s.Notes) == 0 {
		return nil
	}
	return s.Notes[s.turnaround()+1:]
}

// Top returns the turnaround note.
func (s *Sequence) Top() string {
	if len(s.Notes) == 0 {
		return ""
	}
	return s.Notes[s.turnaround()]
}

func (s *Sequence) turnaround() int {
	return (len(s.Notes) - 1) / 2
}

// Tokens renders each note followed by the duration marker.
//
// spell maps a note name to its output spelling; descending is true for
// notes after the turnaround. A nil spell keeps the plain names.
func (s *Sequence) Tokens(spell func(note string, descending bool) string) []string {
	top := s.turnaround()
	tokens := make([]string, len(s.Notes))
	for i, note := range s.Notes {
		if spell != nil {
			note = spell(note, i > top)
		}
		tokens[i] = fmt.Sprintf("%s%d", note, s.Duration)
	}
	return tokens
}

// String returns the plain tokens joined by single spaces, e.g. "c4 d4 e4".
func (s *Sequence) String() string {
	return strings.Join(s.Tokens(nil), " ")
}
