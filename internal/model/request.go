package model

import "fmt"

// Octave bounds accepted by ScaleRequest.
const (
	MinOctaves = 1
	MaxOctaves = 4
)

// ScaleRequest asks for one scale: a starting key, a scale type name and an
// octave count.
//
// Key is a free-form note name such as "c", "F#" or "eb". Unrecognized keys
// are not an error; they degrade to C with a warning during generation.
type ScaleRequest struct {
	Key       string
	ScaleType string
	Octaves   int
}

// Validate checks the octave count.
//
// Scale types are checked by the generator against its own table, so a
// request with an unknown type passes Validate.
func (r ScaleRequest) Validate() error {
	if r.Octaves < MinOctaves || r.Octaves > MaxOctaves {
		return NewError(KindValidation, fmt.Sprintf("octaves %d", r.Octaves), ErrInvalidOctaves)
	}
	return nil
}
