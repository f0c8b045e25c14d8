// Package lsysdraw generates and renders L-systems: an axiom is grown by
// iterative grammar rewriting, and the resulting word is interpreted as
// turtle-graphics drawing instructions streamed to a canvas.
package lsysdraw

import (
	"context"
	"errors"
)

// ErrNegativeGenerations is returned by Expand for a generation count < 0.
var ErrNegativeGenerations = errors.New("lsysdraw: generation count must be >= 0")

// System holds the state of an L-system across derivations.
type System struct {
	Parameters Parameters

	generation uint
	current    Word
}

// New prepares a system at generation 0, its value being the axiom.
func New(parameters Parameters) *System {
	return &System{
		Parameters: parameters,
		current:    parameters.Axiom,
	}
}

// outputSize computes the length of the next generation up-front so the
// rewrite runs on a single allocation.
func (s *System) outputSize(input Word) int {
	var n int
	for _, l := range input {
		if replacement, ok := s.Parameters.Rules[l]; ok {
			n += len(replacement)
		} else {
			n++
		}
	}
	return n
}

// Derivate runs one rewrite pass. The new generation is built from the
// immediately preceding word only; the preceding word is never mutated.
func (s *System) Derivate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	output := make(Word, 0, s.outputSize(s.current))
	for _, l := range s.current {
		if replacement, ok := s.Parameters.Rules[l]; ok {
			output = append(output, replacement...)
		} else {
			output = append(output, l)
		}
	}

	s.current = output
	s.generation++
	return nil
}

// DerivateUntil runs derivations until the given generation is reached. It
// is a no-op when the system is already there.
func (s *System) DerivateUntil(ctx context.Context, generation uint) error {
	for s.generation < generation {
		if err := s.Derivate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Export returns the current word. Callers must not mutate it.
func (s *System) Export() Word {
	return s.current
}

// Generation returns the number of derivations run so far.
func (s *System) Generation() uint {
	return s.generation
}

// Expand derives the axiom under the given rules for the given number of
// generations. It is a pure function of its inputs; a generation count of 0
// returns the axiom unchanged.
func Expand(axiom Word, rules Grammar, generations int) (Word, error) {
	if generations < 0 {
		return nil, ErrNegativeGenerations
	}

	system := New(Parameters{Axiom: axiom, Rules: rules})
	if err := system.DerivateUntil(context.Background(), uint(generations)); err != nil {
		return nil, err
	}
	return system.Export(), nil
}
