package lsysdraw

import "fmt"

// Letter is a single symbol of an L-system alphabet.
type Letter rune

// Word is an ordered sequence of letters.
type Word []Letter

// ParseWord converts a string into a word, one letter per rune.
func ParseWord(s string) Word {
	w := make(Word, 0, len(s))
	for _, r := range s {
		w = append(w, Letter(r))
	}
	return w
}

// Word stringifier
func (w Word) String() string {
	out := make([]rune, len(w))
	for i, l := range w {
		out[i] = rune(l)
	}
	return string(out)
}

// Grammar maps a letter to its replacement word. Letters without an entry
// are terminals: every derivation passes them through unchanged.
type Grammar map[Letter]Word

// ParseGrammar builds a grammar out of a map of textual productions. Every
// key must be a single character.
func ParseGrammar(productions map[string]string) (Grammar, error) {
	grammar := make(Grammar, len(productions))
	for from, to := range productions {
		runes := []rune(from)
		if len(runes) != 1 {
			return nil, fmt.Errorf("lsysdraw: production key %q must have length 1", from)
		}
		grammar[Letter(runes[0])] = ParseWord(to)
	}
	return grammar, nil
}

// Parameters configure a System before any derivation takes place. They are
// read-only for the life of a render.
type Parameters struct {
	Axiom Word
	Rules Grammar
}
