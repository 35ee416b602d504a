package features

import (
	"errors"
	"sort"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

// matcher answers "does any term occur as a substring" with one Aho-Corasick pass
type matcher struct {
	m *goahocorasick.Machine
}

// newMatcher builds the automaton; keys are deduped and sorted for the double array trie
func newMatcher(terms []string) (*matcher, error) {
	uniq := lo.Uniq(lo.Compact(terms))
	if len(uniq) == 0 {
		return nil, errors.New("no terms")
	}
	sort.Strings(uniq)

	patterns := lo.Map(uniq, func(s string, _ int) []rune { return []rune(s) })
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &matcher{m: m}, nil
}

// Any reports whether any term occurs in text
func (mt *matcher) Any(text []rune) bool {
	if mt == nil || len(text) == 0 {
		return false
	}
	return len(mt.m.MultiPatternSearch(text, true)) > 0
}

// Find returns every distinct term occurring in text, in first-seen order
func (mt *matcher) Find(text []rune) []string {
	if mt == nil || len(text) == 0 {
		return nil
	}
	hits := mt.m.MultiPatternSearch(text, false)
	return lo.Uniq(lo.Map(hits, func(t *goahocorasick.Term, _ int) string { return string(t.Word) }))
}
