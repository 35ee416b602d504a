// Package lexicon loads the word lists used by the heuristic feature extractor
// from the embedded lexicon.json
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

//go:embed lexicon.json
var embedded []byte

type rawLexicon struct {
	Version  int            `json:"version"`
	Meta     map[string]any `json:"meta"`
	Cues     []string       `json:"cues"`
	Contrast []string       `json:"contrast"`
	Positive []string       `json:"positive"`
	Negative []string       `json:"negative"`
	Polite   []string       `json:"polite"`
	Rude     []string       `json:"rude"`
	Negation []string       `json:"negation"`
	Self     string         `json:"self"`
}

// Lexicon holds lowercased, deduped term lists in file order
type Lexicon struct {
	Version  int
	Cues     []string
	Contrast []string
	Positive []string
	Negative []string
	Polite   []string
	Rude     []string
	Negation []string
	Self     string
}

// Load returns the lexicon compiled from the embedded lexicon.json
func Load() (*Lexicon, error) {
	return Parse(embedded)
}

// MustLoad is Load that panics; the embedded file is covered by tests
func MustLoad() *Lexicon {
	lx, err := Load()
	if err != nil {
		panic(err)
	}
	return lx
}

// Parse compiles a lexicon from raw JSON
func Parse(data []byte) (*Lexicon, error) {
	var rl rawLexicon
	if err := json.Unmarshal(data, &rl); err != nil {
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	if rl.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported version %d (want 1)", rl.Version)
	}

	lx := &Lexicon{
		Version:  rl.Version,
		Cues:     clean(rl.Cues),
		Contrast: clean(rl.Contrast),
		Positive: clean(rl.Positive),
		Negative: clean(rl.Negative),
		Polite:   clean(rl.Polite),
		Rude:     clean(rl.Rude),
		Negation: clean(rl.Negation),
		Self:     strings.ToLower(strings.TrimSpace(rl.Self)),
	}

	for name, list := range lx.lists() {
		if len(list) == 0 {
			return nil, fmt.Errorf("lexicon: %s list is empty", name)
		}
	}
	if lx.Self == "" {
		return nil, fmt.Errorf("lexicon: self marker is empty")
	}
	return lx, nil
}

// lists names every term list for validation and debugging
func (lx *Lexicon) lists() map[string][]string {
	return map[string][]string{
		"cues":     lx.Cues,
		"contrast": lx.Contrast,
		"positive": lx.Positive,
		"negative": lx.Negative,
		"polite":   lx.Polite,
		"rude":     lx.Rude,
		"negation": lx.Negation,
	}
}

// Terms returns the number of distinct terms across all lists
func (lx *Lexicon) Terms() int {
	var all []string
	for _, l := range lx.lists() {
		all = append(all, l...)
	}
	return len(lo.Uniq(all))
}

// clean lowercases and trims terms, dropping blanks and duplicates while keeping order
func clean(in []string) []string {
	out := lo.FilterMap(in, func(s string, _ int) (string, bool) {
		s = strings.ToLower(strings.TrimSpace(s))
		return s, s != ""
	})
	return lo.Uniq(out)
}
