// Package features derives the six heuristic sarcasm cues from normalized text
//
// Every feature is a 0/1 indicator built from substring membership, so "i" matches
// inside "this" and "no" matches inside "know". That looseness is what the
// classifier was fitted on and must not be tightened
package features

import (
	"fmt"
	"strings"

	"sarcasm/internal/core/lexicon"
	"sarcasm/internal/core/normalize"
)

// Size is the length of every heuristic vector
const Size = 6

// Feature positions inside a Vector
const (
	CuePresent = iota
	Contrast
	PosNegMix
	PoliteRudeMix
	SelfNeg
	Flip
)

var names = [Size]string{"cue_present", "contrast", "pos_neg_mix", "polite_rude_mix", "self_neg", "flip"}

// Names returns the feature names in vector order
func Names() []string { return names[:] }

// Vector is the ordered heuristic tuple, each value 0 or 1
type Vector [Size]int

// Floats returns the vector as classifier input
func (v Vector) Floats() []float64 {
	out := make([]float64, Size)
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Named pairs each value with its name
func (v Vector) Named() map[string]int {
	out := make(map[string]int, Size)
	for i, x := range v {
		out[names[i]] = x
	}
	return out
}

// Extractor is immutable after New and safe for concurrent use
type Extractor struct {
	cues, contrast     *matcher
	positive, negative *matcher
	polite, rude       *matcher
	negation           *matcher
	self               string
}

// New compiles the matchers for lx
func New(lx *lexicon.Lexicon) (*Extractor, error) {
	if lx == nil {
		return nil, fmt.Errorf("features: nil lexicon")
	}
	e := &Extractor{self: lx.Self}
	build := []struct {
		name  string
		terms []string
		dst   **matcher
	}{
		{"cues", lx.Cues, &e.cues},
		{"contrast", lx.Contrast, &e.contrast},
		{"positive", lx.Positive, &e.positive},
		{"negative", lx.Negative, &e.negative},
		{"polite", lx.Polite, &e.polite},
		{"rude", lx.Rude, &e.rude},
		{"negation", lx.Negation, &e.negation},
	}
	for _, b := range build {
		m, err := newMatcher(b.terms)
		if err != nil {
			return nil, fmt.Errorf("features: build %s matcher: %w", b.name, err)
		}
		*b.dst = m
	}
	return e, nil
}

// Default builds an extractor over the embedded lexicon
func Default() (*Extractor, error) {
	lx, err := lexicon.Load()
	if err != nil {
		return nil, err
	}
	return New(lx)
}

// Extract computes [cue_present, contrast, pos_neg_mix, polite_rude_mix, self_neg, flip]
// text is expected to be normalized already; empty text yields all zeros
func (e *Extractor) Extract(text string) Vector {
	var v Vector
	if text == "" {
		return v
	}
	rs := []rune(text)

	v[CuePresent] = b2i(e.cues.Any(rs))
	v[Contrast] = b2i(e.contrast.Any(rs))
	v[PosNegMix] = b2i(e.positive.Any(rs) && e.negative.Any(rs))
	v[PoliteRudeMix] = b2i(e.polite.Any(rs) && e.rude.Any(rs))
	v[SelfNeg] = b2i(strings.Contains(text, e.self) && e.negation.Any(rs))
	v[Flip] = b2i(e.flip(text))
	return v
}

// flip reports the first adjacent token pair whose polarity changes
func (e *Extractor) flip(text string) bool {
	words := strings.FieldsFunc(text, normalize.IsSpace)
	if len(words) < 2 {
		return false
	}
	prevPos, prevNeg := e.polarity(words[0])
	for _, w := range words[1:] {
		pos, neg := e.polarity(w)
		if (prevPos && neg) || (prevNeg && pos) {
			return true
		}
		prevPos, prevNeg = pos, neg
	}
	return false
}

func (e *Extractor) polarity(word string) (pos, neg bool) {
	rs := []rune(word)
	return e.positive.Any(rs), e.negative.Any(rs)
}

// Cues returns the cue phrases found in text, for debugging output
func (e *Extractor) Cues(text string) []string {
	return e.cues.Find([]rune(text))
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
