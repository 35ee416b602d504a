// Package textvec turns text into fixed width numeric vectors using a vocabulary
// exported from a fitted term-count or tf-idf vectorizer
package textvec

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Vectorizer maps documents to dense rows of width Dim
type Vectorizer interface {
	Transform(docs []string) ([][]float64, error)
	Dim() int
	Kind() string
}

// Kinds understood by New
const (
	KindTFIDF = "tfidf"
	KindCount = "count"
)

// defaultTokenPattern is the usual "two or more word characters" rule with unicode classes
// Go's \w and \b are ASCII only, so the common exported form is rewritten to this
const defaultTokenPattern = `[\p{L}\p{N}_]{2,}`

// Config is the exported state of a fitted vectorizer
type Config struct {
	Kind         string         `json:"kind"`
	Vocabulary   map[string]int `json:"vocabulary"`
	IDF          []float64      `json:"idf,omitempty"`
	NgramRange   [2]int         `json:"ngram_range"`
	Lowercase    *bool          `json:"lowercase,omitempty"`
	Norm         *string        `json:"norm,omitempty"`
	SublinearTF  bool           `json:"sublinear_tf"`
	Binary       bool           `json:"binary"`
	UseIDF       *bool          `json:"use_idf,omitempty"`
	StopWords    []string       `json:"stop_words,omitempty"`
	TokenPattern string         `json:"token_pattern,omitempty"`
	Analyzer     string         `json:"analyzer,omitempty"`
}

// TFIDF is an immutable fitted vectorizer; safe for concurrent use
type TFIDF struct {
	kind      string
	vocab     map[string]int
	idf       []float64
	minN      int
	maxN      int
	lowercase bool
	norm      string
	sublinear bool
	binary    bool
	stop      map[string]struct{}
	token     *regexp.Regexp
}

// New validates cfg and builds a vectorizer
func New(cfg Config) (*TFIDF, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	if kind == "" {
		kind = KindTFIDF
	}
	if kind != KindTFIDF && kind != KindCount {
		return nil, fmt.Errorf("textvec: unsupported kind %q", cfg.Kind)
	}
	if a := strings.ToLower(cfg.Analyzer); a != "" && a != "word" {
		return nil, fmt.Errorf("textvec: unsupported analyzer %q (only word)", cfg.Analyzer)
	}
	if len(cfg.Vocabulary) == 0 {
		return nil, fmt.Errorf("textvec: empty vocabulary")
	}

	// indices must be a permutation of 0..n-1
	n := len(cfg.Vocabulary)
	seen := make([]bool, n)
	for term, idx := range cfg.Vocabulary {
		if idx < 0 || idx >= n || seen[idx] {
			return nil, fmt.Errorf("textvec: vocabulary index %d for %q is out of range or duplicated", idx, term)
		}
		seen[idx] = true
	}

	minN, maxN := cfg.NgramRange[0], cfg.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN < 1 || maxN < minN {
		return nil, fmt.Errorf("textvec: invalid ngram range %v", cfg.NgramRange)
	}

	useIDF := kind == KindTFIDF
	if cfg.UseIDF != nil {
		useIDF = *cfg.UseIDF && kind == KindTFIDF
	}
	var idf []float64
	if useIDF {
		if len(cfg.IDF) != n {
			return nil, fmt.Errorf("textvec: idf has %d weights for %d terms", len(cfg.IDF), n)
		}
		idf = append([]float64(nil), cfg.IDF...)
	}

	norm := ""
	if kind == KindTFIDF {
		norm = "l2"
	}
	if cfg.Norm != nil {
		norm = strings.ToLower(*cfg.Norm)
	}
	if norm != "" && norm != "l1" && norm != "l2" {
		return nil, fmt.Errorf("textvec: unsupported norm %q", norm)
	}

	token, err := compileTokenPattern(cfg.TokenPattern)
	if err != nil {
		return nil, err
	}

	vocab := make(map[string]int, n)
	for k, v := range cfg.Vocabulary {
		vocab[k] = v
	}

	return &TFIDF{
		kind:      kind,
		vocab:     vocab,
		idf:       idf,
		minN:      minN,
		maxN:      maxN,
		lowercase: cfg.Lowercase == nil || *cfg.Lowercase,
		norm:      norm,
		sublinear: cfg.SublinearTF,
		binary:    cfg.Binary,
		stop:      lo.SliceToMap(cfg.StopWords, func(s string) (string, struct{}) { return s, struct{}{} }),
		token:     token,
	}, nil
}

// compileTokenPattern accepts the exported regex, mapping the common default and
// dropping the (?u) flag Go does not know
func compileTokenPattern(p string) (*regexp.Regexp, error) {
	p = strings.TrimPrefix(p, "(?u)")
	if p == "" || p == `\b\w\w+\b` {
		p = defaultTokenPattern
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, fmt.Errorf("textvec: token pattern: %w", err)
	}
	return re, nil
}

// Dim is the vocabulary size
func (v *TFIDF) Dim() int { return len(v.vocab) }

// Kind reports tfidf or count
func (v *TFIDF) Kind() string { return v.kind }

// Transform returns one dense row per document
func (v *TFIDF) Transform(docs []string) ([][]float64, error) {
	out := make([][]float64, len(docs))
	for i, d := range docs {
		out[i] = v.row(d)
	}
	return out, nil
}

// TransformOne is Transform for a single document
func (v *TFIDF) TransformOne(doc string) []float64 { return v.row(doc) }

func (v *TFIDF) row(doc string) []float64 {
	row := make([]float64, len(v.vocab))
	for _, term := range v.Analyze(doc) {
		if idx, ok := v.vocab[term]; ok {
			row[idx]++
		}
	}

	for i, tf := range row {
		if tf == 0 {
			continue
		}
		switch {
		case v.binary:
			tf = 1
		case v.sublinear:
			tf = 1 + math.Log(tf)
		}
		if v.idf != nil {
			tf *= v.idf[i]
		}
		row[i] = tf
	}

	normalizeRow(row, v.norm)
	return row
}

// Analyze splits doc into the terms that are looked up in the vocabulary
func (v *TFIDF) Analyze(doc string) []string {
	if v.lowercase {
		doc = strings.ToLower(doc)
	}
	tokens := v.token.FindAllString(doc, -1)
	if len(v.stop) > 0 {
		tokens = lo.Reject(tokens, func(t string, _ int) bool {
			_, drop := v.stop[t]
			return drop
		})
	}
	if v.maxN == 1 {
		return tokens
	}

	var terms []string
	if v.minN == 1 {
		terms = append(terms, tokens...)
	}
	for n := max(v.minN, 2); n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func normalizeRow(row []float64, norm string) {
	var sum float64
	switch norm {
	case "l2":
		for _, x := range row {
			sum += x * x
		}
		sum = math.Sqrt(sum)
	case "l1":
		for _, x := range row {
			sum += math.Abs(x)
		}
	default:
		return
	}
	if sum == 0 {
		return
	}
	for i := range row {
		row[i] /= sum
	}
}
