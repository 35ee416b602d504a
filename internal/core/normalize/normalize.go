// Package normalize prepares text for the heuristic pipeline
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode lowercase
// 3 Drop links ("http" plus the non-space run after it)
// 4 Drop every rune that is not a-z or whitespace
// 5 Trim surrounding whitespace
//
// Inner whitespace is kept as is; the vectorizer tokenizes on its own
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalizer is concurrency safe; casers are pooled because they carry state
type Normalizer struct{}

var casePool = sync.Pool{
	New: func() any {
		c := cases.Lower(language.Und)
		return &c
	},
}

// New constructs a Normalizer
func New() *Normalizer { return &Normalizer{} }

// Normalize returns the normalized form of s following the pipeline described above
func (n *Normalizer) Normalize(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8
	s = strings.ToValidUTF8(s, "")

	// 2 lowercase with a pooled caser
	c := casePool.Get().(*cases.Caser)
	s = c.String(s)
	c.Reset()
	casePool.Put(c)

	// 3-4 single left to right pass
	s = strip(s)

	// 5 trim
	return strings.TrimFunc(s, IsSpace)
}

// Normalize is a package level shortcut for New().Normalize
func Normalize(s string) string { return New().Normalize(s) }

// strip removes links and anything outside [a-z\s]
// at each position the link rule wins, so "http://x" disappears whole while a bare "http " stays
func strip(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); {
		if end := linkEnd(rs, i); end > i {
			i = end
			continue
		}
		r := rs[i]
		if (r >= 'a' && r <= 'z') || IsSpace(r) {
			b.WriteRune(r)
		}
		i++
	}
	return b.String()
}

// linkEnd returns the index just past a link starting at i, or i when there is none
// a link is "http" followed by at least one non-space rune
func linkEnd(rs []rune, i int) int {
	const prefix = "http"
	if i+len(prefix) >= len(rs) {
		return i
	}
	for k, p := range prefix {
		if rs[i+k] != p {
			return i
		}
	}
	j := i + len(prefix)
	if IsSpace(rs[j]) {
		return i
	}
	for j < len(rs) && !IsSpace(rs[j]) {
		j++
	}
	return j
}

// IsSpace reports unicode whitespace, including the ASCII information separators
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
