package search

import (
	"strings"
)

// DefaultThreshold is the minimum word similarity accepted as a fuzzy match.
const DefaultThreshold = 0.85

// Matcher decides whether a text matches a keyword.
type Matcher struct {
	keyword   string
	threshold float64
}

// NewMatcher creates a Matcher for keyword, which is trimmed and lower-cased.
// A threshold <= 0 selects DefaultThreshold. It panics if the keyword is
// blank: the command parser rejects blank keywords before they get here.
func NewMatcher(keyword string, threshold float64) *Matcher {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		panic("search: keyword must not be blank")
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{keyword: kw, threshold: threshold}
}

// Keyword returns the normalised keyword.
func (m *Matcher) Keyword() string { return m.keyword }

// Match reports whether text contains the keyword, or any of its
// whitespace-separated words is similar enough to it.
func (m *Matcher) Match(text string) bool {
	text = strings.ToLower(text)
	if strings.Contains(text, m.keyword) {
		return true
	}
	for _, word := range strings.Fields(text) {
		if Similarity(word, m.keyword) >= m.threshold {
			return true
		}
	}
	return false
}

// FindMatches returns the indices of the matching texts in their original
// order.
func (m *Matcher) FindMatches(texts []string) []int {
	var out []int
	for i, text := range texts {
		if m.Match(text) {
			out = append(out, i)
		}
	}
	return out
}
