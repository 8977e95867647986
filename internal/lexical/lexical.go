// Package lexical extracts normalized keyword and entity sets from free text.
package lexical

import (
	"context"
	"sort"
)

// Extractor returns the set of lower-cased keywords and named entities in text.
// Implementations must be safe for concurrent use.
type Extractor interface {
	Extract(ctx context.Context, text string) (KeywordSet, error)
}

// KeywordSet is a set of normalized keyword strings.
type KeywordSet map[string]struct{}

// NewKeywordSet builds a set from the given keywords.
func NewKeywordSet(keywords ...string) KeywordSet {
	s := make(KeywordSet, len(keywords))
	for _, k := range keywords {
		s.Add(k)
	}
	return s
}

// Add inserts a keyword; empty strings are ignored.
func (s KeywordSet) Add(keyword string) {
	if keyword == "" {
		return
	}
	s[keyword] = struct{}{}
}

// Has reports whether keyword is in the set.
func (s KeywordSet) Has(keyword string) bool {
	_, ok := s[keyword]
	return ok
}

// Intersect returns the keywords present in both sets.
func (s KeywordSet) Intersect(other KeywordSet) KeywordSet {
	out := make(KeywordSet)
	for k := range s {
		if other.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Difference returns the keywords in s that are not in other.
func (s KeywordSet) Difference(other KeywordSet) KeywordSet {
	out := make(KeywordSet)
	for k := range s {
		if !other.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Sorted returns the keywords in ascending lexicographic order. Never nil.
func (s KeywordSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
