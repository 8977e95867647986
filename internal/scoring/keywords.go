package scoring

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-scorer/internal/lexical"
)

// DefaultMissingLimit caps the missing keyword list.
const DefaultMissingLimit = 20

// KeywordResult holds the reconciled keyword lists plus the raw set sizes.
type KeywordResult struct {
	Matched  []string
	Missing  []string
	JDCount  int
	ResCount int
}

// KeywordMatcher compares the keyword sets of a JD and a full resume.
type KeywordMatcher struct {
	extractor    lexical.Extractor
	missingLimit int
}

// NewKeywordMatcher creates a matcher. A non-positive limit uses DefaultMissingLimit.
func NewKeywordMatcher(extractor lexical.Extractor, missingLimit int) *KeywordMatcher {
	if missingLimit <= 0 {
		missingLimit = DefaultMissingLimit
	}
	return &KeywordMatcher{extractor: extractor, missingLimit: missingLimit}
}

// Match extracts both keyword sets concurrently. Matched is the sorted
// intersection; Missing is the sorted JD-only set truncated after sorting.
func (m *KeywordMatcher) Match(ctx context.Context, jd, resume string) (KeywordResult, error) {
	var jdSet, resumeSet lexical.KeywordSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		set, err := m.extractor.Extract(gctx, jd)
		if err != nil {
			return fmt.Errorf("jd: %w", err)
		}
		jdSet = set
		return nil
	})
	g.Go(func() error {
		set, err := m.extractor.Extract(gctx, resume)
		if err != nil {
			return fmt.Errorf("resume: %w", err)
		}
		resumeSet = set
		return nil
	})
	if err := g.Wait(); err != nil {
		return KeywordResult{}, &ProviderError{Provider: "lexical", Op: "extract", Cause: err}
	}

	missing := jdSet.Difference(resumeSet).Sorted()
	if len(missing) > m.missingLimit {
		missing = missing[:m.missingLimit]
	}
	return KeywordResult{
		Matched:  jdSet.Intersect(resumeSet).Sorted(),
		Missing:  missing,
		JDCount:  len(jdSet),
		ResCount: len(resumeSet),
	}, nil
}
