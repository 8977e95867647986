// Package keyphrase ranks the one and two word phrases of a job description
// by their embedding similarity to the whole description.
package keyphrase

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/ats-scorer/internal/embedding"
	"github.com/jonathan/ats-scorer/internal/lexical"
	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

// DefaultTopN is the number of keyphrases returned when none is configured.
const DefaultTopN = 5

// tokenPattern matches runs of two or more Unicode letters, digits or underscores.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Extractor returns the top keyphrases of a JD.
type Extractor struct {
	provider embedding.Provider
	topN     int
}

// NewExtractor creates an extractor. A non-positive topN uses DefaultTopN.
func NewExtractor(provider embedding.Provider, topN int) *Extractor {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Extractor{provider: provider, topN: topN}
}

type candidate struct {
	phrase string
	score  float64
}

// Extract validates req and returns up to topN keyphrases, best first.
// Ties keep alphabetical order.
func (e *Extractor) Extract(ctx context.Context, req types.KeyphraseRequest) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	phrases := Candidates(req.JD)
	if len(phrases) == 0 {
		return []string{}, nil
	}

	vectors, err := embedding.EmbedAll(ctx, e.provider, append([]string{req.JD}, phrases...))
	if err != nil {
		return nil, &scoring.ProviderError{Provider: e.provider.ModelInfo(), Op: "embed", Cause: err}
	}

	ranked := make([]candidate, len(phrases))
	for i, p := range phrases {
		sim, err := embedding.CosineSimilarity(vectors[0], vectors[i+1])
		if err != nil {
			return nil, &scoring.ProviderError{Provider: e.provider.ModelInfo(), Op: "compare", Cause: err}
		}
		ranked[i] = candidate{phrase: p, score: sim}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	n := min(e.topN, len(ranked))
	out := make([]string, n)
	for i := range out {
		out[i] = ranked[i].phrase
	}
	return out, nil
}

// Candidates returns the distinct unigrams and bigrams of text in
// alphabetical order. Text is lower-cased, split into runs of two or more
// letters, digits or underscores, and stripped of stop words before bigrams are formed.
func Candidates(text string) []string {
	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if !lexical.IsStopWord(tok) {
			tokens = append(tokens, tok)
		}
	}

	seen := make(map[string]struct{}, 2*len(tokens))
	for i, tok := range tokens {
		seen[tok] = struct{}{}
		if i > 0 {
			seen[tokens[i-1]+" "+tok] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
