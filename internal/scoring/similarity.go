package scoring

import (
	"context"
	"strings"

	"github.com/jonathan/ats-scorer/internal/embedding"
)

// Similarities are raw cosine similarities between the JD and each section.
type Similarities struct {
	Experience float64
	Skills     float64
	Education  float64
}

// SimilarityScorer compares each resume section with the JD in embedding space.
type SimilarityScorer struct {
	provider embedding.Provider
}

// NewSimilarityScorer creates a scorer backed by provider.
func NewSimilarityScorer(provider embedding.Provider) *SimilarityScorer {
	return &SimilarityScorer{provider: provider}
}

// Score embeds the JD once and every section (the empty string for blank
// sections) concurrently, then returns the per-section cosine similarity.
// Values are not rounded.
func (s *SimilarityScorer) Score(ctx context.Context, jd string, sections SectionSet) (Similarities, error) {
	texts := []string{
		jd,
		sectionInput(sections.Experience),
		sectionInput(sections.Skills),
		sectionInput(sections.Education),
	}

	vectors, err := embedding.EmbedAll(ctx, s.provider, texts)
	if err != nil {
		return Similarities{}, &ProviderError{Provider: s.provider.ModelInfo(), Op: "embed", Cause: err}
	}

	sims := make([]float64, 3)
	for i := range sims {
		sim, err := embedding.CosineSimilarity(vectors[0], vectors[i+1])
		if err != nil {
			return Similarities{}, &ProviderError{Provider: s.provider.ModelInfo(), Op: "compare", Cause: err}
		}
		sims[i] = sim
	}

	return Similarities{Experience: sims[0], Skills: sims[1], Education: sims[2]}, nil
}

func sectionInput(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	return text
}
