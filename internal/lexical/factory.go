package lexical

import (
	"context"
	"fmt"

	"github.com/jonathan/ats-scorer/internal/llm"
)

// Extractor names accepted by New.
const (
	ProviderLocal  = "local"
	ProviderGemini = "gemini"
)

// Config selects and configures an Extractor.
type Config struct {
	Provider string
	Model    string
	APIKey   string
}

// New creates the extractor named by cfg.Provider. Model-backed extractors
// implement io.Closer.
func New(ctx context.Context, cfg Config) (Extractor, error) {
	switch cfg.Provider {
	case ProviderLocal, "":
		return NewLocalExtractor(), nil
	case ProviderGemini:
		client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(llm.TierLite, cfg.Model), cfg.APIKey)
		if err != nil {
			return nil, err
		}
		return NewModelExtractor(client), nil
	default:
		return nil, fmt.Errorf("unknown keyword extractor %q", cfg.Provider)
	}
}
