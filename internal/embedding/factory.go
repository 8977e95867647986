package embedding

import (
	"context"
	"fmt"
)

// Provider names accepted by New.
const (
	ProviderGemini  = "gemini"
	ProviderOpenAI  = "openai"
	ProviderHashing = "hashing"
)

// Config selects and configures an embedding provider.
type Config struct {
	Provider  string
	Model     string
	Dimension int
	APIKey    string
}

// New creates the provider named by cfg.Provider.
func New(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini:
		return NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model, cfg.Dimension)
	case ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.APIKey, cfg.Model, cfg.Dimension)
	case ProviderHashing:
		return NewHashingEmbedder(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
