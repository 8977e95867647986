package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	defaultGeminiModel     = "text-embedding-004"
	defaultGeminiDimension = 768

	// maxGeminiBatch is the API limit on requests per BatchEmbedContents call.
	maxGeminiBatch = 100
)

// GeminiEmbedder embeds text with a Google Gemini embedding model.
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	name   string
	dim    int
}

// NewGeminiEmbedder creates a Gemini embedder. Empty model and zero dimension select defaults.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string, dim int) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if dim <= 0 {
		dim = defaultGeminiDimension
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	em := client.EmbeddingModel(model)
	em.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{client: client, model: em, name: model, dim: dim}, nil
}

// Embed returns the embedding of text. Blank text is never sent to the API;
// it maps to the zero vector, which scores a cosine similarity of 0.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if isBlank(text) {
		return make([]float32, e.dim), nil
	}

	res, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding in response")
	}
	return res.Embedding.Values, nil
}

// EmbedBatch embeds all non-blank texts with BatchEmbedContents calls of at
// most maxGeminiBatch texts each.
func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var sent []int
	for i, text := range texts {
		if isBlank(text) {
			vectors[i] = make([]float32, e.dim)
			continue
		}
		sent = append(sent, i)
	}

	for start := 0; start < len(sent); start += maxGeminiBatch {
		window := sent[start:min(start+maxGeminiBatch, len(sent))]
		batch := e.model.NewBatch()
		for _, idx := range window {
			batch.AddContent(genai.Text(texts[idx]))
		}

		res, err := e.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to batch embed contents: %w", err)
		}
		if len(res.Embeddings) != len(window) {
			return nil, fmt.Errorf("expected %d embeddings, got %d", len(window), len(res.Embeddings))
		}
		for j, idx := range window {
			if res.Embeddings[j] == nil {
				return nil, fmt.Errorf("missing embedding for text %d", idx)
			}
			vectors[idx] = res.Embeddings[j].Values
		}
	}
	return vectors, nil
}

// MaxBatchSize implements BatchLimiter.
func (e *GeminiEmbedder) MaxBatchSize() int {
	return maxGeminiBatch
}

// ModelInfo returns the Gemini model name.
func (e *GeminiEmbedder) ModelInfo() string {
	return "gemini/" + e.name
}

// Close releases the underlying client.
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
