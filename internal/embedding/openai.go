package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "text-embedding-3-small"

	// maxOpenAIBatch is the API limit on inputs per embeddings request.
	maxOpenAIBatch = 2048
)

// OpenAIEmbedder uses the OpenAI API for embeddings.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	dim    int
}

// NewOpenAIEmbedder creates an OpenAI embedder. Empty model and zero dimension select defaults.
func NewOpenAIEmbedder(apiKey, model string, dim int) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	if dim <= 0 {
		dim = 1536 // text-embedding-3-small
		if model == "text-embedding-3-large" {
			dim = 3072
		}
	}

	return &OpenAIEmbedder{
		client: openai.NewClient(apiKey),
		model:  model,
		dim:    dim,
	}, nil
}

// Embed generates an embedding for a single text. Blank text maps to the zero vector.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds all non-blank texts with a single CreateEmbeddings request.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	var inputs []string
	var sent []int
	for i, text := range texts {
		if isBlank(text) {
			vectors[i] = make([]float32, e.dim)
			continue
		}
		inputs = append(inputs, text)
		sent = append(sent, i)
	}
	if len(inputs) == 0 {
		return vectors, nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(e.model),
		Input: inputs,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}

	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(sent) {
			return nil, fmt.Errorf("embedding index %d out of range", item.Index)
		}
		v := make([]float32, len(item.Embedding))
		for i := range item.Embedding {
			v[i] = float32(item.Embedding[i])
		}
		l2normalize(v)
		vectors[sent[item.Index]] = v
	}
	return vectors, nil
}

// MaxBatchSize implements BatchLimiter.
func (e *OpenAIEmbedder) MaxBatchSize() int {
	return maxOpenAIBatch
}

// ModelInfo returns model information.
func (e *OpenAIEmbedder) ModelInfo() string {
	return "openai/" + e.model
}

// l2normalize normalizes a vector to unit length in place.
func l2normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return
	}
	inv := float32(1.0 / math.Sqrt(sum))
	for i := range v {
		v[i] *= inv
	}
}
