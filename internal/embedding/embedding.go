// Package embedding provides dense text embedding providers and vector similarity.
package embedding

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Provider turns text into a fixed-length dense vector.
// Implementations must be safe for concurrent use.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// ModelInfo identifies the underlying model for logs.
	ModelInfo() string
}

// BatchProvider is implemented by providers that can embed several texts in one call.
type BatchProvider interface {
	Provider
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// BatchLimiter is implemented by batch providers whose API caps the number of
// texts per call. A non-positive size means no cap.
type BatchLimiter interface {
	MaxBatchSize() int
}

// ErrDimensionMismatch is returned when two vectors cannot be compared.
var ErrDimensionMismatch = errors.New("embedding dimension mismatch")

// maxParallelEmbeds bounds fan-out for providers without batch support.
const maxParallelEmbeds = 8

// CosineSimilarity returns dot(a,b) / (|a|*|b|).
// If either vector is all zeros (or empty) the result is 0.
func CosineSimilarity(a, b []float32) (float64, error) {
	var dot, normA, normB float64
	for _, v := range a {
		normA += float64(v) * float64(v)
	}
	for _, v := range b {
		normB += float64(v) * float64(v)
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// EmbedAll embeds every text, using batch calls when the provider supports it.
// Batches are split to respect the provider's BatchLimiter size.
// The returned slice is index-aligned with texts.
func EmbedAll(ctx context.Context, p Provider, texts []string) ([][]float32, error) {
	if bp, ok := p.(BatchProvider); ok {
		return embedBatches(ctx, bp, texts)
	}

	vectors := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelEmbeds)
	for i, text := range texts {
		g.Go(func() error {
			vec, err := p.Embed(gctx, text)
			if err != nil {
				return fmt.Errorf("embedding text %d: %w", i, err)
			}
			vectors[i] = vec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

func embedBatches(ctx context.Context, bp BatchProvider, texts []string) ([][]float32, error) {
	size := len(texts)
	if bl, ok := bp.(BatchLimiter); ok && bl.MaxBatchSize() > 0 {
		size = bl.MaxBatchSize()
	}
	if size == 0 {
		return [][]float32{}, nil
	}

	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += size {
		chunk := texts[start:min(start+size, len(texts))]
		out, err := bp.EmbedBatch(ctx, chunk)
		if err != nil {
			return nil, err
		}
		if len(out) != len(chunk) {
			return nil, fmt.Errorf("batch embedding returned %d vectors for %d texts", len(out), len(chunk))
		}
		vectors = append(vectors, out...)
	}
	return vectors, nil
}

// isBlank reports whether text has no content worth sending to a remote model.
func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
