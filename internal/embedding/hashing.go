package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

const defaultHashingDimension = 512

// HashingEmbedder is a deterministic bag-of-words embedder based on feature hashing.
// It needs no network access and is meant for local runs and tests; identical
// texts always produce identical vectors.
type HashingEmbedder struct {
	dim int
}

// NewHashingEmbedder creates a hashing embedder with the given dimension (default 512).
func NewHashingEmbedder(dim int) *HashingEmbedder {
	if dim <= 0 {
		dim = defaultHashingDimension
	}
	return &HashingEmbedder{dim: dim}
}

// Embed hashes lower-cased word unigrams and bigrams into a unit-length vector.
// Text without any word characters yields the zero vector.
func (e *HashingEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vec := make([]float32, e.dim)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	for i, w := range words {
		e.add(vec, w, 1.0)
		if i > 0 {
			e.add(vec, words[i-1]+" "+w, 0.5)
		}
	}

	l2normalize(vec)
	return vec, nil
}

// add accumulates a signed feature; the sign bit reduces collision bias.
func (e *HashingEmbedder) add(vec []float32, feature string, weight float32) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	idx := int(sum % uint64(e.dim))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

// ModelInfo returns model information.
func (e *HashingEmbedder) ModelInfo() string {
	return "hashing-bow"
}
