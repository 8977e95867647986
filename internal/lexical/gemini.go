package lexical

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ats-scorer/internal/llm"
	"github.com/jonathan/ats-scorer/internal/schemas"
)

// ModelExtractor asks an LLM for keywords and entities. Output is checked
// against the lexical_keywords schema and normalized the same way the
// LocalExtractor normalizes its tokens.
type ModelExtractor struct {
	client llm.Client
	tier   llm.ModelTier
	kind   string
}

// NewModelExtractor creates an extractor backed by client.
func NewModelExtractor(client llm.Client) *ModelExtractor {
	return &ModelExtractor{client: client, tier: llm.TierLite, kind: "document"}
}

type modelKeywords struct {
	Keywords []string `json:"keywords"`
	Entities []string `json:"entities"`
}

// Extract implements Extractor.
func (e *ModelExtractor) Extract(ctx context.Context, text string) (KeywordSet, error) {
	if strings.TrimSpace(text) == "" {
		return NewKeywordSet(), nil
	}

	schema, err := llm.LexicalKeywordsSchema(e.kind)
	if err != nil {
		return nil, err
	}
	raw, err := e.client.GenerateJSON(ctx, llm.BuildExtractionPrompt(schema, text), e.tier)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction: %w", err)
	}
	raw = llm.CleanJSONBlock(raw)
	if err := schemas.Validate(schemas.LexicalKeywords, []byte(raw)); err != nil {
		return nil, fmt.Errorf("keyword extraction: %w", err)
	}

	var out modelKeywords
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("keyword extraction: decode: %w", err)
	}

	set := make(KeywordSet, len(out.Keywords)+len(out.Entities))
	for _, k := range out.Keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if utf8.RuneCountInString(k) >= minKeywordRunes && !IsStopWord(k) {
			set.Add(k)
		}
	}
	for _, ent := range out.Entities {
		set.Add(strings.ToLower(strings.Join(strings.Fields(ent), " ")))
	}
	return set, nil
}

// Close releases the underlying client.
func (e *ModelExtractor) Close() error {
	return e.client.Close()
}
