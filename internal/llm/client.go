package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	// ErrBlocked is returned when the prompt or the response was blocked by safety filters
	ErrBlocked = errors.New("response blocked")
	// ErrTruncated is returned when generation stopped at the token limit
	ErrTruncated = errors.New("response truncated")
	// ErrEmptyResponse is returned when the model produced no text
	ErrEmptyResponse = errors.New("empty response")
)

// Client generates JSON documents from extraction prompts.
// Implementations must be safe for concurrent use.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	Close() error
}

// NewClient creates the client for config.Provider. A nil config uses DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// GeminiClient generates JSON with Gemini models. One model handle is built
// per tier and reused across requests.
type GeminiClient struct {
	client *genai.Client
	config *Config

	mu     sync.Mutex
	models map[ModelTier]*genai.GenerativeModel
}

// NewGeminiClient creates a Gemini client.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
		models: make(map[ModelTier]*genai.GenerativeModel),
	}, nil
}

// GenerateJSON runs prompt on the tier's model in JSON mode and returns the
// response with any code fence removed.
func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	model, err := c.model(tier)
	if err != nil {
		return "", err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return "", fmt.Errorf("%w: %v", ErrBlocked, blocked)
		}
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// model returns the cached handle for tier. Extraction runs at temperature 0
// with a single candidate so the same text yields the same keywords.
func (c *GeminiClient) model(tier ModelTier) (*genai.GenerativeModel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.models[tier]; ok {
		return m, nil
	}

	name := c.config.GetModel(tier)
	if name == "" {
		return nil, fmt.Errorf("no model configured for tier %s", tier)
	}

	m := c.client.GenerativeModel(name)
	m.SetTemperature(0)
	m.SetCandidateCount(1)
	m.ResponseMIMEType = "application/json"
	c.models[tier] = m
	return m, nil
}

// Close releases the underlying client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate. Blocked prompts,
// safety stops and token-limit stops are errors since their JSON is unusable.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("%w: prompt %v", ErrBlocked, fb.BlockReason)
		}
		return "", fmt.Errorf("%w: no candidates", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return "", fmt.Errorf("%w: %v", ErrBlocked, candidate.FinishReason)
	case genai.FinishReasonMaxTokens:
		return "", ErrTruncated
	}

	if candidate.Content == nil {
		return "", fmt.Errorf("%w: no content", ErrEmptyResponse)
	}
	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: no text parts", ErrEmptyResponse)
	}
	return sb.String(), nil
}
