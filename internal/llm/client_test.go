package llm

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidateResponse(reason genai.FinishReason, parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: parts, Role: "model"},
			FinishReason: reason,
		}},
	}
}

func TestResponseText(t *testing.T) {
	resp := candidateResponse(genai.FinishReasonStop, genai.Text(`{"keywords": `), genai.Text(`["go"]}`))

	text, err := responseText(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"keywords": ["go"]}`, text)
}

func TestResponseText_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		wantErr error
	}{
		{name: "nil response", resp: nil, wantErr: ErrEmptyResponse},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: ErrEmptyResponse},
		{
			name: "blocked prompt",
			resp: &genai.GenerateContentResponse{
				PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety},
			},
			wantErr: ErrBlocked,
		},
		{name: "safety stop", resp: candidateResponse(genai.FinishReasonSafety, genai.Text("{")), wantErr: ErrBlocked},
		{name: "token limit", resp: candidateResponse(genai.FinishReasonMaxTokens, genai.Text(`{"keywords": [`)), wantErr: ErrTruncated},
		{name: "no content", resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}}, wantErr: ErrEmptyResponse},
		{name: "blank text", resp: candidateResponse(genai.FinishReasonStop, genai.Text("  ")), wantErr: ErrEmptyResponse},
		{name: "non-text parts", resp: candidateResponse(genai.FinishReasonStop, genai.Blob{MIMEType: "image/png"}), wantErr: ErrEmptyResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := responseText(tt.resp)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewClient(t *testing.T) {
	_, err := NewClient(context.Background(), &Config{Provider: "claude"}, "key")
	assert.ErrorContains(t, err, `unsupported LLM provider "claude"`)

	_, err = NewClient(context.Background(), nil, "")
	assert.ErrorContains(t, err, "API key is required")
}
