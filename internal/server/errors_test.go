package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "ValidationError",
			err:      &types.ValidationError{Field: "jd", Message: "Job description (jd) is required"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "ErrInvalidBody",
			err:      &ErrInvalidBody{Cause: errors.New("unexpected EOF")},
			expected: http.StatusBadRequest,
		},
		{
			name:     "wrapped ProviderError",
			err:      fmt.Errorf("similarity stage: %w", &scoring.ProviderError{Provider: "gemini", Op: "embed", Cause: errors.New("quota")}),
			expected: http.StatusBadGateway,
		},
		{
			name:     "provider timeout",
			err:      &scoring.ProviderError{Provider: "gemini", Op: "embed", Cause: context.DeadlineExceeded},
			expected: http.StatusGatewayTimeout,
		},
		{
			name:     "unknown error",
			err:      errors.New("boom"),
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "Resume text (resume) is required",
		ErrorMessage(&types.ValidationError{Field: "resume", Message: "Resume text (resume) is required"}))
	assert.Equal(t, "internal server error", ErrorMessage(errors.New("secret detail")))
	assert.Equal(t, "gemini embed failed: quota",
		ErrorMessage(&scoring.ProviderError{Provider: "gemini", Op: "embed", Cause: errors.New("quota")}))
}

func TestErrInvalidBody(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := &ErrInvalidBody{Cause: cause}
	assert.Equal(t, "Invalid request body: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, cause)
}
