package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/ats-scorer/internal/scoring"
	"github.com/jonathan/ats-scorer/internal/types"
)

// ErrInvalidBody indicates the request body could not be decoded
type ErrInvalidBody struct {
	Cause error
}

func (e *ErrInvalidBody) Error() string {
	return fmt.Sprintf("Invalid request body: %v", e.Cause)
}

func (e *ErrInvalidBody) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *types.ValidationError
		bodyErr       *ErrInvalidBody
		providerErr   *scoring.ProviderError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &bodyErr):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &providerErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ErrorMessage returns the client-facing message for err. Validation errors
// carry their own message; unclassified errors are not exposed.
func ErrorMessage(err error) string {
	var validationErr *types.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}
