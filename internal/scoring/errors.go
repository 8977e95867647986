package scoring

import "fmt"

// ProviderError wraps a failure of an external collaborator (embedding
// provider or keyword extractor), including malformed output.
type ProviderError struct {
	Provider string
	Op       string
	Cause    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Provider, e.Op, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
