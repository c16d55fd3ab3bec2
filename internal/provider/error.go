// Package provider defines the error type shared by the search and
// generation API clients.
package provider

import (
	"errors"
	"fmt"
)

// Error describes a failed call to an external provider: network failure,
// bad credentials, quota exhaustion, or a malformed response.
type Error struct {
	Provider   string // "serpapi" or "gemini"
	Op         string // "search", "generate", ...
	StatusCode int    // HTTP status if the provider responded, 0 otherwise
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned status %d: %v", e.Provider, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err is (or wraps) a provider Error.
func IsProviderError(err error) bool {
	var pe *Error
	return errors.As(err, &pe)
}
