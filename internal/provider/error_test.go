package provider

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := &Error{Provider: "serpapi", Op: "search", Err: fmt.Errorf("connection refused")}
	require.Equal(t, "serpapi: search failed: connection refused", err.Error())

	err = &Error{Provider: "gemini", Op: "generate", StatusCode: 429, Err: fmt.Errorf("quota exceeded")}
	require.Equal(t, "gemini: generate returned status 429: quota exceeded", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := fmt.Errorf("turn failed: %w", &Error{Provider: "gemini", Op: "generate", Err: inner})

	require.True(t, IsProviderError(err))
	require.ErrorIs(t, err, inner)
	require.False(t, IsProviderError(errors.New("plain")))
}
