package llm

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Provider generates free-form text for a prompt against one external model
// API. The engine depends only on this interface; concrete adapters carry the
// provider-specific request and response shapes.
type Provider interface {
	Generate(ctx context.Context, req Request) (string, error)
	Name() string
}

// Request is a single prompt round trip. No retries, no streaming.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int64
}

// ErrNotConfigured signals a missing credential. Callers treat it exactly
// like any other provider failure and degrade to the deterministic path.
var ErrNotConfigured = errors.New("llm: provider not configured")

// DefaultTimeout bounds a provider round trip when the config does not set one.
const DefaultTimeout = 30 * time.Second

// ForConfig selects a provider adapter by name. Unknown or empty names yield
// nil, which the engine treats the same as a missing credential.
func ForConfig(name, apiKey, model string, timeout time.Duration) Provider {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "openai":
		return NewOpenAI(apiKey, model, timeout)
	case "anthropic":
		return NewAnthropic(apiKey, model, timeout)
	default:
		return nil
	}
}
