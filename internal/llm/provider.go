// Package llm drives content generation and refinement through pluggable
// chat-completion providers.
package llm

import (
	"context"

	"github.com/inkwell-ai/inkwell/internal/model"
)

// Provider is a chat-completion backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Complete generates a completion for the request.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is one generation call.
type CompletionRequest struct {
	// System primes the model's role; optional.
	System string

	// Prompt is the user message.
	Prompt string

	// Model overrides the configured model when set.
	Model string

	// Temperature controls sampling; 0 falls back to the configured value.
	Temperature float64

	// MaxTokens limits the response length; 0 falls back to the configured value.
	MaxTokens int
}

// CompletionResponse is the provider's answer.
type CompletionResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey for hosted providers.
	APIKey string

	// BaseURL for custom endpoints (OpenRouter, local Ollama).
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// Temperature for generation.
	Temperature float64

	// MaxTokens for response generation.
	MaxTokens int

	// RequestsPerSecond throttles calls per provider/model.
	RequestsPerSecond float64
}

// DefaultConfig returns sensible defaults with the provider disabled.
func DefaultConfig() Config {
	return Config{
		Provider:          "",
		Model:             "",
		Timeout:           60,
		Temperature:       0.7,
		MaxTokens:         2000,
		RequestsPerSecond: 1,
	}
}

// ConfigFromModel converts the app-level LLM configuration.
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:          mc.Provider,
		Model:             mc.Model,
		APIKey:            mc.APIKey,
		BaseURL:           mc.BaseURL,
		Timeout:           mc.Timeout,
		Temperature:       mc.Temperature,
		MaxTokens:         mc.MaxTokens,
		RequestsPerSecond: mc.RequestsPerSecond,
	}
}
