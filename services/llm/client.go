package llm

import (
	"context"
	"fmt"
	"strings"
)

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopK        *int     `json:"top_k"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
}

// Message is a single chat turn sent to a backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the standard interface for any LLM backend.
type Client interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
}

// NewClient constructs a backend by name. Recognized backends are
// "anthropic", "openai", and "ollama". Credentials and model names are
// read from the environment by each constructor.
func NewClient(backend string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "anthropic", "claude":
		return NewAnthropicClient()
	case "openai":
		return NewOpenAIClient()
	case "ollama":
		return NewOllamaClient()
	default:
		return nil, fmt.Errorf("unknown LLM backend %q", backend)
	}
}
