package llm

import (
	"context"
)

// Chat roles in the provider-agnostic message format. RoleModel is
// Gemini's name for the assistant role; providers map between the two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleModel     = "model"
)

// Message is a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // RoleUser, RoleAssistant, or RoleSystem
	Content string `json:"content"`
}

// Option sets optional generation parameters
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // override the provider default
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// LLMProvider is the contract for any text-generation backend. The dialogue
// steps treat responses as untyped text and do their own parsing; malformed
// output is the caller's problem, not the provider's.
type LLMProvider interface {
	// Chat sends a conversation history and returns the model reply
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt (convenience wrapper over Chat)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)
}
