package model

import (
	"context"
	"fmt"
)

// ErrNotConfigured is returned by the Placeholder model. It signals that no
// real provider has been wired up yet.
var ErrNotConfigured = fmt.Errorf("no model provider configured")

// Request is a single completion request.
type Request struct {
	// Instructions is the system-level framing for the completion.
	Instructions string `json:"instructions,omitempty"`

	// Prompt is the user-level input text.
	Prompt string `json:"prompt"`
}

// TokenUsage captures token accounting for a completion.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the text produced for a Request.
type Response struct {
	// Content is the completion text.
	Content string `json:"content"`

	// Model names the concrete model that produced the content.
	Model string `json:"model,omitempty"`

	// Usage is provider-reported token accounting, when available.
	Usage *TokenUsage `json:"usage,omitempty"`
}

// Model is the narrow completion capability. Implementations must be safe
// for concurrent use; debate rounds call Complete once per Bee in parallel.
type Model interface {
	// Name identifies the provider for logging and reporting.
	Name() string

	// Complete produces a text completion for the request.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Placeholder is a stub model used when no real provider is configured.
// Every completion fails with ErrNotConfigured; the surrounding system can
// still start and serve protocol traffic.
type Placeholder struct{}

// Name implements Model.
func (Placeholder) Name() string { return "none" }

// Complete implements Model. It always fails.
func (Placeholder) Complete(context.Context, Request) (*Response, error) {
	return nil, fmt.Errorf("%w: complete onboarding to set up a provider", ErrNotConfigured)
}
