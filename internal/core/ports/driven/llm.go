package driven

import (
	"context"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

// LLMService provides chat completion operations for answer generation.
//
// Implementations may include:
//   - OpenAI (GPT-4o, GPT-4o-mini)
//   - OpenAI-compatible inference servers
type LLMService interface {
	// Chat conducts a multi-turn conversation and returns the
	// generated text with its reported token usage.
	// A rejected model identifier surfaces as domain.ErrInvalidModel.
	Chat(ctx context.Context, messages []domain.ChatMessage, opts ChatOptions) (*ChatResult, error)

	// ListModels returns the generation models the provider offers.
	ListModels(ctx context.Context) ([]string, error)

	// ModelName returns the name of the model this service targets.
	ModelName() string

	// WithModel derives a service targeting a different model.
	// The receiver is left unchanged; transport configuration is shared.
	WithModel(model string) LLMService
}

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}

// ChatResult is the outcome of one completion call.
type ChatResult struct {
	// Text is the generated message content, trimmed.
	Text string

	// TokensUsed is the total token usage the provider reported.
	TokensUsed int
}
