package driving

import (
	"context"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

// AnswerRequest is one question against the indexed corpus.
type AnswerRequest struct {
	// Question is the user's question. Required.
	Question string

	// TopK overrides the configured number of retrieved chunks when > 0.
	TopK int

	// SessionID continues an existing conversation. A blank id starts
	// a fresh session.
	SessionID string

	// Model overrides the generation model for this call only.
	// The override becomes the selected model when the call succeeds.
	Model string
}

// IngestRequest asks for a set of sites to be crawled and indexed.
type IngestRequest struct {
	// URLs are the seed URLs. Required.
	URLs []string

	// MaxPages caps the number of crawled pages when > 0.
	MaxPages int

	// MaxDepth caps the link depth when > 0.
	MaxDepth int
}

// ChatService provides retrieval-augmented question answering over
// previously ingested websites.
type ChatService interface {
	// Ingest crawls the seed URLs, chunks the extracted text and
	// rebuilds the persisted index. The previous index is replaced
	// wholesale; nothing is persisted on failure.
	Ingest(ctx context.Context, req IngestRequest) (*domain.IngestReport, error)

	// Answer retrieves grounding context for the question and generates
	// an answer, recording the turn in the session history.
	Answer(ctx context.Context, req AnswerRequest) (*domain.Answer, error)

	// Sites returns the distinct URLs currently indexed, in first-seen
	// order. An absent index yields an empty list.
	Sites(ctx context.Context) ([]string, error)

	// Clear discards the current index.
	Clear() error

	// Models lists the generation models the provider offers.
	Models(ctx context.Context) ([]string, error)

	// SelectedModel returns the currently selected generation model.
	SelectedModel() string

	// Health reports liveness. It has no side effects.
	Health(ctx context.Context) error
}
