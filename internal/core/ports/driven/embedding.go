package driven

import "context"

// EmbedResult carries the vectors for one embedding request together
// with the token usage the provider reported, when it reports any.
type EmbedResult struct {
	// Vectors holds one embedding per input text, in input order.
	// All vectors share the same dimension.
	Vectors [][]float32

	// TokensUsed is the total token usage across provider calls.
	TokensUsed int
}

// EmbeddingService generates vector embeddings from text.
//
// Note: This is separate from IndexStore which stores and searches vectors.
// EmbeddingService generates vectors; IndexStore stores them.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - OpenAI-compatible inference servers
//   - The batched decorator, which splits oversized requests and
//     L2-normalises the results
type EmbeddingService interface {
	// EmbedBatch generates embeddings for multiple texts.
	// An empty input returns an empty result without a provider call.
	EmbedBatch(ctx context.Context, texts []string) (*EmbedResult, error)

	// ModelName returns the name of the embedding model being used.
	ModelName() string
}
