package driven

import (
	"context"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

// IndexStore is a built vector index paired with its ordered chunk list.
// Invariant: row i of the vector index corresponds to Docs()[i].
// A store is read-only after construction; concurrent searches need
// no locking.
type IndexStore interface {
	// Search embeds the query and returns up to topK chunks by
	// descending cosine similarity. Fewer hits are returned when the
	// corpus is smaller than topK.
	Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error)

	// Docs returns the chunks in row-id order.
	Docs() []domain.ChunkDoc

	// Save persists the index and its chunk list as a coupled pair of
	// artifacts. A partially written pair is never visible to Load.
	Save(ctx context.Context) (*domain.IndexInfo, error)
}

// IndexRepository builds, loads and discards the persisted index.
// One repository manages one logical store under one data directory.
type IndexRepository interface {
	// Build embeds the chunks and constructs a fresh in-memory store.
	// Nothing is persisted until Save is called on the result.
	Build(ctx context.Context, chunks []domain.ChunkDoc) (IndexStore, error)

	// Load reconstructs the store from disk. Returns domain.ErrNotFound
	// when either artifact is missing.
	Load(ctx context.Context) (IndexStore, error)

	// Clear removes the persisted artifacts. Missing artifacts are not
	// an error.
	Clear() error
}
