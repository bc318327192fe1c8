// Package batched decorates an embedding service with request splitting
// and L2 normalisation. Oversized batches are divided to respect the
// provider's per-request token budget, and every returned vector is
// normalised so that inner product equals cosine similarity.
package batched

import (
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// CharsPerToken is the coarse character-to-token ratio used to estimate
// request sizes. It is intentionally not a real tokenizer.
const CharsPerToken = 5

// DefaultMaxTokens is the default per-request token budget.
const DefaultMaxTokens = 300_000

// Service splits embedding requests to fit a token budget and
// L2-normalises the results.
type Service struct {
	inner     driven.EmbeddingService
	maxTokens int
}

// New wraps inner with batching. A non-positive maxTokens selects
// DefaultMaxTokens.
func New(inner driven.EmbeddingService, maxTokens int) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{inner: inner, maxTokens: maxTokens}
}

// EmbedBatch embeds the texts, issuing as many provider calls as the
// token budget requires and concatenating the results in input order.
// An empty input returns an empty result without calling the provider.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) (*driven.EmbedResult, error) {
	if len(texts) == 0 {
		return &driven.EmbedResult{}, nil
	}

	// The first text stands in for the per-text cost of the whole batch.
	perText := EstimateTokens(texts[0])
	total := perText * len(texts)
	batches := (total + s.maxTokens - 1) / s.maxTokens
	if batches < 1 {
		batches = 1
	}
	size := len(texts) / batches
	if size < 1 {
		size = 1
	}

	result := &driven.EmbedResult{
		Vectors: make([][]float32, 0, len(texts)),
	}
	for b := 0; b < batches; b++ {
		start := b * size
		end := start + size
		if b == batches-1 || end > len(texts) {
			// Remainder folds into the last batch.
			end = len(texts)
		}
		if start >= end {
			break
		}

		res, err := s.inner.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d/%d: %w", b+1, batches, err)
		}
		if len(res.Vectors) != end-start {
			return nil, fmt.Errorf("embed batch %d/%d: got %d vectors for %d texts",
				b+1, batches, len(res.Vectors), end-start)
		}
		result.Vectors = append(result.Vectors, res.Vectors...)
		result.TokensUsed += res.TokensUsed
	}

	for _, vector := range result.Vectors {
		Normalize(vector)
	}

	return result, nil
}

// ModelName returns the wrapped service's model name.
func (s *Service) ModelName() string {
	return s.inner.ModelName()
}

// EstimateTokens approximates the token count of a text.
func EstimateTokens(text string) int {
	return len(text) / CharsPerToken
}

// Normalize scales the vector to unit L2 norm in place.
// Zero vectors are left unchanged.
func Normalize(vector []float32) {
	var sum float64
	for _, v := range vector {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vector {
		vector[i] = float32(float64(vector[i]) / norm)
	}
}
