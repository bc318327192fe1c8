// Package chunker splits page text into bounded, overlapping chunks.
// It is pure: no I/O, no dependencies beyond the domain types.
package chunker

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1200

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// ChunkText splits text into chunks of at most chunkSize characters with
// the given overlap between consecutive chunks.
//
// The input is trimmed first; empty or whitespace-only input yields nil.
// A non-positive chunkSize returns the whole trimmed text as a single
// chunk. The overlap is clamped into [0, chunkSize-1] so the cursor
// always makes progress. Windows that trim to nothing are dropped, but
// the cursor still advances past them.
func ChunkText(text string, chunkSize, overlap int) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if chunkSize <= 0 {
		return []string{trimmed}
	}

	if overlap < 0 {
		overlap = 0
	}
	if overlap > chunkSize-1 {
		overlap = chunkSize - 1
	}

	runes := []rune(trimmed)
	var chunks []string

	i := 0
	for i < len(runes) {
		j := i + chunkSize
		if j > len(runes) {
			j = len(runes)
		}
		if chunk := strings.TrimSpace(string(runes[i:j])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if j >= len(runes) {
			break
		}
		i = j - overlap
	}

	return chunks
}

// ChunkPages applies ChunkText to every page and assigns chunk ids of
// the form "p{page}-c{chunk}", preserving page order then chunk order.
func ChunkPages(pages []domain.Page, chunkSize, overlap int) []domain.ChunkDoc {
	var docs []domain.ChunkDoc
	for pi, page := range pages {
		for ci, chunk := range ChunkText(page.Text, chunkSize, overlap) {
			docs = append(docs, domain.ChunkDoc{
				ID:    fmt.Sprintf("p%d-c%d", pi, ci),
				URL:   page.URL,
				Title: page.Title,
				Chunk: chunk,
			})
		}
	}
	return docs
}
