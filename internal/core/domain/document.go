package domain

// Page represents a single crawled web page before chunking.
// Pages are produced by the crawler and consumed by the chunker;
// they are never stored.
type Page struct {
	// URL is the page location after normalisation.
	URL string

	// Title is the page title, may be empty.
	Title string

	// Text is the extracted plain text content.
	Text string
}

// ChunkDoc is the unit of retrieval: a bounded substring of a page's
// text together with its provenance. The index owns the authoritative
// ordered list of ChunkDocs; a chunk's position in that list is its
// row id in the vector index.
type ChunkDoc struct {
	// ID identifies the chunk within one ingest, formatted "p{page}-c{chunk}".
	ID string

	// URL is the source page URL.
	URL string

	// Title is the source page title.
	Title string

	// Chunk is the text content.
	Chunk string
}

// ScoredChunk is a retrieval hit: a chunk and its cosine similarity
// to the query. Scores are in [-1, 1] because both sides are
// L2-normalised.
type ScoredChunk struct {
	Chunk ChunkDoc
	Score float64
}

// IndexInfo describes the persisted index artifacts after a save.
type IndexInfo struct {
	// ChunkCount is the number of indexed chunks.
	ChunkCount int

	// IndexPath is the location of the serialized vector index.
	IndexPath string

	// DocsPath is the location of the chunk metadata file.
	DocsPath string
}

// IngestReport summarises a completed ingest.
type IngestReport struct {
	// Pages is the number of pages crawled.
	Pages int

	// Chunks is the number of chunks indexed.
	Chunks int

	// Domains are the normalised seed URLs, sorted.
	Domains []string
}
