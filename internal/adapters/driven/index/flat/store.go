// Package flat provides an exact nearest-neighbour index over chunk
// embeddings. Vectors are held as a dense matrix and scanned with inner
// products; both query and stored vectors are unit length, so the score
// is cosine similarity.
//
// The persisted store is a coupled pair of artifacts under one data
// directory: index.gob (dimension + vectors) and docs.jsonl (one chunk
// per line, in row order). Writes go to temp files and are renamed into
// place under a file lock, so a loader never observes a half-written or
// mismatched pair.
package flat

import (
	"bufio"
	"context"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gofrs/flock"

	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
)

// Ensure the adapter implements its ports.
var (
	_ driven.IndexStore      = (*Store)(nil)
	_ driven.IndexRepository = (*Repository)(nil)
)

// Artifact names inside the data directory.
const (
	indexFileName = "index.gob"
	docsFileName  = "docs.jsonl"
	lockFileName  = ".sitechat.lock"
)

// docRecord is the docs.jsonl line format. Field order is fixed.
type docRecord struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Chunk string `json:"chunk"`
}

// indexFile is the index.gob payload.
type indexFile struct {
	Dim     int
	Vectors [][]float32
}

// Repository manages the persisted store under one data directory.
type Repository struct {
	dir      string
	embedder driven.EmbeddingService
}

// NewRepository creates a repository rooted at dir. The embedder is used
// for chunk embedding at build time and query embedding at search time;
// one repository therefore binds one index to one embedding model.
func NewRepository(dir string, embedder driven.EmbeddingService) *Repository {
	return &Repository{dir: dir, embedder: embedder}
}

// IndexPath returns the location of the serialized vector index.
func (r *Repository) IndexPath() string {
	return filepath.Join(r.dir, indexFileName)
}

// DocsPath returns the location of the chunk metadata file.
func (r *Repository) DocsPath() string {
	return filepath.Join(r.dir, docsFileName)
}

// Build embeds every chunk and constructs an in-memory store.
func (r *Repository) Build(ctx context.Context, chunks []domain.ChunkDoc) (driven.IndexStore, error) {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Chunk
	}

	res, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed chunks: %w", err)
	}
	if len(res.Vectors) != len(chunks) {
		return nil, fmt.Errorf("flat: got %d vectors for %d chunks", len(res.Vectors), len(chunks))
	}

	dim := 0
	if len(res.Vectors) > 0 {
		dim = len(res.Vectors[0])
	}
	for i, vector := range res.Vectors {
		if len(vector) != dim {
			return nil, fmt.Errorf("flat: vector %d has dimension %d, index has %d", i, len(vector), dim)
		}
	}

	return &Store{
		repo:    r,
		dim:     dim,
		vectors: res.Vectors,
		docs:    chunks,
	}, nil
}

// Load reconstructs the store from disk. Both artifacts must be present;
// otherwise domain.ErrNotFound is returned.
func (r *Repository) Load(_ context.Context) (driven.IndexStore, error) {
	lock := flock.New(filepath.Join(r.dir, lockFileName))
	if err := lock.RLock(); err == nil {
		defer lock.Unlock() //nolint:errcheck
	}

	idxPath, docsPath := r.IndexPath(), r.DocsPath()
	if !fileExists(idxPath) || !fileExists(docsPath) {
		return nil, fmt.Errorf("%w: index missing, run ingest first (%s, %s)",
			domain.ErrNotFound, idxPath, docsPath)
	}

	idxFile, err := os.Open(idxPath)
	if err != nil {
		return nil, fmt.Errorf("open index: %w", err)
	}
	defer idxFile.Close()

	var payload indexFile
	if err := gob.NewDecoder(idxFile).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}

	docs, err := readDocs(docsPath)
	if err != nil {
		return nil, err
	}

	if len(docs) != len(payload.Vectors) {
		return nil, fmt.Errorf("flat: %d docs but %d vectors, store is corrupt",
			len(docs), len(payload.Vectors))
	}

	return &Store{
		repo:    r,
		dim:     payload.Dim,
		vectors: payload.Vectors,
		docs:    docs,
	}, nil
}

// Clear removes the persisted artifacts.
func (r *Repository) Clear() error {
	lock := flock.New(filepath.Join(r.dir, lockFileName))
	if err := lock.Lock(); err == nil {
		defer lock.Unlock() //nolint:errcheck
	}

	for _, path := range []string{r.IndexPath(), r.DocsPath()} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}

// readDocs reads docs.jsonl in row order, skipping blank lines.
func readDocs(path string) ([]domain.ChunkDoc, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open docs: %w", err)
	}
	defer f.Close()

	var docs []domain.ChunkDoc
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec docRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("decode doc line %d: %w", len(docs)+1, err)
		}
		docs = append(docs, domain.ChunkDoc{
			ID:    rec.ID,
			URL:   rec.URL,
			Title: rec.Title,
			Chunk: rec.Chunk,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read docs: %w", err)
	}
	return docs, nil
}

// Store pairs the vector matrix with its ordered chunk list.
// vectors[i] corresponds to docs[i] for all i.
type Store struct {
	repo    *Repository
	dim     int
	vectors [][]float32
	docs    []domain.ChunkDoc
}

// Docs returns the chunks in row-id order.
func (s *Store) Docs() []domain.ChunkDoc {
	return s.docs
}

// Search embeds the query and returns up to topK chunks by descending
// similarity. Ties keep insertion order.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]domain.ScoredChunk, error) {
	if topK <= 0 || len(s.docs) == 0 {
		return nil, nil
	}

	res, err := s.repo.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(res.Vectors) != 1 {
		return nil, fmt.Errorf("flat: got %d query vectors", len(res.Vectors))
	}
	queryVec := res.Vectors[0]
	if len(queryVec) != s.dim {
		return nil, fmt.Errorf("flat: query dimension %d does not match index dimension %d",
			len(queryVec), s.dim)
	}

	scores := make([]float64, len(s.vectors))
	for i, row := range s.vectors {
		scores[i] = dot(row, queryVec)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	hits := make([]domain.ScoredChunk, 0, topK)
	for _, idx := range order[:topK] {
		if idx < 0 || idx >= len(s.docs) {
			continue
		}
		hits = append(hits, domain.ScoredChunk{
			Chunk: s.docs[idx],
			Score: scores[idx],
		})
	}
	return hits, nil
}

// Save persists the store: the vector index first, then the chunk list,
// each written to a temp file and renamed into place. The file lock
// keeps a concurrent Load from seeing a mismatched pair.
func (s *Store) Save(_ context.Context) (*domain.IndexInfo, error) {
	if err := os.MkdirAll(s.repo.dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	lock := flock.New(filepath.Join(s.repo.dir, lockFileName))
	if err := lock.Lock(); err != nil {
		return nil, fmt.Errorf("lock data dir: %w", err)
	}
	defer lock.Unlock() //nolint:errcheck

	idxPath, docsPath := s.repo.IndexPath(), s.repo.DocsPath()

	if err := writeIndexFile(idxPath, indexFile{Dim: s.dim, Vectors: s.vectors}); err != nil {
		return nil, err
	}
	if err := writeDocsFile(docsPath, s.docs); err != nil {
		return nil, err
	}

	return &domain.IndexInfo{
		ChunkCount: len(s.docs),
		IndexPath:  idxPath,
		DocsPath:   docsPath,
	}, nil
}

func writeIndexFile(path string, payload indexFile) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create index temp: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode index: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close index temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename index: %w", err)
	}
	return nil
}

func writeDocsFile(path string, docs []domain.ChunkDoc) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create docs temp: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, doc := range docs {
		line, err := json.Marshal(docRecord{
			ID:    doc.ID,
			URL:   doc.URL,
			Title: doc.Title,
			Chunk: doc.Chunk,
		})
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encode doc %s: %w", doc.ID, err)
		}
		w.Write(line)       //nolint:errcheck
		w.WriteByte('\n')   //nolint:errcheck
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write docs: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close docs temp: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename docs: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dot(a []float32, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
