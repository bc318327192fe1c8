package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitechat/internal/chunker"
	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
	"github.com/custodia-labs/sitechat/internal/logger"
)

// Ensure RagService implements the interface.
var _ driving.ChatService = (*RagService)(nil)

const (
	// MaxHistoryMessages bounds how much session history is replayed
	// into the completion request.
	MaxHistoryMessages = 20

	// maxHistoryQuestions bounds how many prior user questions are
	// folded into the retrieval query.
	maxHistoryQuestions = 6

	// answerTemperature keeps generation close to the retrieved context.
	answerTemperature = 0.2
)

const systemPrompt = "You are a RAG assistant. You MUST answer using ONLY the provided context extracted " +
	"from the user-supplied websites. Do not use outside knowledge. If the context does " +
	"not contain the answer, say you don't know based on the provided sites. " +
	"When you make a factual claim, cite the supporting source."

// Settings carries the tunables the orchestrator needs per call.
type Settings struct {
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	MaxPages     int
	MaxDepth     int
}

// DefaultSettings returns the built-in tuning values.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize:    1200,
		ChunkOverlap: 200,
		TopK:         6,
		MaxPages:     50,
		MaxDepth:     2,
	}
}

// RagService answers questions about previously ingested websites by
// retrieving the most similar chunks and grounding a completion on them.
type RagService struct {
	crawler  driven.Crawler
	index    driven.IndexRepository
	sessions *SessionStore
	settings Settings

	mu  sync.Mutex
	llm driven.LLMService
}

// NewRagService creates the orchestrator behind every driving adapter.
func NewRagService(
	crawler driven.Crawler,
	index driven.IndexRepository,
	llm driven.LLMService,
	sessions *SessionStore,
	settings Settings,
) *RagService {
	return &RagService{
		crawler:  crawler,
		index:    index,
		llm:      llm,
		sessions: sessions,
		settings: settings,
	}
}

// Ingest crawls the seed URLs, chunks the extracted text and replaces
// the persisted index. Nothing is persisted when any stage fails.
func (s *RagService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestReport, error) {
	logger.Section("Ingest")

	seeds := normalizeSeeds(req.URLs)
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: no valid URLs", domain.ErrInvalidInput)
	}
	logger.Debug("Seeds: %v", seeds)

	maxPages := req.MaxPages
	if maxPages <= 0 {
		maxPages = s.settings.MaxPages
	}
	maxDepth := req.MaxDepth
	if maxDepth <= 0 {
		maxDepth = s.settings.MaxDepth
	}

	pages, err := s.crawler.Crawl(ctx, seeds, maxPages, maxDepth)
	if err != nil {
		return nil, fmt.Errorf("crawl: %w", err)
	}
	logger.Info("Crawled %d pages", len(pages))

	chunks := chunker.ChunkPages(pages, s.settings.ChunkSize, s.settings.ChunkOverlap)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: no text extracted from provided sites", domain.ErrInvalidInput)
	}
	logger.Info("Chunked into %d pieces", len(chunks))

	store, err := s.index.Build(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	if _, err := store.Save(ctx); err != nil {
		return nil, fmt.Errorf("save index: %w", err)
	}

	sort.Strings(seeds)
	return &domain.IngestReport{
		Pages:   len(pages),
		Chunks:  len(chunks),
		Domains: seeds,
	}, nil
}

// Answer retrieves grounding context for the question, generates an
// answer and records the turn in the session history.
func (s *RagService) Answer(ctx context.Context, req driving.AnswerRequest) (*domain.Answer, error) {
	logger.Section("Answer")

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	store, err := s.index.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: no index found, run ingest first", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load index: %w", err)
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	history := s.sessions.Snapshot(sessionID)
	logger.Debug("Session %s: %d prior messages", sessionID, len(history))

	topK := req.TopK
	if topK <= 0 {
		topK = s.settings.TopK
	}

	hits, err := store.Search(ctx, retrievalQuery(question, history), topK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(hits))

	contextBlock, urls := formatContext(hits)

	messages := make([]domain.ChatMessage, 0, len(history)+2)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: systemPrompt})
	messages = append(messages, trimHistory(history, MaxHistoryMessages)...)
	messages = append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: "CONTEXT\n" + contextBlock + "\n\nQUESTION\n" + question,
	})

	client, override := s.clientFor(req.Model)
	result, err := client.Chat(ctx, messages, driven.ChatOptions{Temperature: answerTemperature})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}
	if override {
		// The override becomes the selected model only once it has
		// served a successful completion.
		s.setLLM(client)
	}

	total := s.sessions.AppendAndTrim(sessionID, []domain.ChatMessage{
		{Role: domain.RoleUser, Content: question},
		{Role: domain.RoleAssistant, Content: result.Text},
	}, result.TokensUsed)

	return &domain.Answer{
		Answer:          result.Text,
		Sources:         dedupeURLs(urls),
		SessionID:       sessionID,
		TokensUsed:      result.TokensUsed,
		TokensUsedTotal: total,
	}, nil
}

// Sites returns the distinct URLs currently indexed, in first-seen order.
func (s *RagService) Sites(ctx context.Context) ([]string, error) {
	store, err := s.index.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("load index: %w", err)
	}

	urls := make([]string, 0, len(store.Docs()))
	for _, doc := range store.Docs() {
		urls = append(urls, doc.URL)
	}
	return dedupeURLs(urls), nil
}

// Clear discards the persisted index. Clearing an absent index is a no-op.
func (s *RagService) Clear() error {
	if err := s.index.Clear(); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	return nil
}

// Models lists the generation models the provider offers.
func (s *RagService) Models(ctx context.Context) ([]string, error) {
	models, err := s.currentLLM().ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	return models, nil
}

// SelectedModel returns the currently selected generation model.
func (s *RagService) SelectedModel() string {
	return s.currentLLM().ModelName()
}

// Health reports liveness. It has no side effects.
func (s *RagService) Health(_ context.Context) error {
	return nil
}

// clientFor resolves the LLM client for one answer. A non-empty model
// that differs from the current selection derives a scoped client;
// override reports whether a successful call should commit it.
func (s *RagService) clientFor(model string) (client driven.LLMService, override bool) {
	current := s.currentLLM()
	model = strings.TrimSpace(model)
	if model == "" || model == current.ModelName() {
		return current, false
	}
	logger.Debug("Model override: %s", model)
	return current.WithModel(model), true
}

func (s *RagService) currentLLM() driven.LLMService {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.llm
}

func (s *RagService) setLLM(llm driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.llm = llm
}

// normalizeSeeds reduces each URL to scheme, lowercased host and path,
// dropping query and fragment. Unparseable entries are skipped and
// duplicates collapse.
func normalizeSeeds(urls []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(urls))
	for _, raw := range urls {
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil || u.Scheme == "" || u.Hostname() == "" {
			continue
		}
		norm := u.Scheme + "://" + strings.ToLower(u.Hostname()) + u.EscapedPath()
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out
}

// retrievalQuery augments the question with up to the last
// maxHistoryQuestions prior user questions, oldest first, so that
// follow-ups retrieve against the conversation topic.
func retrievalQuery(question string, history []domain.ChatMessage) string {
	var qs []string
	for i := len(history) - 1; i >= 0 && len(qs) < maxHistoryQuestions; i-- {
		if history[i].Role != domain.RoleUser {
			continue
		}
		if c := strings.TrimSpace(history[i].Content); c != "" {
			qs = append(qs, c)
		}
	}
	if len(qs) == 0 {
		return question
	}

	var b strings.Builder
	b.WriteString(question)
	b.WriteString("\n\nPrevious questions:\n")
	for i := len(qs) - 1; i >= 0; i-- {
		b.WriteString("- ")
		b.WriteString(qs[i])
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatContext renders the hits as a numbered context block and
// returns the source URL of each hit in rank order.
func formatContext(hits []domain.ScoredChunk) (string, []string) {
	urls := make([]string, 0, len(hits))
	blocks := make([]string, 0, len(hits))
	for i, hit := range hits {
		urls = append(urls, hit.Chunk.URL)
		title := strings.TrimSpace(hit.Chunk.Title)
		if title == "" {
			title = hit.Chunk.URL
		}
		blocks = append(blocks, fmt.Sprintf("[%d] %s\nURL: %s\nCONTENT: %s", i+1, title, hit.Chunk.URL, hit.Chunk.Chunk))
	}
	return strings.Join(blocks, "\n\n"), urls
}

func trimHistory(history []domain.ChatMessage, maxMessages int) []domain.ChatMessage {
	if maxMessages <= 0 {
		return nil
	}
	if len(history) <= maxMessages {
		return history
	}
	return history[len(history)-maxMessages:]
}

func dedupeURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		unique = append(unique, u)
	}
	return unique
}
