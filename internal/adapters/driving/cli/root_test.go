package cli

import (
	"context"
	"errors"

	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
)

// mockChatService implements driving.ChatService for command tests.
type mockChatService struct {
	answer    *domain.Answer
	answerErr error
	report    *domain.IngestReport
	ingestErr error
	sites     []string
	sitesErr  error
	clearErr  error
	models    []string
	modelsErr error
	selected  string
	healthErr error

	lastAnswerReq driving.AnswerRequest
	lastIngestReq driving.IngestRequest
	cleared       bool
}

var _ driving.ChatService = (*mockChatService)(nil)

func (m *mockChatService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.IngestReport, error) {
	m.lastIngestReq = req
	if m.ingestErr != nil {
		return nil, m.ingestErr
	}
	if m.report == nil {
		return &domain.IngestReport{}, nil
	}
	return m.report, nil
}

func (m *mockChatService) Answer(_ context.Context, req driving.AnswerRequest) (*domain.Answer, error) {
	m.lastAnswerReq = req
	if m.answerErr != nil {
		return nil, m.answerErr
	}
	if m.answer == nil {
		return &domain.Answer{}, nil
	}
	return m.answer, nil
}

func (m *mockChatService) Sites(_ context.Context) ([]string, error) {
	if m.sitesErr != nil {
		return nil, m.sitesErr
	}
	return m.sites, nil
}

func (m *mockChatService) Clear() error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = true
	return nil
}

func (m *mockChatService) Models(_ context.Context) ([]string, error) {
	if m.modelsErr != nil {
		return nil, m.modelsErr
	}
	return m.models, nil
}

func (m *mockChatService) SelectedModel() string {
	return m.selected
}

func (m *mockChatService) Health(_ context.Context) error {
	return m.healthErr
}

// setupTestService swaps in a mock and returns it with a cleanup func.
func setupTestService(mock *mockChatService) func() {
	old := chatService
	chatService = mock
	return func() {
		chatService = old
	}
}

var errBoom = errors.New("boom")
