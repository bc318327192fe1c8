package mcp

import (
	"context"

	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	answer *domain.Answer
	report *domain.IngestReport
	sites  []string
	models []string
	err    error

	lastAnswerReq driving.AnswerRequest
	lastIngestReq driving.IngestRequest
}

func (m *mockChatService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.IngestReport, error) {
	m.lastIngestReq = req
	return m.report, m.err
}

func (m *mockChatService) Answer(_ context.Context, req driving.AnswerRequest) (*domain.Answer, error) {
	m.lastAnswerReq = req
	return m.answer, m.err
}

func (m *mockChatService) Sites(_ context.Context) ([]string, error) {
	return m.sites, m.err
}

func (m *mockChatService) Clear() error {
	return m.err
}

func (m *mockChatService) Models(_ context.Context) ([]string, error) {
	return m.models, m.err
}

func (m *mockChatService) SelectedModel() string {
	return "gpt-4o-mini"
}

func (m *mockChatService) Health(_ context.Context) error {
	return m.err
}
