package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitechat/internal/core/domain"
	"github.com/custodia-labs/sitechat/internal/core/ports/driven"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *LLMService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc, err := NewLLMService(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
	})
	require.NoError(t, err)
	return svc
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.Error(t, err)
}

func TestChat_ReturnsTextAndUsage(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{
			"choices": [{"message": {"content": "  an answer  "}}],
			"usage": {"total_tokens": 42}
		}`))
	})

	result, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
	}, driven.ChatOptions{Temperature: 0.2})

	require.NoError(t, err)
	assert.Equal(t, "an answer", result.Text)
	assert.Equal(t, 42, result.TokensUsed)
}

func TestChat_UnknownModelIsErrInvalidModel(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": {"message": "The model does not exist", "type": "invalid_request_error", "code": "model_not_found"}}`))
	})

	_, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
	}, driven.ChatOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidModel)
}

func TestChat_OtherAPIErrorIsNotInvalidModel(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited", "type": "rate_limit_error"}}`))
	})

	_, err := svc.Chat(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
	}, driven.ChatOptions{})

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidModel)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestListModels(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		w.Write([]byte(`{"data": [{"id": "gpt-4o"}, {"id": "gpt-4o-mini"}]}`))
	})

	models, err := svc.ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"gpt-4o", "gpt-4o-mini"}, models)
}

func TestWithModel_DerivesWithoutMutatingReceiver(t *testing.T) {
	svc, err := NewLLMService(Config{APIKey: "k", Model: "gpt-4o-mini"})
	require.NoError(t, err)

	derived := svc.WithModel("gpt-4o")

	assert.Equal(t, "gpt-4o", derived.ModelName())
	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}
