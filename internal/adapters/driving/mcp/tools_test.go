package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

func TestServer_handleAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with sources", func(t *testing.T) {
		mock := &mockChatService{
			answer: &domain.Answer{
				Answer:    "Grounded answer.",
				Sources:   []string{"https://docs.example.com/a"},
				SessionID: "sess-1",
			},
		}
		server, err := NewServer(&Ports{Chat: mock})
		require.NoError(t, err)

		input := AnswerInput{Question: "what?", TopK: 4, SessionID: "sess-1"}
		_, output, err := server.handleAnswer(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Grounded answer.", output.Answer)
		assert.Equal(t, []string{"https://docs.example.com/a"}, output.Sources)
		assert.Equal(t, "sess-1", output.SessionID)
		assert.Equal(t, "what?", mock.lastAnswerReq.Question)
		assert.Equal(t, 4, mock.lastAnswerReq.TopK)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockChatService{err: errors.New("no index")}
		server, err := NewServer(&Ports{Chat: mock})
		require.NoError(t, err)

		_, _, err = server.handleAnswer(ctx, nil, AnswerInput{Question: "what?"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no index")
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns report", func(t *testing.T) {
		mock := &mockChatService{
			report: &domain.IngestReport{
				Pages:   3,
				Chunks:  11,
				Domains: []string{"https://docs.example.com/"},
			},
		}
		server, err := NewServer(&Ports{Chat: mock})
		require.NoError(t, err)

		input := IngestInput{URLs: []string{"https://docs.example.com/"}, MaxPages: 10}
		_, output, err := server.handleIngest(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, 3, output.Pages)
		assert.Equal(t, 11, output.Chunks)
		assert.Equal(t, []string{"https://docs.example.com/"}, output.Sites)
		assert.Equal(t, 10, mock.lastIngestReq.MaxPages)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockChatService{err: errors.New("crawl failed")}
		server, err := NewServer(&Ports{Chat: mock})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{URLs: []string{"https://x/"}})

		require.Error(t, err)
	})
}

func TestServer_handleSites(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sites with count", func(t *testing.T) {
		mock := &mockChatService{sites: []string{"https://a/", "https://b/"}}
		server, err := NewServer(&Ports{Chat: mock})
		require.NoError(t, err)

		_, output, err := server.handleSites(ctx, nil, SitesInput{})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, []string{"https://a/", "https://b/"}, output.Sites)
	})

	t.Run("empty index yields empty list", func(t *testing.T) {
		server, err := NewServer(&Ports{Chat: &mockChatService{}})
		require.NoError(t, err)

		_, output, err := server.handleSites(ctx, nil, SitesInput{})

		require.NoError(t, err)
		assert.Equal(t, 0, output.Count)
	})
}
