package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitechat/internal/core/domain"
)

func TestIngestCmd_RequiresAtLeastOneURL(t *testing.T) {
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg")
}

func TestIngestCmd_PrintsReport(t *testing.T) {
	mock := &mockChatService{report: &domain.IngestReport{
		Pages:   4,
		Chunks:  19,
		Domains: []string{"https://docs.example.com/"},
	}}
	cleanup := setupTestService(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "https://docs.example.com/"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Ingested 4 pages into 19 chunks")
	assert.Contains(t, buf.String(), "https://docs.example.com/")
	assert.Equal(t, []string{"https://docs.example.com/"}, mock.lastIngestReq.URLs)
}

func TestIngestCmd_PassesCapFlags(t *testing.T) {
	mock := &mockChatService{report: &domain.IngestReport{}}
	cleanup := setupTestService(mock)
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "--max-pages", "7", "--max-depth", "1", "https://a.example.com/"})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestMaxPages = 0
		ingestMaxDepth = 0
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, 7, mock.lastIngestReq.MaxPages)
	assert.Equal(t, 1, mock.lastIngestReq.MaxDepth)
}

func TestIngestCmd_ServiceError(t *testing.T) {
	cleanup := setupTestService(&mockChatService{ingestErr: errBoom})
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "https://a.example.com/"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
}
