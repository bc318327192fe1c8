package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/sitechat/internal/core/ports/driving"
)

// AnswerInput is the input schema for the answer tool.
type AnswerInput struct {
	Question  string `json:"question" jsonschema:"the question to answer from the indexed websites"`
	TopK      int    `json:"top_k,omitempty" jsonschema:"number of chunks to retrieve (default 6)"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session id to continue a conversation"`
}

// AnswerOutput is the output schema for the answer tool.
type AnswerOutput struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources"`
	SessionID string   `json:"session_id"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	URLs     []string `json:"urls" jsonschema:"seed URLs of the websites to crawl and index"`
	MaxPages int      `json:"max_pages,omitempty" jsonschema:"maximum pages to crawl"`
	MaxDepth int      `json:"max_depth,omitempty" jsonschema:"maximum link depth"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Pages  int      `json:"pages"`
	Chunks int      `json:"chunks"`
	Sites  []string `json:"sites"`
}

// SitesInput is the input schema for the sites tool (no parameters).
type SitesInput struct{}

// SitesOutput is the output schema for the sites tool.
type SitesOutput struct {
	Sites []string `json:"sites"`
	Count int      `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "answer",
		Description: "Answer a question grounded on the indexed websites",
	}, s.handleAnswer)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Crawl websites and rebuild the index",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sites",
		Description: "List the websites currently indexed",
	}, s.handleSites)
}

// handleAnswer handles the answer tool invocation.
func (s *Server) handleAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	answer, err := s.ports.Chat.Answer(ctx, driving.AnswerRequest{
		Question:  input.Question,
		TopK:      input.TopK,
		SessionID: input.SessionID,
	})
	if err != nil {
		return nil, AnswerOutput{}, err
	}

	return nil, AnswerOutput{
		Answer:    answer.Answer,
		Sources:   answer.Sources,
		SessionID: answer.SessionID,
	}, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Chat.Ingest(ctx, driving.IngestRequest{
		URLs:     input.URLs,
		MaxPages: input.MaxPages,
		MaxDepth: input.MaxDepth,
	})
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		Pages:  report.Pages,
		Chunks: report.Chunks,
		Sites:  report.Domains,
	}, nil
}

// handleSites handles the sites tool invocation.
func (s *Server) handleSites(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ SitesInput,
) (*mcp.CallToolResult, SitesOutput, error) {
	sites, err := s.ports.Chat.Sites(ctx)
	if err != nil {
		return nil, SitesOutput{}, err
	}

	return nil, SitesOutput{Sites: sites, Count: len(sites)}, nil
}
