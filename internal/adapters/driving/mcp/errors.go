// Package mcp provides an MCP (Model Context Protocol) server adapter
// for sitechat. It lets AI assistants ingest websites and ask grounded
// questions over the indexed content.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")
