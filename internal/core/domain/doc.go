// Package domain defines the core business entities for sitechat.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A crawled web page before chunking
//   - ChunkDoc: A retrievable unit of page text
//   - ChatMessage / Session: Conversation state
//   - Answer: A grounded answer with its cited sources
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
