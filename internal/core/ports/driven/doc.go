// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Crawler: Turns seed URLs into raw page text
//   - EmbeddingService: Generates vector embeddings
//   - LLMService: Generates grounded answers
//   - IndexRepository / IndexStore: Vector index build, persistence and search
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
