// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - Normaliser: Converts one document format into flat text
//   - NormaliserRegistry: Dispatches a document to its normaliser by format
//   - EmbeddingService: Maps text to a fixed-dimension vector (Ollama)
//   - GenerationService: Forwards a prompt to the language model (Ollama)
//   - VectorIndex: In-memory nearest-neighbour store with a seeding lifecycle
//   - IngestionStore: Receipts of completed ingests
//   - ConfigStore: Application configuration
//   - PromptStore: Customisable prompt templates
//
// All of them are required; there is no degraded mode. A missing embedding
// or generation service surfaces as a failed request, never a silent fallback.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
