// Package domain defines the core business entities for the Sercha RAG gateway.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded artifact tagged with its source Format
//   - Chunk: A bounded slice of normalised text
//   - IndexedEntry: A vector with its text and metadata, owned by the index
//   - IndexState: The lifecycle of the vector index
//   - Ingestion: A receipt for one completed ingest
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
