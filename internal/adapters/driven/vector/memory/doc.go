// Package memory provides a brute-force in-memory vector index.
//
// Every search scores the query against every stored entry by cosine
// similarity. The entry set is append-only and lives for the lifetime of
// the process.
package memory
