// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The write path is IngestService (normalise, chunk, embed, insert); the
// read path is AskService (retrieve, compose, generate). IndexService owns
// the vector index lifecycle both paths depend on.
package services
