package http

import (
	"errors"

	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// Errors returned by Ports.Validate.
var (
	ErrMissingIngestService = errors.New("http: ingest service is required")
	ErrMissingAskService    = errors.New("http: ask service is required")
	ErrMissingIndexService  = errors.New("http: index service is required")
)

// Ports aggregates the driving ports the API serves.
type Ports struct {
	// Ingest runs the write path.
	Ingest driving.IngestService

	// Ask runs the read path.
	Ask driving.AskService

	// Index reports the index lifecycle.
	Index driving.IndexService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	switch {
	case p.Ingest == nil:
		return ErrMissingIngestService
	case p.Ask == nil:
		return ErrMissingAskService
	case p.Index == nil:
		return ErrMissingIndexService
	}
	return nil
}
