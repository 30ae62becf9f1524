package tui

import "errors"

var (
	// ErrMissingAskService is returned when the ask service is not provided.
	ErrMissingAskService = errors.New("tui: ask service is required")

	// ErrIngestUnavailable is reported when /ingest is used without an ingest service.
	ErrIngestUnavailable = errors.New("tui: ingest is not available in this session")
)
