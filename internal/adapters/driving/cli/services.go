package cli

import (
	"context"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
)

// statusReader reports the gateway's index state.
type statusReader interface {
	Status(ctx context.Context) (domain.IndexStatus, error)
}

// Services used by the client commands. Nil means a client for --server.
var (
	askService    driving.AskService
	ingestService driving.IngestService
	statusService statusReader
)

func askSvc() driving.AskService {
	if askService != nil {
		return askService
	}
	return newClient()
}

func ingestSvc() driving.IngestService {
	if ingestService != nil {
		return ingestService
	}
	return newClient()
}

func statusSvc() statusReader {
	if statusService != nil {
		return statusService
	}
	return newClient()
}
