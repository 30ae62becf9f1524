package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer  *domain.Answer
	results []domain.ScoredEntry
	err     error
	lastReq domain.AskRequest
	lastK   int
}

func (m *mockAskService) Ask(_ context.Context, req domain.AskRequest) (*domain.Answer, error) {
	m.lastReq = req
	return m.answer, m.err
}

func (m *mockAskService) Search(_ context.Context, _ string, k int) ([]domain.ScoredEntry, error) {
	m.lastK = k
	return m.results, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result      *domain.IngestResult
	ingestions  []domain.Ingestion
	err         error
	lastContent any
	lastSource  string
}

func (m *mockIngestService) IngestContent(_ context.Context, content any, source string) (*domain.IngestResult, error) {
	m.lastContent = content
	m.lastSource = source
	return m.result, m.err
}

func (m *mockIngestService) IngestFile(_ context.Context, _ string, _ io.Reader) (*domain.IngestResult, error) {
	return m.result, m.err
}

func (m *mockIngestService) Ingestions(_ context.Context) ([]domain.Ingestion, error) {
	return m.ingestions, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	status domain.IndexStatus
}

func (m *mockIndexService) Start(_ context.Context) error { return nil }
func (m *mockIndexService) Wait(_ context.Context) error  { return nil }
func (m *mockIndexService) Status() domain.IndexStatus    { return m.status }
