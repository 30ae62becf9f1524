package http

import (
	"context"
	"io"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	result       *domain.IngestResult
	ingestions   []domain.Ingestion
	err          error
	contentCalls int
	fileCalls    int
	lastContent  any
	lastSource   string
	lastFilename string
	lastBody     string
}

func (m *mockIngestService) IngestContent(_ context.Context, content any, source string) (*domain.IngestResult, error) {
	m.contentCalls++
	m.lastContent = content
	m.lastSource = source
	return m.result, m.err
}

func (m *mockIngestService) IngestFile(_ context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	m.fileCalls++
	m.lastFilename = filename
	body, _ := io.ReadAll(r)
	m.lastBody = string(body)
	return m.result, m.err
}

func (m *mockIngestService) Ingestions(_ context.Context) ([]domain.Ingestion, error) {
	return m.ingestions, m.err
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer  *domain.Answer
	results []domain.ScoredEntry
	err     error
	calls   int
	lastReq domain.AskRequest
	lastK   int
}

func (m *mockAskService) Ask(_ context.Context, req domain.AskRequest) (*domain.Answer, error) {
	m.calls++
	m.lastReq = req
	return m.answer, m.err
}

func (m *mockAskService) Search(_ context.Context, _ string, k int) ([]domain.ScoredEntry, error) {
	m.calls++
	m.lastK = k
	return m.results, m.err
}

// mockIndexService is a mock implementation of driving.IndexService.
type mockIndexService struct {
	status domain.IndexStatus
}

func (m *mockIndexService) Start(_ context.Context) error { return nil }
func (m *mockIndexService) Wait(_ context.Context) error  { return nil }
func (m *mockIndexService) Status() domain.IndexStatus    { return m.status }
