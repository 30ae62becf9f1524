package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
)

// mockAskService implements driving.AskService for command tests.
type mockAskService struct {
	lastReq   domain.AskRequest
	lastQuery string
	lastK     int
	err       error
}

func (m *mockAskService) Ask(_ context.Context, req domain.AskRequest) (*domain.Answer, error) {
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	model := req.Model
	if model == "" {
		model = "mistral"
	}
	return &domain.Answer{
		Response: "The vault code is 998877.",
		Model:    model,
		Context:  []string{"the vault code is 998877"},
	}, nil
}

func (m *mockAskService) Search(_ context.Context, query string, k int) ([]domain.ScoredEntry, error) {
	m.lastQuery, m.lastK = query, k
	if m.err != nil {
		return nil, m.err
	}
	return []domain.ScoredEntry{
		{
			Entry: domain.IndexedEntry{
				ID:       "e-1",
				Text:     "the vault code is 998877",
				Metadata: map[string]any{domain.MetaSource: "notes.txt"},
			},
			Score: 0.93,
		},
		{
			Entry: domain.IndexedEntry{
				ID:       "e-0",
				Text:     "Hello world",
				Metadata: map[string]any{domain.MetaSeed: true},
			},
			Score: 0.12,
		},
	}, nil
}

// mockIngestService implements driving.IngestService for command tests.
type mockIngestService struct {
	contentCalls int
	fileCalls    int
	lastContent  any
	lastSource   string
	lastFilename string
	lastBody     []byte
	ingestions   []domain.Ingestion
	err          error
}

func (m *mockIngestService) IngestContent(_ context.Context, content any, source string) (*domain.IngestResult, error) {
	m.contentCalls++
	m.lastContent, m.lastSource = content, source
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestResult{IngestionID: "ing-1", Source: source, ChunkCount: 1}, nil
}

func (m *mockIngestService) IngestFile(_ context.Context, filename string, r io.Reader) (*domain.IngestResult, error) {
	m.fileCalls++
	m.lastFilename = filename
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	m.lastBody = buf.Bytes()
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestResult{IngestionID: "ing-2", Source: filename, ChunkCount: 3}, nil
}

func (m *mockIngestService) Ingestions(_ context.Context) ([]domain.Ingestion, error) {
	return m.ingestions, m.err
}

// mockStatus implements statusReader.
type mockStatus struct {
	status domain.IndexStatus
	err    error
}

func (m *mockStatus) Status(_ context.Context) (domain.IndexStatus, error) {
	return m.status, m.err
}

var testIngestion = domain.Ingestion{
	ID:         "ing-1",
	Source:     "report.csv",
	Format:     domain.FormatDelimitedTable,
	ChunkCount: 1,
	CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
}

var errGatewayDown = errors.New("gateway down")

// setupTestServices installs mocks and returns them with a cleanup func.
func setupTestServices() (*mockAskService, *mockIngestService, func()) {
	oldAsk, oldIngest, oldStatus := askService, ingestService, statusService

	ask := &mockAskService{}
	ingest := &mockIngestService{ingestions: []domain.Ingestion{testIngestion}}
	askService = ask
	ingestService = ingest
	statusService = &mockStatus{status: domain.IndexStatus{State: domain.IndexReady, Entries: 4, Dimensions: 768}}

	return ask, ingest, func() {
		askService, ingestService, statusService = oldAsk, oldIngest, oldStatus
	}
}

// execute runs the root command with args and returns its combined output.
func execute(args ...string) (string, error) {
	return executeWithInput("", args...)
}

// executeWithInput is execute with stdin set to input.
func executeWithInput(input string, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// stubValidator replaces the wizard's connectivity check.
type stubValidator struct {
	err      error
	settings *domain.Settings
}

func (v *stubValidator) Validate(_ context.Context, settings *domain.Settings) error {
	v.settings = settings
	return v.err
}
