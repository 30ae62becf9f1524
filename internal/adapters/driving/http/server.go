package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// DefaultMaxBodyBytes bounds JSON request bodies when Config leaves it unset.
const DefaultMaxBodyBytes = 32 << 20

// shutdownTimeout is how long in-flight requests get when the server stops.
const shutdownTimeout = 5 * time.Second

// Config configures the API server.
type Config struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// AllowedOrigin is sent in Access-Control-Allow-Origin. Empty means "*".
	AllowedOrigin string

	// MaxBodyBytes bounds JSON request bodies. Uploads are bounded by the
	// ingest service instead.
	MaxBodyBytes int64
}

// Server serves the gateway API.
type Server struct {
	mu       sync.Mutex
	ports    Ports
	cfg      Config
	handler  http.Handler
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer creates a server for the given ports.
func NewServer(ports Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	s := &Server{
		ports:   ports,
		cfg:     cfg,
		errChan: make(chan error, 1),
	}
	s.handler = chain(s.routes(),
		withCORS(cfg.AllowedOrigin),
		withRequestLogging,
		withRecovery,
	)
	return s, nil
}

// routes registers every endpoint on the root router so a known path with
// the wrong method reaches MethodNotAllowedHandler.
func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/ingest", s.handleIngest).Methods(http.MethodPost)
	r.HandleFunc("/api/upload", s.handleUpload).Methods(http.MethodPost)
	r.HandleFunc("/api/generate", s.handleGenerate).Methods(http.MethodPost)
	r.HandleFunc("/api/search", s.handleSearch).Methods(http.MethodPost)
	r.HandleFunc("/api/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/ingestions", s.handleIngestions).Methods(http.MethodGet)
	r.HandleFunc("/test", s.handleTest).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(handleNotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)
	return r
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return errors.New("http: server already started")
	}

	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.listener = listener
	s.server = srv

	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Info("Listening on %s", listener.Addr())
	return nil
}

// Err delivers a serving failure that occurs after Start.
func (s *Server) Err() <-chan error {
	return s.errChan
}

// Addr returns the bound address, or "" before Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run starts the server and blocks until ctx is done or serving fails,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-s.errChan:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && serveErr == nil {
		return err
	}
	return serveErr
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}
