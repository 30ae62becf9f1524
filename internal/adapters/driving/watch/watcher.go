// Package watch ingests files dropped into a directory.
//
// Files already present are ingested when the watcher starts. Afterwards every
// created or rewritten file is ingested once its writes settle. Changed files
// are ingested again as new content; earlier entries are not removed.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-rag/internal/logger"
)

// DefaultSettle is how long a file must go without writes before it is ingested.
const DefaultSettle = 500 * time.Millisecond

// ErrClosed is returned by Run after Close.
var ErrClosed = errors.New("watch: watcher is closed")

// IngestFunc observes the outcome of each file ingest.
type IngestFunc func(path string, res *domain.IngestResult, err error)

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period before a changed file is ingested.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// WithInitialScan controls whether existing files are ingested on start.
func WithInitialScan(scan bool) Option {
	return func(w *Watcher) {
		w.initialScan = scan
	}
}

// WithOnIngest registers a callback run after every ingest attempt.
func WithOnIngest(fn IngestFunc) Option {
	return func(w *Watcher) {
		w.onIngest = fn
	}
}

// Watcher feeds files from a directory into the ingest service.
type Watcher struct {
	dir         string
	ingest      driving.IngestService
	settle      time.Duration
	initialScan bool
	onIngest    IngestFunc

	mu        sync.Mutex
	closed    bool
	pending   map[string]*time.Timer
	ready     chan string
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher for dir.
func New(dir string, ingest driving.IngestService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:         dir,
		ingest:      ingest,
		settle:      DefaultSettle,
		initialScan: true,
		pending:     make(map[string]*time.Timer),
		ready:       make(chan string),
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the directory until ctx is done. A watcher runs once.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrClosed
	}
	defer w.Close()

	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch dir: %s is not a directory", w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Info("Watching %s", w.dir)

	if w.initialScan {
		w.scan(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, ok := w.handleFsEvent(event); ok {
				w.schedule(path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		case path := <-w.ready:
			w.ingestFile(ctx, path)
		}
	}
}

// Close stops pending ingests. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() {
		w.mu.Lock()
		w.closed = true
		w.mu.Unlock()
		w.stopTimers()
		close(w.done)
	})
	return nil
}

// scan ingests the supported files already in the directory.
func (w *Watcher) scan(ctx context.Context) {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		logger.Warn("Failed to list %s: %v", w.dir, err)
		return
	}
	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() || !eligible(entry.Name()) {
			continue
		}
		w.ingestFile(ctx, filepath.Join(w.dir, entry.Name()))
	}
}

// handleFsEvent returns the path to ingest for event, if any.
// Only creates and writes of visible regular files with a supported
// extension qualify.
func (w *Watcher) handleFsEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if !eligible(filepath.Base(event.Name)) {
		return "", false
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return event.Name, true
}

// schedule (re)starts the settle timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		select {
		case w.ready <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
}

func (w *Watcher) ingestFile(ctx context.Context, path string) {
	res, err := w.ingestPath(ctx, path)
	if err != nil {
		logger.Warn("Failed to ingest %s: %v", path, err)
	} else {
		logger.Info("Ingested %s (%d chunks)", filepath.Base(path), res.ChunkCount)
	}
	if w.onIngest != nil {
		w.onIngest(path, res, err)
	}
}

func (w *Watcher) ingestPath(ctx context.Context, path string) (*domain.IngestResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	return w.ingest.IngestFile(ctx, filepath.Base(path), f)
}

// eligible reports whether name is a visible file of a supported format.
func eligible(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, err := domain.FormatFromFilename(name)
	return err == nil
}
