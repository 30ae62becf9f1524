package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/sercha-rag/internal/core/domain"
	"github.com/custodia-labs/sercha-rag/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Index is an in-memory vector index guarded by a RWMutex.
// Searches run concurrently; inserts are exclusive.
type Index struct {
	mu      sync.RWMutex
	state   domain.IndexState
	failure error
	dim     int
	entries []domain.IndexedEntry
	mags    []float64
	nextSeq int
}

// New creates an uninitialized index.
func New() *Index {
	return &Index{state: domain.IndexUninitialized}
}

// MarkSeeding moves the index from uninitialized to seeding.
func (i *Index) MarkSeeding() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != domain.IndexUninitialized {
		return fmt.Errorf("%w: cannot start seeding from state %s", domain.ErrValidation, i.state)
	}
	i.state = domain.IndexSeeding
	return nil
}

// Seed stores the placeholder entry and makes the index ready.
// The seed vector fixes the dimension for every later entry.
func (i *Index) Seed(ctx context.Context, entry domain.IndexedEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(entry.Vector) == 0 {
		return fmt.Errorf("%w: seed vector is empty", domain.ErrDimensionMismatch)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != domain.IndexSeeding {
		return fmt.Errorf("%w: cannot seed from state %s", domain.ErrValidation, i.state)
	}

	i.dim = len(entry.Vector)
	md := i.tagLocked(entry)
	md[domain.MetaSeed] = true
	i.state = domain.IndexReady
	return nil
}

// MarkFailed records a seeding failure. A ready index is left untouched.
func (i *Index) MarkFailed(err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == domain.IndexReady {
		return
	}
	i.state = domain.IndexFailed
	i.failure = err
}

// Insert appends entries and returns how many were stored.
// Either every entry is stored or none is.
func (i *Index) Insert(ctx context.Context, entries []domain.IndexedEntry) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state != domain.IndexReady {
		return 0, domain.ErrIndexNotReady
	}
	for n, e := range entries {
		if len(e.Vector) != i.dim {
			return 0, fmt.Errorf("%w: entry %d has dimension %d, index has %d",
				domain.ErrDimensionMismatch, n, len(e.Vector), i.dim)
		}
	}

	for _, e := range entries {
		i.tagLocked(e)
	}
	return len(entries), nil
}

// tagLocked appends entry with a private metadata copy carrying its
// insertion sequence. Callers hold the write lock.
func (i *Index) tagLocked(entry domain.IndexedEntry) map[string]any {
	md := make(map[string]any, len(entry.Metadata)+1)
	for k, v := range entry.Metadata {
		md[k] = v
	}
	md[domain.MetaSeq] = i.nextSeq
	i.nextSeq++

	entry.Vector = append([]float32(nil), entry.Vector...)
	entry.Metadata = md
	i.entries = append(i.entries, entry)
	i.mags = append(i.mags, magnitude(entry.Vector))
	return md
}

// Search returns the k entries most similar to query, best first.
// k larger than the entry count is clamped. Ties keep insertion order.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]domain.ScoredEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrValidation, k)
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	if i.state != domain.IndexReady {
		return nil, domain.ErrIndexNotReady
	}
	if len(query) != i.dim {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(query), i.dim)
	}

	qm := magnitude(query)
	scored := make([]domain.ScoredEntry, len(i.entries))
	for n, e := range i.entries {
		scored[n] = domain.ScoredEntry{Entry: e, Score: cosine(query, e.Vector, qm, i.mags[n])}
	}
	sort.SliceStable(scored, func(a, b int) bool { return scored[a].Score > scored[b].Score })

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}

// State returns the lifecycle state.
func (i *Index) State() domain.IndexState {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// Status returns a snapshot for reporting.
func (i *Index) Status() domain.IndexStatus {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return domain.IndexStatus{
		State:      i.state,
		Entries:    len(i.entries),
		Dimensions: i.dim,
		Err:        i.failure,
	}
}

// Len returns the number of stored entries, including the seed.
func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.entries)
}

// Dimensions returns the fixed vector size, 0 until seeded.
func (i *Index) Dimensions() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.dim
}

// cosine scores a against b given their precomputed magnitudes.
// A zero vector has no direction and scores 0 against everything.
func cosine(a, b []float32, magA, magB float64) float64 {
	if magA == 0 || magB == 0 {
		return 0
	}
	s := dot(a, b) / (magA * magB)
	if math.IsNaN(s) {
		return 0
	}
	return s
}

func dot(a, b []float32) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}

func magnitude(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}
