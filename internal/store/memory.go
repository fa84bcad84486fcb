package store

import (
	"errors"
	"sync"

	"github.com/citypairs/flight-explorer/internal/flights"
)

var (
	// ErrNotLoaded is returned when no dataset has been loaded yet.
	ErrNotLoaded = errors.New("no dataset loaded")
)

// MemoryStore is a concurrency-safe in-memory store of dataset snapshots.
// Readers always see a complete snapshot: Swap replaces the current dataset
// atomically and never mutates one already handed out.
type MemoryStore struct {
	mu sync.RWMutex

	// most recent last; only the last element is served
	loads []*flights.Dataset

	// max number of retained snapshots, <= 0 means keep only the current one
	maxHistory int
}

// NewMemoryStore creates a MemoryStore retaining up to maxHistory snapshots.
func NewMemoryStore(maxHistory int) *MemoryStore {
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &MemoryStore{maxHistory: maxHistory}
}

// Swap installs ds as the current snapshot and enforces retention.
func (s *MemoryStore) Swap(ds *flights.Dataset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads = append(s.loads, ds)
	if over := len(s.loads) - s.maxHistory; over > 0 {
		s.loads = s.loads[over:]
	}
}

// Current returns the most recently loaded dataset.
func (s *MemoryStore) Current() (*flights.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.loads) == 0 {
		return nil, ErrNotLoaded
	}
	return s.loads[len(s.loads)-1], nil
}

// Loads returns metadata for the retained snapshots, oldest first. Record
// slices are omitted; this is for diagnostics.
func (s *MemoryStore) Loads() []flights.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]flights.Dataset, 0, len(s.loads))
	for _, ds := range s.loads {
		meta := *ds
		meta.Records = nil
		meta.Cities = nil
		out = append(out, meta)
	}
	return out
}
