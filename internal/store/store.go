// Package store holds the dashboard's bins in memory for the lifetime of the process.
//
// The collection is never edited in place: every change builds a new ordered slice
// and swaps it in, and subscribers are handed the new snapshot afterwards.
package store

import (
	"errors"
	"log"
	"slices"
	"strings"
	"sync"

	"dustbin-dashboard/internal/models"
)

var (
	ErrSerialRequired   = errors.New("serial number is required")
	ErrLocationRequired = errors.New("location is required (select a point on the map)")
)

// Subscriber is called with the new snapshot after every replacement
type Subscriber func(bins []models.Bin)

type Store struct {
	// serialises writers from commit through subscriber delivery
	updateMu sync.Mutex

	mu          sync.RWMutex
	bins        []models.Bin
	subscribers []Subscriber
}

// New creates a store holding a copy of seed
func New(seed []models.Bin) *Store {
	return &Store{bins: slices.Clone(seed)}
}

// Subscribe registers fn for every future replacement of the collection
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// Snapshot returns a copy of the current collection
func (s *Store) Snapshot() []models.Bin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.bins)
}

// Len returns the number of bins currently held
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bins)
}

// Get looks up a bin by id
func (s *Store) Get(id int) (models.Bin, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, bin := range s.bins {
		if bin.ID == id {
			return bin, true
		}
	}
	return models.Bin{}, false
}

// Update replaces the collection with fn(current). fn receives a copy and runs under
// the write lock, so the whole transition is applied atomically. Subscribers see the
// snapshots in commit order and must not call Update themselves.
func (s *Store) Update(fn func(current []models.Bin) []models.Bin) []models.Bin {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	next := fn(slices.Clone(s.bins))
	s.bins = next
	subs := slices.Clone(s.subscribers)
	snapshot := slices.Clone(next)
	s.mu.Unlock()

	for _, sub := range subs {
		sub(slices.Clone(snapshot))
	}
	return snapshot
}

// NextID is the id policy for new bins: one past the highest id, or 1 for an empty collection
func NextID(bins []models.Bin) int {
	next := 1
	for _, bin := range bins {
		if bin.ID >= next {
			next = bin.ID + 1
		}
	}
	return next
}

// Add validates the candidate and appends it with a fresh id
func (s *Store) Add(req models.CreateBinRequest) (models.Bin, error) {
	serial := strings.TrimSpace(req.SerialNumber)
	if serial == "" {
		return models.Bin{}, ErrSerialRequired
	}
	if req.Lat == nil || req.Lng == nil {
		return models.Bin{}, ErrLocationRequired
	}

	fill := 0
	if req.FillPercentage != nil {
		fill = models.ClampFill(*req.FillPercentage)
	}

	var created models.Bin
	s.Update(func(current []models.Bin) []models.Bin {
		created = models.Bin{
			ID:             NextID(current),
			SerialNumber:   serial,
			FillPercentage: fill,
			Lat:            *req.Lat,
			Lng:            *req.Lng,
		}
		return append(current, created)
	})

	log.Printf("➕ Bin %s added with id %d (%.6f, %.6f)", created.SerialNumber, created.ID, created.Lat, created.Lng)
	return created, nil
}

// Remove deletes the bin with the given id. Unknown ids are ignored.
func (s *Store) Remove(id int) bool {
	removed := false
	s.Update(func(current []models.Bin) []models.Bin {
		next := make([]models.Bin, 0, len(current))
		for _, bin := range current {
			if bin.ID == id {
				removed = true
				continue
			}
			next = append(next, bin)
		}
		return next
	})

	if removed {
		log.Printf("🗑️  Bin %d removed", id)
	}
	return removed
}
