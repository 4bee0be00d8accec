// Package watchlist keeps the set of titles the schedule refresh job
// re-checks. The list lives in memory only; it is rebuilt through the API
// after a restart.
package watchlist

import (
	"sort"
	"sync"
	"time"
)

// Entry is one watched title.
type Entry struct {
	AnimegoID     string    `json:"animego_id"`
	Title         string    `json:"title"`
	Link          string    `json:"link"`
	ReleasedCount int       `json:"released_count"`
	AddedAt       time.Time `json:"added_at"`
	LastCheckedAt time.Time `json:"last_checked_at,omitempty"`
}

// Store is a concurrency-safe in-memory watchlist keyed by AnimegoID.
type Store struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Add inserts or replaces the entry for its AnimegoID.
func (s *Store) Add(e Entry) {
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now()
	}
	s.mu.Lock()
	s.entries[e.AnimegoID] = e
	s.mu.Unlock()
}

// Remove drops an entry. It reports whether the entry existed.
func (s *Store) Remove(animegoID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[animegoID]; !ok {
		return false
	}
	delete(s.entries, animegoID)
	return true
}

// Get returns the entry for the id, if present.
func (s *Store) Get(animegoID string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[animegoID]
	return e, ok
}

// All returns the entries sorted by title for stable listings.
func (s *Store) All() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// UpdateReleased records a new released-episode count and stamps the
// check time. It reports whether the entry existed.
func (s *Store) UpdateReleased(animegoID string, released int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[animegoID]
	if !ok {
		return false
	}
	e.ReleasedCount = released
	e.LastCheckedAt = time.Now()
	s.entries[animegoID] = e
	return true
}
