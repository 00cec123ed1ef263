// Package catalog holds the in-memory event collection the discovery API reads from.
package catalog

import (
	"fmt"
	"strings"
	"sync"

	"github.com/cimillas/eventfinder/internal/domain"
)

// Store is a read-mostly snapshot of events kept in insertion order.
// Replace swaps the whole snapshot so readers never see a partial update.
type Store struct {
	mu     sync.RWMutex
	events []domain.Event
	byID   map[string]int
}

// New validates the records and builds a store over them.
func New(events []domain.Event) (*Store, error) {
	s := &Store{}
	if err := s.Replace(events); err != nil {
		return nil, err
	}
	return s, nil
}

// Replace validates events and atomically swaps the snapshot.
// On error the previous snapshot is kept.
func (s *Store) Replace(events []domain.Event) error {
	snapshot := make([]domain.Event, 0, len(events))
	byID := make(map[string]int, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %q: %w", e.ID, err)
		}
		if _, dup := byID[e.ID]; dup {
			return fmt.Errorf("event %q: %w", e.ID, domain.ErrDuplicateEventID)
		}
		byID[e.ID] = len(snapshot)
		snapshot = append(snapshot, e)
	}

	s.mu.Lock()
	s.events = snapshot
	s.byID = byID
	s.mu.Unlock()
	return nil
}

// Upsert validates event and replaces the entry with the same ID in place, or
// appends it. Writes made through the remote store use it to become readable
// before the next full refresh.
func (s *Store) Upsert(event domain.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("event %q: %w", event.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, ok := s.byID[event.ID]; ok {
		s.events[idx] = event
		return nil
	}
	if s.byID == nil {
		s.byID = make(map[string]int)
	}
	s.byID[event.ID] = len(s.events)
	s.events = append(s.events, event)
	return nil
}

// ListAll returns every event in insertion order. The slice is a copy.
func (s *Store) ListAll() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// GetByID returns the event with the given id or domain.ErrEventNotFound.
func (s *Store) GetByID(id string) (domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return s.events[idx], nil
}

// GetMany returns the events for ids that exist, in the order of ids.
func (s *Store) GetMany(ids []string) []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0, len(ids))
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			out = append(out, s.events[idx])
		}
	}
	return out
}

// ListFeatured returns the featured subsequence.
func (s *Store) ListFeatured() []domain.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Event, 0)
	for _, e := range s.events {
		if e.Featured {
			out = append(out, e)
		}
	}
	return out
}

// ListCategories returns distinct categories in order of first occurrence.
func (s *Store) ListCategories() []string {
	return s.distinct(func(e domain.Event) string { return e.Category })
}

// ListCities returns distinct non-empty cities in order of first occurrence.
func (s *Store) ListCities() []string {
	return s.distinct(func(e domain.Event) string { return e.City })
}

// Len reports the number of events in the snapshot.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

func (s *Store) distinct(field func(domain.Event) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, e := range s.events {
		v := field(e)
		if strings.TrimSpace(v) == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
