package app

import (
	"slices"
	"strings"
	"sync"

	"github.com/cimillas/eventfinder/internal/domain"
)

// ReminderBook is a per-user set of events to be reminded about.
// It lives in process memory only and is lost on restart.
type ReminderBook struct {
	catalog Catalog

	mu    sync.Mutex
	users map[string][]string
}

func NewReminderBook(cat Catalog) *ReminderBook {
	return &ReminderBook{catalog: cat, users: make(map[string][]string)}
}

// Add marks eventID for userID. Adding twice is a no-op.
func (b *ReminderBook) Add(userID, eventID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrUserRequired
	}
	if _, err := b.catalog.GetByID(eventID); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.users[userID], eventID) {
		b.users[userID] = append(b.users[userID], eventID)
	}
	return nil
}

// Remove clears the mark. Removing an absent mark is a no-op.
func (b *ReminderBook) Remove(userID, eventID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return domain.ErrUserRequired
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := b.users[userID]
	if i := slices.Index(ids, eventID); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	}
	if len(ids) == 0 {
		delete(b.users, userID)
	} else {
		b.users[userID] = ids
	}
	return nil
}

// Has reports whether userID marked eventID.
func (b *ReminderBook) Has(userID, eventID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Contains(b.users[strings.TrimSpace(userID)], eventID)
}

// List returns the marked events still in the catalog, in the order they were added.
func (b *ReminderBook) List(userID string) ([]domain.Event, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, domain.ErrUserRequired
	}
	b.mu.Lock()
	ids := slices.Clone(b.users[userID])
	b.mu.Unlock()
	return b.catalog.GetMany(ids), nil
}
