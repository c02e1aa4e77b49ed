// Package contact provides the directory entry store implementations. The
// in-memory store backs unit tests and local development; the Mongo store
// is the production backend. Both enforce the same contract:
//
//   - Visibility is part of every read: a caller sees its own contacts
//     plus global ones, nothing else
//   - Return sentinel.ErrNotFound when no matching contact exists
//   - Results are ordered by first name ascending, ties keeping
//     insertion order
package contact

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"phonebook/internal/contacts/models"
	"phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

// InMemory stores contacts in process memory for tests and development.
type InMemory struct {
	mu   sync.RWMutex
	byID map[domain.ContactID]*models.Contact
	// order preserves insertion order so equal first names sort stably.
	order []domain.ContactID
}

// NewInMemory constructs an empty in-memory contact store.
func NewInMemory() *InMemory {
	return &InMemory{byID: make(map[domain.ContactID]*models.Contact)}
}

func (s *InMemory) Insert(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *c
	s.byID[c.ID] = &copied
	s.order = append(s.order, c.ID)
	return nil
}

// FindVisibleByID returns the contact only when it exists and is visible
// to the caller. An existing but invisible contact is indistinguishable
// from a missing one.
func (s *InMemory) FindVisibleByID(_ context.Context, id domain.ContactID, caller domain.UserID) (*models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok || !c.VisibleTo(caller) {
		return nil, fmt.Errorf("contact %s: %w", id, sentinel.ErrNotFound)
	}
	copied := *c
	return &copied, nil
}

func (s *InMemory) CountVisible(_ context.Context, caller domain.UserID) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, c := range s.byID {
		if c.VisibleTo(caller) {
			n++
		}
	}
	return n, nil
}

func (s *InMemory) ListVisible(_ context.Context, caller domain.UserID, offset, limit int64) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visible := s.visibleSorted(caller, func(*models.Contact) bool { return true })
	return pageOf(visible, offset, limit), nil
}

func (s *InMemory) SearchVisible(_ context.Context, caller domain.UserID, query string, field models.SearchField, offset, limit int64) ([]models.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	visible := s.visibleSorted(caller, func(c *models.Contact) bool {
		return matches(c, q, field)
	})
	return pageOf(visible, offset, limit), nil
}

// Replace swaps the stored contact for c by ID. The caller is responsible
// for having fetched the contact through a visibility check first.
func (s *InMemory) Replace(_ context.Context, c *models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[c.ID]; !ok {
		return fmt.Errorf("contact %s: %w", c.ID, sentinel.ErrNotFound)
	}
	copied := *c
	s.byID[c.ID] = &copied
	return nil
}

func (s *InMemory) Delete(_ context.Context, id domain.ContactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("contact %s: %w", id, sentinel.ErrNotFound)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// visibleSorted walks contacts in insertion order, keeps those visible to
// the caller and accepted by keep, and sorts by first name ascending. The
// stable sort preserves insertion order between equal first names.
func (s *InMemory) visibleSorted(caller domain.UserID, keep func(*models.Contact) bool) []models.Contact {
	out := make([]models.Contact, 0)
	for _, id := range s.order {
		c := s.byID[id]
		if c.VisibleTo(caller) && keep(c) {
			out = append(out, *c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].FirstName) < strings.ToLower(out[j].FirstName)
	})
	return out
}

func pageOf(all []models.Contact, offset, limit int64) []models.Contact {
	if offset >= int64(len(all)) {
		return []models.Contact{}
	}
	end := offset + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[offset:end]
}

func matches(c *models.Contact, query string, field models.SearchField) bool {
	contains := func(v string) bool {
		return strings.Contains(strings.ToLower(v), query)
	}
	switch field {
	case models.SearchFirstName:
		return contains(c.FirstName)
	case models.SearchLastName:
		return contains(c.LastName)
	case models.SearchPhoneNumber:
		return contains(c.PhoneNumber)
	case models.SearchEmail:
		return contains(c.Email)
	default:
		return contains(c.FirstName) || contains(c.LastName) ||
			contains(c.PhoneNumber) || contains(c.Email)
	}
}
