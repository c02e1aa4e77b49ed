// Package user provides the account store implementations. The in-memory
// store backs unit tests and local development; the Mongo store is the
// production backend. Both enforce the same contract:
//
//   - Return sentinel.ErrNotFound when no account matches
//   - Return sentinel.ErrAlreadyUsed when username or email is taken
//   - Return nil for successful operations
package user

import (
	"context"
	"fmt"
	"sync"

	"phonebook/internal/identity/models"
	"phonebook/pkg/platform/sentinel"
)

// InMemory stores accounts in process memory for tests and development.
type InMemory struct {
	mu         sync.RWMutex
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
}

// NewInMemory constructs an empty in-memory account store.
func NewInMemory() *InMemory {
	return &InMemory{
		byUsername: make(map[string]*models.User),
		byEmail:    make(map[string]*models.User),
	}
}

// CreateIfAvailable inserts the account unless its username or email is
// already taken. The check and insert happen under one lock so concurrent
// registrations cannot both succeed.
func (s *InMemory) CreateIfAvailable(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byUsername[u.Username]; taken {
		return fmt.Errorf("username %q: %w", u.Username, sentinel.ErrAlreadyUsed)
	}
	if _, taken := s.byEmail[u.Email]; taken {
		return fmt.Errorf("email %q: %w", u.Email, sentinel.ErrAlreadyUsed)
	}

	copied := *u
	s.byUsername[u.Username] = &copied
	s.byEmail[u.Email] = &copied
	return nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.byUsername[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("user %q: %w", username, sentinel.ErrNotFound)
}

func (s *InMemory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, fmt.Errorf("email %q: %w", email, sentinel.ErrNotFound)
}
