package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"phonebook/internal/identity/models"
	"phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

// accountBackend is the surface every account store implements. The suite
// below runs against each backend so they agree on lookups and uniqueness.
type accountBackend interface {
	CreateIfAvailable(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserStoreSuite holds contract tests shared by the in-memory and Mongo
// backends. Runners set newStore to produce a fresh, empty store per test.
type UserStoreSuite struct {
	suite.Suite
	newStore func() accountBackend
	store    accountBackend
	ctx      context.Context
}

func (s *UserStoreSuite) SetupTest() {
	s.store = s.newStore()
	s.ctx = context.Background()
}

func (s *UserStoreSuite) newUser(username, email string) *models.User {
	return &models.User{
		ID:           domain.NewUserID(),
		Username:     username,
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2a$10$fake",
		CreatedAt:    time.Now(),
	}
}

func (s *UserStoreSuite) TestCreationAndLookups() {
	s.Run("creates and finds user by username and email", func() {
		u := s.newUser("eran", "eran@example.com")
		s.Require().NoError(s.store.CreateIfAvailable(s.ctx, u))

		byName, err := s.store.FindByUsername(s.ctx, "eran")
		s.Require().NoError(err)
		s.Equal(u.ID, byName.ID)

		byEmail, err := s.store.FindByEmail(s.ctx, "eran@example.com")
		s.Require().NoError(err)
		s.Equal(u.ID, byEmail.ID)
	})

	s.Run("returns ErrNotFound for unknown username", func() {
		_, err := s.store.FindByUsername(s.ctx, "nobody")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("returns ErrNotFound for unknown email", func() {
		_, err := s.store.FindByEmail(s.ctx, "nobody@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UserStoreSuite) TestRoleRoundTrip() {
	admin := s.newUser("root", "root@example.com")
	admin.Role = domain.RoleAdmin
	s.Require().NoError(s.store.CreateIfAvailable(s.ctx, admin))
	s.Require().NoError(s.store.CreateIfAvailable(s.ctx, s.newUser("plain", "plain@example.com")))

	got, err := s.store.FindByUsername(s.ctx, "root")
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, got.Role)

	got, err = s.store.FindByUsername(s.ctx, "plain")
	s.Require().NoError(err)
	s.Equal(domain.RoleMember, got.Role)
}

func (s *UserStoreSuite) TestUniqueness() {
	s.Run("rejects duplicate username", func() {
		s.Require().NoError(s.store.CreateIfAvailable(s.ctx, s.newUser("dup", "a@example.com")))

		err := s.store.CreateIfAvailable(s.ctx, s.newUser("dup", "b@example.com"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("rejects duplicate email", func() {
		s.Require().NoError(s.store.CreateIfAvailable(s.ctx, s.newUser("alice", "shared@example.com")))

		err := s.store.CreateIfAvailable(s.ctx, s.newUser("bob", "shared@example.com"))
		s.Require().ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("failed create leaves no partial state", func() {
		s.Require().NoError(s.store.CreateIfAvailable(s.ctx, s.newUser("carol", "carol@example.com")))
		s.Require().Error(s.store.CreateIfAvailable(s.ctx, s.newUser("carol", "carol2@example.com")))

		_, err := s.store.FindByEmail(s.ctx, "carol2@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UserStoreSuite) TestLookupReturnsCopy() {
	u := s.newUser("dave", "dave@example.com")
	s.Require().NoError(s.store.CreateIfAvailable(s.ctx, u))

	found, err := s.store.FindByUsername(s.ctx, "dave")
	s.Require().NoError(err)
	found.FirstName = "Mutated"

	again, err := s.store.FindByUsername(s.ctx, "dave")
	s.Require().NoError(err)
	s.Equal("Test", again.FirstName)
}

func runUserStoreSuite(t *testing.T, newStore func() accountBackend) {
	s := new(UserStoreSuite)
	s.newStore = newStore
	suite.Run(t, s)
}
