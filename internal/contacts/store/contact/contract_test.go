package contact

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"phonebook/internal/contacts/models"
	"phonebook/pkg/domain"
	"phonebook/pkg/platform/sentinel"
)

// contactBackend is the surface every contact store implements. The suite
// below runs against each backend so they cannot drift apart on visibility,
// ordering, or search semantics.
type contactBackend interface {
	Insert(ctx context.Context, c *models.Contact) error
	FindVisibleByID(ctx context.Context, id domain.ContactID, caller domain.UserID) (*models.Contact, error)
	CountVisible(ctx context.Context, caller domain.UserID) (int64, error)
	ListVisible(ctx context.Context, caller domain.UserID, offset, limit int64) ([]models.Contact, error)
	SearchVisible(ctx context.Context, caller domain.UserID, query string, field models.SearchField, offset, limit int64) ([]models.Contact, error)
	Replace(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id domain.ContactID) error
}

// ContactStoreSuite holds contract tests shared by the in-memory and Mongo
// backends. Runners set newStore to produce a fresh, empty store per test.
type ContactStoreSuite struct {
	suite.Suite
	newStore func() contactBackend
	store    contactBackend
	ctx      context.Context

	alice domain.UserID
	bob   domain.UserID
}

func (s *ContactStoreSuite) SetupTest() {
	s.store = s.newStore()
	s.ctx = context.Background()
	s.alice = domain.NewUserID()
	s.bob = domain.NewUserID()
}

func (s *ContactStoreSuite) newContact(owner *domain.UserID, firstName string) *models.Contact {
	now := time.Now().UTC()
	return &models.Contact{
		ID:          domain.NewContactID(),
		OwnerID:     owner,
		FirstName:   firstName,
		LastName:    "Levi",
		PhoneNumber: "0521234567",
		Email:       firstName + "@example.com",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *ContactStoreSuite) insert(owner *domain.UserID, firstName string) *models.Contact {
	c := s.newContact(owner, firstName)
	s.Require().NoError(s.store.Insert(s.ctx, c))
	return c
}

func (s *ContactStoreSuite) TestVisibility() {
	own := s.insert(&s.alice, "Dana")
	global := s.insert(nil, "Gila")
	other := s.insert(&s.bob, "Noa")

	s.Run("caller sees own and global contacts only", func() {
		got, err := s.store.ListVisible(s.ctx, s.alice, 0, 100)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("Dana", got[0].FirstName)
		s.Equal("Gila", got[1].FirstName)
	})

	s.Run("count matches the visible set", func() {
		n, err := s.store.CountVisible(s.ctx, s.alice)
		s.Require().NoError(err)
		s.Equal(int64(2), n)
	})

	s.Run("find by id honors visibility", func() {
		found, err := s.store.FindVisibleByID(s.ctx, own.ID, s.alice)
		s.Require().NoError(err)
		s.Equal(own.ID, found.ID)

		found, err = s.store.FindVisibleByID(s.ctx, global.ID, s.alice)
		s.Require().NoError(err)
		s.Nil(found.OwnerID)

		_, err = s.store.FindVisibleByID(s.ctx, other.ID, s.alice)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("missing id is not found", func() {
		_, err := s.store.FindVisibleByID(s.ctx, domain.NewContactID(), s.alice)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *ContactStoreSuite) TestOrdering() {
	s.insert(&s.alice, "delta")
	s.insert(&s.alice, "Bravo")
	s.insert(&s.alice, "echo")
	s.insert(&s.alice, "alpha")
	s.insert(&s.alice, "Charlie")

	s.Run("orders by first name ignoring case", func() {
		got, err := s.store.ListVisible(s.ctx, s.alice, 0, 100)
		s.Require().NoError(err)
		s.Require().Len(got, 5)
		s.Equal("alpha", got[0].FirstName)
		s.Equal("Bravo", got[1].FirstName)
		s.Equal("Charlie", got[2].FirstName)
		s.Equal("delta", got[3].FirstName)
		s.Equal("echo", got[4].FirstName)
	})

	// A byte-wise sort would put Bravo and Charlie on the first page.
	s.Run("page boundaries follow the case-insensitive order", func() {
		page1, err := s.store.ListVisible(s.ctx, s.alice, 0, 2)
		s.Require().NoError(err)
		s.Require().Len(page1, 2)
		s.Equal("alpha", page1[0].FirstName)
		s.Equal("Bravo", page1[1].FirstName)

		page2, err := s.store.ListVisible(s.ctx, s.alice, 2, 2)
		s.Require().NoError(err)
		s.Require().Len(page2, 2)
		s.Equal("Charlie", page2[0].FirstName)
		s.Equal("delta", page2[1].FirstName)

		page3, err := s.store.ListVisible(s.ctx, s.alice, 4, 2)
		s.Require().NoError(err)
		s.Require().Len(page3, 1)
		s.Equal("echo", page3[0].FirstName)
	})
}

func (s *ContactStoreSuite) TestPagination() {
	for i := 0; i < 5; i++ {
		s.insert(&s.alice, fmt.Sprintf("Contact%c", 'A'+i))
	}

	s.Run("offset and limit slice the ordered set", func() {
		got, err := s.store.ListVisible(s.ctx, s.alice, 2, 2)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		s.Equal("ContactC", got[0].FirstName)
		s.Equal("ContactD", got[1].FirstName)
	})

	s.Run("short final page", func() {
		got, err := s.store.ListVisible(s.ctx, s.alice, 4, 2)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
	})

	s.Run("offset past the end is empty", func() {
		got, err := s.store.ListVisible(s.ctx, s.alice, 10, 2)
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *ContactStoreSuite) TestSearch() {
	s.insert(&s.alice, "Eran")
	s.insert(&s.alice, "Dana")
	s.insert(nil, "Gila")
	s.insert(&s.bob, "Erania")

	s.Run("substring match is case-insensitive", func() {
		got, err := s.store.SearchVisible(s.ctx, s.alice, "eRaN", models.SearchFirstName, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("Eran", got[0].FirstName)
	})

	s.Run("all fields searches across fields", func() {
		got, err := s.store.SearchVisible(s.ctx, s.alice, "gila@example.com", models.SearchAll, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("Gila", got[0].FirstName)
	})

	s.Run("search respects visibility", func() {
		got, err := s.store.SearchVisible(s.ctx, s.alice, "eran", models.SearchFirstName, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
	})

	s.Run("regex metacharacters match literally", func() {
		s.insert(&s.alice, "A.B")
		s.insert(&s.alice, "AxB")

		got, err := s.store.SearchVisible(s.ctx, s.alice, "A.B", models.SearchFirstName, 0, 10)
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("A.B", got[0].FirstName)
	})

	s.Run("no match is an empty slice", func() {
		got, err := s.store.SearchVisible(s.ctx, s.alice, "zzz", models.SearchAll, 0, 10)
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *ContactStoreSuite) TestReplaceAndDelete() {
	s.Run("replace swaps fields and keeps the id", func() {
		c := s.insert(&s.alice, "Dana")
		updated := *c
		updated.PhoneNumber = "0539999999"
		s.Require().NoError(s.store.Replace(s.ctx, &updated))

		got, err := s.store.FindVisibleByID(s.ctx, c.ID, s.alice)
		s.Require().NoError(err)
		s.Equal("0539999999", got.PhoneNumber)
	})

	s.Run("replace of a missing contact is not found", func() {
		ghost := s.newContact(&s.alice, "Ghost")
		s.Require().ErrorIs(s.store.Replace(s.ctx, ghost), sentinel.ErrNotFound)
	})

	s.Run("delete removes the contact", func() {
		c := s.insert(&s.alice, "Noa")
		s.Require().NoError(s.store.Delete(s.ctx, c.ID))

		_, err := s.store.FindVisibleByID(s.ctx, c.ID, s.alice)
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		s.Require().ErrorIs(s.store.Delete(s.ctx, c.ID), sentinel.ErrNotFound)
	})

	s.Run("results are copies", func() {
		c := s.insert(&s.alice, "Rina")
		got, err := s.store.FindVisibleByID(s.ctx, c.ID, s.alice)
		s.Require().NoError(err)
		got.FirstName = "Mutated"

		again, err := s.store.FindVisibleByID(s.ctx, c.ID, s.alice)
		s.Require().NoError(err)
		s.Equal("Rina", again.FirstName)
	})
}

func runContactStoreSuite(t *testing.T, newStore func() contactBackend) {
	s := new(ContactStoreSuite)
	s.newStore = newStore
	suite.Run(t, s)
}
