// Package service implements the contact directory operations: create,
// paginated listing, search, update and delete, all scoped to what the
// caller is allowed to see and change.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"phonebook/internal/contacts/models"
	"phonebook/internal/platform/metrics"
	"phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
	"phonebook/pkg/platform/sentinel"
	"phonebook/pkg/requestcontext"
)

// pageSize is the fixed number of contacts per page.
const pageSize = 10

// ContactStore is the persistence contract for contacts. Reads carry a
// visibility filter; implementations return sentinel errors and this
// service translates them.
type ContactStore interface {
	Insert(ctx context.Context, c *models.Contact) error
	FindVisibleByID(ctx context.Context, id domain.ContactID, caller domain.UserID) (*models.Contact, error)
	CountVisible(ctx context.Context, caller domain.UserID) (int64, error)
	ListVisible(ctx context.Context, caller domain.UserID, offset, limit int64) ([]models.Contact, error)
	SearchVisible(ctx context.Context, caller domain.UserID, query string, field models.SearchField, offset, limit int64) ([]models.Contact, error)
	Replace(ctx context.Context, c *models.Contact) error
	Delete(ctx context.Context, id domain.ContactID) error
}

// Service orchestrates directory reads and writes for a caller identity.
type Service struct {
	contacts ContactStore
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func New(contacts ContactStore, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		contacts: contacts,
		logger:   logger,
		metrics:  m,
	}
}

// Create inserts a new contact owned by the caller. A global contact is
// created only when the request asks for one AND the caller is an admin;
// otherwise the request is downgraded to a private contact without error.
func (s *Service) Create(ctx context.Context, caller domain.Identity, req models.CreateContactRequest) (*models.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var owner *domain.UserID
	if !req.IsGlobal || !caller.Role.IsAdmin() {
		id := caller.UserID
		owner = &id
	}

	now := requestcontext.Now(ctx)
	c := &models.Contact{
		ID:          domain.NewContactID(),
		OwnerID:     owner,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Email:       req.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.contacts.Insert(ctx, c); err != nil {
		s.logger.ErrorContext(ctx, "failed to create contact",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create contact")
	}

	s.metrics.ContactsCreated.Inc()
	s.logger.InfoContext(ctx, "contact created",
		"contact_id", c.ID.String(),
		"global", c.IsGlobal(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return c, nil
}

// List returns one page of the contacts visible to the caller, ordered by
// first name. Pages are 1-based and hold at most ten contacts. A page past
// the end of the visible set is an error, including page 1 of an empty
// directory.
func (s *Service) List(ctx context.Context, caller domain.Identity, page int) ([]models.Contact, error) {
	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	total, err := s.contacts.CountVisible(ctx, caller.UserID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to count contacts",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contacts")
	}
	if offset >= total {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "page %d exceeds the total number of available contacts", page)
	}

	out, err := s.contacts.ListVisible(ctx, caller.UserID, offset, pageSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list contacts",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list contacts")
	}
	return out, nil
}

// Search returns one page of the visible contacts whose selected field
// contains the query, case-insensitively. Unlike List, a page past the end
// of the result set is an empty slice, not an error.
func (s *Service) Search(ctx context.Context, caller domain.Identity, query, field string, page int) ([]models.Contact, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "search query cannot be empty")
	}

	offset, err := pageOffset(page)
	if err != nil {
		return nil, err
	}

	searchField, err := models.ParseSearchField(field)
	if err != nil {
		return nil, err
	}

	out, err := s.contacts.SearchVisible(ctx, caller.UserID, strings.ToLower(trimmed), searchField, offset, pageSize)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search contacts",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to search contacts")
	}
	return out, nil
}

// Update applies the present request fields to the contact. ID, owner and
// creation time never change. The caller must be able to see the contact,
// and global contacts accept writes from admins only.
func (s *Service) Update(ctx context.Context, caller domain.Identity, id domain.ContactID, req models.UpdateContactRequest) (*models.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.fetchForWrite(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	req.ApplyTo(&updated)
	updated.UpdatedAt = requestcontext.Now(ctx)

	if err := s.contacts.Replace(ctx, &updated); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			// Deleted between the fetch and the replace.
			return nil, contactNotFound()
		}
		s.logger.ErrorContext(ctx, "failed to update contact",
			"error", err,
			"contact_id", id.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update contact")
	}

	s.metrics.ContactsUpdated.Inc()
	s.logger.InfoContext(ctx, "contact updated",
		"contact_id", id.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return &updated, nil
}

// Delete removes the contact under the same access rules as Update.
func (s *Service) Delete(ctx context.Context, caller domain.Identity, id domain.ContactID) error {
	existing, err := s.fetchForWrite(ctx, caller, id)
	if err != nil {
		return err
	}

	if err := s.contacts.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return contactNotFound()
		}
		s.logger.ErrorContext(ctx, "failed to delete contact",
			"error", err,
			"contact_id", id.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete contact")
	}

	s.metrics.ContactsDeleted.Inc()
	s.logger.InfoContext(ctx, "contact deleted",
		"contact_id", id.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

// fetchForWrite loads the contact for a mutation. A contact the caller
// cannot see yields NotFound; a visible global contact yields Forbidden
// unless the caller is an admin. The order matters: invisibility must
// never surface as Forbidden.
func (s *Service) fetchForWrite(ctx context.Context, caller domain.Identity, id domain.ContactID) (*models.Contact, error) {
	existing, err := s.contacts.FindVisibleByID(ctx, id, caller.UserID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, contactNotFound()
		}
		s.logger.ErrorContext(ctx, "failed to fetch contact",
			"error", err,
			"contact_id", id.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to fetch contact")
	}
	if err := authorizeWrite(existing, caller); err != nil {
		return nil, err
	}
	return existing, nil
}

// authorizeWrite is the write-side access decision. Visibility is already
// settled by the store fetch.
func authorizeWrite(c *models.Contact, caller domain.Identity) error {
	if c.IsGlobal() && !caller.Role.IsAdmin() {
		return dErrors.New(dErrors.CodeForbidden, "only admins can modify global contacts")
	}
	return nil
}

func pageOffset(page int) (int64, error) {
	if page < 1 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "page number must be at least 1")
	}
	return int64(page-1) * pageSize, nil
}

func contactNotFound() error {
	return dErrors.New(dErrors.CodeNotFound, "contact not found")
}
