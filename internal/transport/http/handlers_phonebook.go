package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"phonebook/internal/contacts/models"
	"phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
	"phonebook/pkg/platform/httputil"
	"phonebook/pkg/requestcontext"
)

// ContactService is the slice of the contact service the phonebook
// endpoints need.
type ContactService interface {
	Create(ctx context.Context, caller domain.Identity, req models.CreateContactRequest) (*models.Contact, error)
	List(ctx context.Context, caller domain.Identity, page int) ([]models.Contact, error)
	Search(ctx context.Context, caller domain.Identity, query, field string, page int) ([]models.Contact, error)
	Update(ctx context.Context, caller domain.Identity, id domain.ContactID, req models.UpdateContactRequest) (*models.Contact, error)
	Delete(ctx context.Context, caller domain.Identity, id domain.ContactID) error
}

// PhonebookHandler serves the authenticated contact directory endpoints.
type PhonebookHandler struct {
	contacts ContactService
	logger   *slog.Logger
}

func NewPhonebookHandler(contacts ContactService, logger *slog.Logger) *PhonebookHandler {
	return &PhonebookHandler{contacts: contacts, logger: logger}
}

// contactsPage is the list and search response body.
type contactsPage struct {
	Contacts []models.Contact `json:"contacts"`
	Page     int              `json:"page"`
}

// caller recovers the authenticated identity set by RequireAuth. A missing
// identity on a protected route is a wiring bug, reported as internal.
func (h *PhonebookHandler) caller(w http.ResponseWriter, r *http.Request) (domain.Identity, bool) {
	ident, ok := requestcontext.Identity(r.Context())
	if !ok {
		h.logger.ErrorContext(r.Context(), "identity missing from context despite auth middleware",
			"request_id", requestcontext.RequestID(r.Context()),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return domain.Identity{}, false
	}
	return ident, true
}

func (h *PhonebookHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req models.CreateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	c, err := h.contacts.Create(r.Context(), ident, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, c)
}

func (h *PhonebookHandler) handleList(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := pageParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	contacts, err := h.contacts.List(r.Context(), ident, page)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, contactsPage{Contacts: contacts, Page: page})
}

func (h *PhonebookHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.caller(w, r)
	if !ok {
		return
	}

	page, err := pageParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := r.URL.Query().Get("query")
	field := r.URL.Query().Get("field")

	contacts, err := h.contacts.Search(r.Context(), ident, query, field, page)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, contactsPage{Contacts: contacts, Page: page})
}

func (h *PhonebookHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := contactIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var req models.UpdateContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	c, err := h.contacts.Update(r.Context(), ident, id, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, c)
}

func (h *PhonebookHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.caller(w, r)
	if !ok {
		return
	}

	id, err := contactIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.contacts.Delete(r.Context(), ident, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"contact_id": id.String()})
}

// pageParam reads the optional 1-based page query parameter, defaulting to
// the first page.
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "page must be an integer")
	}
	return page, nil
}

func contactIDParam(r *http.Request) (domain.ContactID, error) {
	id, err := domain.ParseContactID(chi.URLParam(r, "id"))
	if err != nil {
		return domain.ContactID{}, dErrors.New(dErrors.CodeBadRequest, "invalid contact id")
	}
	return id, nil
}
