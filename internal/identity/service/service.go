// Package service implements account registration and credential
// verification, and issues identity tokens on login.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"phonebook/internal/identity/models"
	"phonebook/internal/identity/password"
	"phonebook/internal/platform/metrics"
	"phonebook/internal/token"
	"phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
	"phonebook/pkg/platform/sentinel"
	"phonebook/pkg/requestcontext"
)

// UserStore is the persistence contract for accounts. Implementations
// return sentinel errors; this service translates them.
type UserStore interface {
	CreateIfAvailable(ctx context.Context, u *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Service orchestrates account lifecycle and login.
type Service struct {
	users   UserStore
	tokens  *token.Service
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(users UserStore, tokens *token.Service, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		logger:  logger,
		metrics: m,
	}
}

// Register creates a new member account. A taken username or email yields
// CodeConflict; which of the two collided is deliberately not disclosed.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           domain.NewUserID(),
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         domain.RoleMember,
		CreatedAt:    requestcontext.Now(ctx),
	}

	if err := s.users.CreateIfAvailable(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "username or email is already registered")
		}
		s.logger.ErrorContext(ctx, "failed to create user",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register account")
	}

	s.metrics.UsersRegistered.Inc()
	s.logger.InfoContext(ctx, "user registered",
		"user_id", u.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return u, nil
}

// Authenticate verifies a username/password pair. An unknown username and a
// wrong password produce the same error so callers cannot learn which part
// was wrong. Store failures are not folded into that answer.
func (s *Service) Authenticate(ctx context.Context, req models.LoginRequest) (*models.User, error) {
	u, err := s.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.LoginFailures.Inc()
			return nil, invalidCredentials()
		}
		s.logger.ErrorContext(ctx, "failed to look up user",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to authenticate")
	}

	ok, err := password.Verify(req.Password, u.PasswordHash)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to verify password",
			"error", err,
			"user_id", u.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to authenticate")
	}
	if !ok {
		s.metrics.LoginFailures.Inc()
		s.logger.InfoContext(ctx, "login with incorrect password",
			"username", req.Username,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, invalidCredentials()
	}

	return u, nil
}

// Login authenticates and issues an identity token for the account.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	u, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	signed, expiresAt, err := s.tokens.Issue(u.Identity(), requestcontext.Now(ctx))
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to issue token",
			"error", err,
			"user_id", u.ID.String(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	return &models.LoginResult{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// SeedAdmin creates the bootstrap admin account when it does not exist yet.
// An empty password skips seeding; an existing account with the seed email
// is left untouched.
func (s *Service) SeedAdmin(ctx context.Context, username, email, pw string) error {
	if pw == "" {
		s.logger.Info("admin password not set, skipping admin seed")
		return nil
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		s.logger.Info("admin already exists, skipping seed", "email", email)
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check for admin account")
	}

	hash, err := password.Hash(pw)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:           domain.NewUserID(),
		Username:     username,
		Email:        email,
		FirstName:    "Admin",
		LastName:     "User",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateIfAvailable(ctx, admin); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			// Lost a race with another instance seeding the same account.
			return nil
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to seed admin account")
	}

	s.logger.Info("admin user seeded", "username", username)
	return nil
}

func invalidCredentials() error {
	return dErrors.New(dErrors.CodeUnauthorized, "invalid username or password")
}
