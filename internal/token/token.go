// Package token issues and verifies the signed identity tokens that carry
// a caller's account id and optional elevated-role claim.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"phonebook/pkg/domain"
	dErrors "phonebook/pkg/domain-errors"
)

// Claims represents the JWT claims for phonebook access tokens. The role
// claim is present only for admin accounts; absence means member.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service handles token creation and validation. All validation parameters
// are fixed at construction; the service holds no mutable state.
type Service struct {
	signingKey []byte
	issuer     string
	audience   string
	ttl        time.Duration
}

// New constructs a token service signing with the symmetric key derived
// from the configured secret.
func New(signingKey, issuer, audience string, ttl time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		audience:   audience,
		ttl:        ttl,
	}
}

// TTL exposes the configured token lifetime for login responses.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs a token for the given identity, expiring ttl from now.
// The role claim is embedded only for admins so that "no role claim" and
// "member" stay synonymous.
func (s *Service) Issue(ident domain.Identity, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.ttl)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Audience:  []string{s.audience},
		},
	}
	if ident.Role.IsAdmin() {
		claims.Role = ident.Role.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, signing method, issuer, audience, and expiry,
// then recovers the caller identity. Every failure mode collapses into a
// CodeUnauthorized domain error; nothing panics past this boundary.
func (s *Service) Validate(tokenString string) (domain.Identity, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	userID, err := domain.ParseUserID(claims.Subject)
	if err != nil {
		return domain.Identity{}, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}

	// Absent claim means member; unknown names also degrade to member.
	return domain.Identity{UserID: userID, Role: domain.ParseRole(claims.Role)}, nil
}
