// Package auth validates the bearer tokens issued by the identity provider
package auth

import (
	"fmt"
	"time"

	"github.com/afyastaff/afyastaff/internal/config"
	ierr "github.com/afyastaff/afyastaff/internal/errors"
	"github.com/afyastaff/afyastaff/internal/types"
	"github.com/golang-jwt/jwt/v4"
)

// Claims are the identity fields carried by an access token
type Claims struct {
	UserID         string           `json:"user_id"`
	OrganizationID string           `json:"organization_id,omitempty"`
	Role           types.SystemRole `json:"role,omitempty"`
	Email          string           `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type Provider interface {
	ValidateToken(token string) (*Claims, error)
	GenerateToken(claims Claims, ttl time.Duration) (string, error)
}

type hmacProvider struct {
	cfg config.AuthConfig
}

func NewProvider(cfg *config.Configuration) Provider {
	return &hmacProvider{cfg: cfg.Auth}
}

func (p *hmacProvider) ValidateToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", t.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(p.cfg.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Your session has expired, please sign in again").
			Mark(ierr.ErrPermissionDenied)
	}

	if !parsed.Valid || claims.UserID == "" {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}
	if p.cfg.Issuer != "" && !claims.VerifyIssuer(p.cfg.Issuer, true) {
		return nil, ierr.NewError("unexpected token issuer").
			WithHint("Invalid token issuer").
			Mark(ierr.ErrPermissionDenied)
	}
	if claims.Role != "" && claims.Role != types.SystemRolePlatformAdmin {
		if err := claims.Role.Validate(); err != nil {
			return nil, ierr.WithError(err).
				WithHint("Invalid role in token").
				Mark(ierr.ErrPermissionDenied)
		}
	}
	return claims, nil
}

// GenerateToken signs claims with the shared secret. Used by signup and by tests.
func (p *hmacProvider) GenerateToken(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	if claims.Issuer == "" {
		claims.Issuer = p.cfg.Issuer
	}
	claims.Subject = claims.UserID

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(p.cfg.Secret))
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}
	return token, nil
}
