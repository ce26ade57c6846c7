package service

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/prepply/prepply-backend/internal/config"
)

// ErrInvalidToken covers every way a bearer token can fail validation:
// bad signature, expiry, malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// Claims extends JWT standard claims with the identity provider's
// profile fields.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// AuthUser is the authenticated caller extracted from a validated token.
type AuthUser struct {
	ID    uuid.UUID
	Email string
	Name  string
}

// AuthService validates bearer tokens issued by the hosted identity
// provider. This service never mints tokens; signup and login live
// upstream.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// ValidateToken parses and validates a JWT, returning the caller it
// identifies. The subject claim must be a UUID.
func (s *AuthService) ValidateToken(tokenStr string) (*AuthUser, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.AuthJWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", ErrInvalidToken)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("subject is not a user id: %w", ErrInvalidToken)
	}

	return &AuthUser{
		ID:    userID,
		Email: claims.Email,
		Name:  claims.Name,
	}, nil
}
