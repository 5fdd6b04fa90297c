// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"
)

// tokenTTL is the fixed session token lifetime. Like the hash cost it is a
// design constant, not configuration.
const tokenTTL = 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte        // Secret key for signing session tokens (HS256).
	ttl    time.Duration // Time-to-live for session tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
// The signing secret comes from configuration and is read-only after startup.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey),
		ttl:    tokenTTL,
		now:    time.Now,
	}, nil
}

// NewJWTServiceWithClock creates a token service with an injected clock.
// Tests use it to mint tokens whose expiry is already in the past.
func NewJWTServiceWithClock(secret string, now func() time.Time) (service.TokenService, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if now == nil {
		now = time.Now
	}

	return &jwtService{secret: []byte(secret), ttl: tokenTTL, now: now}, nil
}

// Issue signs the identity claims plus issued-at and expiry timestamps.
func (s *jwtService) Issue(claims *service.Claims) (string, error) {
	issuedAt := s.now()

	signed := &service.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, signed)

	return token.SignedString(s.secret)
}

// Verify checks signature integrity and expiry, and returns the identity
// claims with the registered time fields stripped. Malformed, tampered and
// expired tokens all collapse to ErrInvalidToken so callers cannot use the
// error as an oracle.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, domainerrors.ErrInvalidToken
	}

	return &service.Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
	}, nil
}
