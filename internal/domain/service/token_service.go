package service

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the identity claim set carried by a session token.
type Claims struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying session tokens.
// This abstracts the details of token signing from the use cases.
type TokenService interface {
	// Issue signs the identity claims into a time-bounded session token.
	// The expiry window is fixed by the implementation.
	Issue(claims *Claims) (string, error)

	// Verify checks signature integrity and expiry of a token string and
	// returns the identity claims with the registered time fields stripped.
	// Every failure mode (malformed, tampered, expired) reports the same
	// error so callers cannot distinguish them.
	Verify(tokenString string) (*Claims, error)
}
