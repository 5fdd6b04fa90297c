// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authsvc/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// VerifyInput carries the session token to verify and refresh.
type VerifyInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// --- Output DTOs ---

// AuthOutput is the authenticated result shared by all three operations:
// the public view of the account plus a session token.
type AuthOutput struct {
	User        *entity.PublicUser `json:"user"`
	AccessToken string             `json:"accessToken"`
}

// AuthUsecase defines the interface for the authentication operations.
// This is the contract that the delivery layer (e.g., HTTP handlers) depends on.
type AuthUsecase interface {
	// Register creates a new account and issues its first session token.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login validates credentials and issues a session token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// VerifyAndRefresh validates a session token and issues a fresh one
	// carrying the same identity claims.
	VerifyAndRefresh(ctx context.Context, input *VerifyInput) (*AuthOutput, error)
}
