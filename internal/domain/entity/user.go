// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the single persisted record of the service: an account identified
// by an immutable, unique username. PasswordHash holds the bcrypt hash of the
// account password and must never leave the persistence/auth layers; callers
// that return users over the wire use Public().
type User struct {
	ID           uuid.UUID // The unique identifier for the account, generated by the store.
	Username     string    // Unique login identifier, immutable after creation.
	Email        string    // The user's contact email.
	PasswordHash string    // bcrypt hash of the account password. Never serialized.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}

// PublicUser is the caller-visible view of an account: the identity fields
// with the password hash removed.
type PublicUser struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the caller-visible view of the user.
func (u *User) Public() *PublicUser {
	if u == nil {
		return nil
	}

	return &PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
