package postgres

import (
	"testing"
	"time"

	"authsvc/internal/domain/entity"
	"authsvc/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserMappers_RoundTrip(t *testing.T) {
	now := time.Now()
	userM := &model.UserModel{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	user := toUserDomain(userM)
	assert.Equal(t, userM.ID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.Equal(t, now, user.CreatedAt)

	back := fromUserDomain(user)
	assert.Equal(t, userM.ID, back.ID)
	assert.Equal(t, userM.Username, back.Username)
	assert.Equal(t, userM.PasswordHash, back.PasswordHash)
}

func TestUserMappers_Nil(t *testing.T) {
	assert.Nil(t, toUserDomain(nil))
	assert.Nil(t, fromUserDomain(nil))
}

func TestPublicViewOmitsHash(t *testing.T) {
	user := &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	}

	public := user.Public()
	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, user.Username, public.Username)
	assert.Equal(t, user.Email, public.Email)
}
