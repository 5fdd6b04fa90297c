package auth

import (
	"strings"
	"testing"
	"time"

	"authsvc/config"
	domainerrors "authsvc/internal/domain/errors"
	"authsvc/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func newTestClaims() *service.Claims {
	return &service.Claims{
		UserID:   uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
	}
}

func TestJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)

	_, err = NewJWTServiceWithClock("", nil)
	assert.Error(t, err)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTServiceWithClock(testSecret, nil)
	require.NoError(t, err)

	claims := newTestClaims()
	token, err := svc.Issue(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, claims.Username, got.Username)
	assert.Equal(t, claims.Email, got.Email)

	// Registered time fields are stripped from the verified claims.
	assert.Nil(t, got.ExpiresAt)
	assert.Nil(t, got.IssuedAt)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-25 * time.Hour)
	issuer, err := NewJWTServiceWithClock(testSecret, func() time.Time { return past })
	require.NoError(t, err)

	token, err := issuer.Issue(newTestClaims())
	require.NoError(t, err)

	verifier, err := NewJWTServiceWithClock(testSecret, nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_TokenValidWithinLifetime(t *testing.T) {
	issuedAt := time.Now().Add(-23 * time.Hour)
	issuer, err := NewJWTServiceWithClock(testSecret, func() time.Time { return issuedAt })
	require.NoError(t, err)

	token, err := issuer.Issue(newTestClaims())
	require.NoError(t, err)

	verifier, err := NewJWTServiceWithClock(testSecret, nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.NoError(t, err)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTServiceWithClock(testSecret, nil)
	require.NoError(t, err)

	token, err := svc.Issue(newTestClaims())
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = svc.Verify(tampered)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTServiceWithClock(testSecret, nil)
	require.NoError(t, err)

	token, err := issuer.Issue(newTestClaims())
	require.NoError(t, err)

	verifier, err := NewJWTServiceWithClock("another-secret", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTServiceWithClock(testSecret, nil)
	require.NoError(t, err)

	for _, tokenString := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(tokenString)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
	}
}

func TestJWTService_RefreshExtendsExpiry(t *testing.T) {
	base := time.Now()
	issuer, err := NewJWTServiceWithClock(testSecret, func() time.Time { return base })
	require.NoError(t, err)

	first, err := issuer.Issue(newTestClaims())
	require.NoError(t, err)

	// Re-issuing two hours later produces a token that outlives the first.
	later, err := NewJWTServiceWithClock(testSecret, func() time.Time { return base.Add(2 * time.Hour) })
	require.NoError(t, err)

	claims, err := later.Verify(first)
	require.NoError(t, err)

	second, err := later.Issue(claims)
	require.NoError(t, err)

	// At base+24h30m the first token is expired but the refreshed one is not.
	future, err := NewJWTServiceWithClock(testSecret, func() time.Time { return base.Add(24*time.Hour + 30*time.Minute) })
	require.NoError(t, err)

	_, err = future.Verify(first)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)

	_, err = future.Verify(second)
	assert.NoError(t, err)
}
