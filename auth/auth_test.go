package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	svc := NewService("test-secret")

	digest, err := svc.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", digest)

	assert.True(t, svc.CheckPassword("correct horse battery staple", digest))
	assert.False(t, svc.CheckPassword("correct horse battery stapl", digest))
	assert.False(t, svc.CheckPassword("", digest))
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	svc := NewService("test-secret")

	first, err := svc.HashPassword("hunter2")
	require.NoError(t, err)
	second, err := svc.HashPassword("hunter2")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, svc.CheckPassword("hunter2", first))
	assert.True(t, svc.CheckPassword("hunter2", second))
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := NewService("test-secret")
	userID := uuid.New()

	token, err := svc.IssueToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	now := time.Now()
	clock := now
	svc := NewService("test-secret",
		WithTokenTTL(time.Minute),
		WithClock(func() time.Time { return clock }),
	)

	token, err := svc.IssueToken(uuid.New())
	require.NoError(t, err)

	// Still valid just before expiry.
	clock = now.Add(59 * time.Second)
	_, err = svc.ValidateToken(token)
	require.NoError(t, err)

	clock = now.Add(2 * time.Minute)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a")
	verifier := NewService("secret-b")

	token, err := issuer.IssueToken(uuid.New())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret")

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}
