package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionToken_ExpiresExactlyAfterTTL(t *testing.T) {
	signedIn := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	tok, err := NewSessionToken("s3cret", "admin-1", "chef@example.com", "ADMIN", signedIn, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, signedIn.Add(time.Hour), tok.Exp)
	assert.NotEmpty(t, tok.ID)

	claims, err := ParseSessionToken("s3cret", tok.Token, signedIn.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, tok.ID, claims.ID)

	_, err = ParseSessionToken("s3cret", tok.Token, signedIn.Add(61*time.Minute))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseSessionToken_Rejects(t *testing.T) {
	now := time.Now()
	tok, err := NewSessionToken("s3cret", "admin-1", "", "ADMIN", now, time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken("other", tok.Token, now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSessionToken("s3cret", "not-a-jwt", now)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// HS512 with the same secret must not pass.
	claims := SessionClaims{Role: "ADMIN", RegisteredClaims: jwt.RegisteredClaims{
		ID: "x", Subject: "admin-1", ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ParseSessionToken("s3cret", raw, now)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "correct horse"))
	assert.False(t, VerifyPassword(hash, "wrong horse"))

	_, err = HashPassword("short", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrWeakPassword)
}
