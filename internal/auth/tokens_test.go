package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestAccessTokenRoundTrip(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	token, err := ts.GenerateAccessToken(42)
	require.NoError(t, err)

	userID, err := ts.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestEmailTokenRoundTrip(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	token, err := ts.GenerateEmailToken("jane@example.com")
	require.NoError(t, err)

	email, err := ts.ParseEmailToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", email)
}

func TestParseAccessToken_RejectsEmailToken(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	token, err := ts.GenerateEmailToken("jane@example.com")
	require.NoError(t, err)

	_, err = ts.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseEmailToken_RejectsAccessToken(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)

	token, err := ts.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = ts.ParseEmailToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Expired(t *testing.T) {
	ts := NewTokenService(testSecret, -time.Minute)

	token, err := ts.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = ts.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	other := NewTokenService("another-secret-also-32-chars-long!!!", time.Hour)

	token, err := ts.GenerateAccessToken(42)
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseAccessToken_Garbage(t *testing.T) {
	ts := NewTokenService(testSecret, time.Hour)
	_, err := ts.ParseAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
