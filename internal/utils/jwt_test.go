package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyToken_RoundTrip(t *testing.T) {
	raw, err := NewVerifyToken("secret", 42, time.Hour)
	require.NoError(t, err)

	uid, err := ParseVerifyToken("secret", raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), uid)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	raw, err := NewVerifyToken("secret", 42, time.Hour)
	require.NoError(t, err)

	_, err = ParseVerifyToken("other", raw)
	assert.ErrorIs(t, err, ErrNotVerifyToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	raw, err := NewVerifyToken("secret", 42, -time.Minute)
	require.NoError(t, err)

	_, err = ParseVerifyToken("secret", raw)
	assert.ErrorIs(t, err, ErrNotVerifyToken)
}

func TestVerifyToken_AccessTokenRejected(t *testing.T) {
	// an access token signed with the same secret must not pass as a
	// verification link
	access, err := NewAccessToken("secret", 42, "USER", 15)
	require.NoError(t, err)

	_, err = ParseVerifyToken("secret", access.Token)
	assert.ErrorIs(t, err, ErrNotVerifyToken)
}

func TestHashRefreshRaw_Deterministic(t *testing.T) {
	a, err := NewRefreshToken(7)
	require.NoError(t, err)
	b, err := NewRefreshToken(7)
	require.NoError(t, err)

	assert.NotEqual(t, a.Raw, b.Raw)
	assert.Equal(t, HashRefreshRaw(a.Raw), HashRefreshRaw(a.Raw))
	assert.NotEqual(t, HashRefreshRaw(a.Raw), HashRefreshRaw(b.Raw))
	assert.Len(t, HashRefreshRaw(a.Raw), 64)
}
