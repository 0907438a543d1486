package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	sid := m.NewSessionID()

	token, exp, err := m.GenerateAccessToken("user-1", sid)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, sid, claims.SessionID)
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)

	refresh, _, err := m.GenerateRefreshToken("user-1", m.NewSessionID())
	require.NoError(t, err)

	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)

	_, err = m.ParseRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestParseRejectsForeignSecret(t *testing.T) {
	a := NewJWTManager("secret-a", "secret-a", time.Hour, time.Hour)
	b := NewJWTManager("secret-b", "secret-b", time.Hour, time.Hour)

	token, _, err := a.GenerateAccessToken("user-1", a.NewSessionID())
	require.NoError(t, err)

	_, err = b.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestHashSecretRoundTrip(t *testing.T) {
	hash, err := HashSecret("token-value")
	require.NoError(t, err)
	assert.True(t, CheckSecret(hash, "token-value"))
	assert.False(t, CheckSecret(hash, "other"))
}
