package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, "")
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "admin@grove.test", "admin")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidateAccessTokenRejects(t *testing.T) {
	m := NewManager("secret", time.Hour, "grove-api")
	token, err := m.GenerateAccessToken(uuid.New(), "a@grove.test", "teacher")
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewManager("other", time.Hour, "grove-api").ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := NewManager("secret", time.Hour, "someone-else").ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewManager("secret", -time.Minute, "grove-api")
		tok, err := expired.GenerateAccessToken(uuid.New(), "a@grove.test", "teacher")
		require.NoError(t, err)
		_, err = expired.ValidateAccessToken(tok)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ValidateAccessToken("not-a-token")
		assert.Error(t, err)
	})
}
