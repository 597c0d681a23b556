package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/purescan-ai/purescan-backend/internal/lib/jwt"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("uid-1", "anna", "PRO")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserUID)
	assert.Equal(t, "anna", claims.Username)
	assert.Equal(t, "PRO", claims.Plan)
}

func TestMaker_ParseToken_Errors(t *testing.T) {
	maker := jwt.NewMaker("test-secret", time.Hour)

	t.Run("garbage token", func(t *testing.T) {
		_, err := maker.ParseToken("not-a-token")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewMaker("another-secret", time.Hour)
		token, err := other.GenerateToken("uid-1", "anna", "FREE")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		require.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := jwt.NewMaker("test-secret", -time.Minute)
		token, err := expired.GenerateToken("uid-1", "anna", "FREE")
		require.NoError(t, err)

		_, err = maker.ParseToken(token)
		require.Error(t, err)
	})
}
