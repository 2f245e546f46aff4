package services_test

import (
	"testing"
	"time"

	"github.com/comitanigiacomo/kanso-reco-engine/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	svc := services.NewTokenService("test-secret", "kanso-reco-engine", time.Hour)

	t.Run("Success: round trip returns the subject", func(t *testing.T) {
		token, err := svc.GenerateToken("ops-admin")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		subject, err := svc.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, "ops-admin", subject)
	})

	t.Run("Fail: token signed with a different secret", func(t *testing.T) {
		other := services.NewTokenService("other-secret", "kanso-reco-engine", time.Hour)
		token, err := other.GenerateToken("ops-admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: wrong issuer", func(t *testing.T) {
		other := services.NewTokenService("test-secret", "someone-else", time.Hour)
		token, err := other.GenerateToken("ops-admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: expired token", func(t *testing.T) {
		expired := services.NewTokenService("test-secret", "kanso-reco-engine", -time.Minute)
		token, err := expired.GenerateToken("ops-admin")
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("Fail: garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
