package service

import (
	"testing"
	"time"

	apperrors "gearguard/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())

	access, refresh, err := svc.GenerateTokens("user-1")
	require.NoError(t, err)
	require.NotEqual(t, access, refresh)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.False(t, claims.IsRefreshToken)

	claims, err = svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, claims.IsRefreshToken)

	assert.Equal(t, time.Minute, svc.GetAccessTokenTTL())
	assert.Equal(t, time.Hour, svc.GetRefreshTokenTTL())
}

func TestValidateTokenRejects(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, time.Hour, zap.NewNop())

	t.Run("чужой секрет", func(t *testing.T) {
		other := NewJWTService("other-secret", time.Minute, time.Hour, zap.NewNop())
		access, _, err := other.GenerateTokens("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(access)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("истёкший токен", func(t *testing.T) {
		expired := NewJWTService("secret", -time.Minute, time.Hour, zap.NewNop())
		access, _, err := expired.GenerateTokens("user-1")
		require.NoError(t, err)

		_, err = svc.ValidateToken(access)
		assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
	})

	t.Run("пустой пользователь", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS512, &JwtCustomClaim{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute))},
		})
		signed, err := token.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("мусор", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
