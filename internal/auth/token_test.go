package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	user := &models.User{ID: 42, Username: "alice"}

	token, expiresAt, err := m.Generate(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestParseRejectsBadTokens(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)
	token, _, err := m.Generate(&models.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	t.Run("empty", func(t *testing.T) {
		_, err := m.Parse("")
		assert.ErrorIs(t, err, ErrEmptyToken)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := m.Parse("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered signature", func(t *testing.T) {
		parts := strings.Split(token, ".")
		require.Len(t, parts, 3)
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		_, err := m.Parse(parts[0] + "." + parts[1] + "." + string(sig))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenManager("another-secret", time.Hour)
		_, err := other.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("test-secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		stale, _, err := past.Generate(&models.User{ID: 7, Username: "bob"})
		require.NoError(t, err)

		_, err = m.Parse(stale)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("unsigned algorithm", func(t *testing.T) {
		claims := &models.JwtCustomClaims{
			UserID: 7,
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    issuer,
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Parse(none)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
