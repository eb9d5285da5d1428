package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateToken("cli", ScopeWrite, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.Subject)
	assert.True(t, claims.CanWrite())
}

func TestReadScopeCannotWrite(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	token, err := GenerateToken("viewer", "read", 0)
	require.NoError(t, err)
	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.False(t, claims.CanWrite())
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateRejects(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	// GenerateToken replaces non-positive ttls, so expired tokens are signed by hand.
	claims := Claims{
		Scope: ScopeWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Scope:            ScopeWrite,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: "someone-else"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	wrongKey, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Scope:            ScopeWrite,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	}).SignedString([]byte("ffffffffffffffffffffffffffffffff"))
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":   expired,
		"issuer":    foreign,
		"signature": wrongKey,
		"garbage":   "not.a.token",
	} {
		_, err := ValidateToken(token)
		assert.Error(t, err, name)
	}
}

func TestMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := GenerateToken("cli", ScopeWrite, time.Hour)
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "short")
	_, err = ValidateToken("x")
	assert.Error(t, err)
}
