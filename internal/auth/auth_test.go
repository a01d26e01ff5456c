package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	issuer, err := NewIssuer("secret", "1h")
	require.NoError(t, err)

	token, err := issuer.GenerateJWT("u-1", "ops@example.com", "supplyops")
	require.NoError(t, err)

	claims, err := issuer.ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "ops@example.com", claims.Email)
	assert.Equal(t, "supplyops", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseJWTRejectsOtherSecret(t *testing.T) {
	a, err := NewIssuer("secret-a", "")
	require.NoError(t, err)
	b, err := NewIssuer("secret-b", "")
	require.NoError(t, err)

	token, err := a.GenerateJWT("u-1", "x@example.com", "admin")
	require.NoError(t, err)

	_, err = b.ParseJWT(token)
	assert.Error(t, err)
}

func TestParseJWTRejectsExpired(t *testing.T) {
	issuer, err := NewIssuer("secret", "1h")
	require.NoError(t, err)

	claims := &JWTClaims{
		UserID:           "u-1",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = issuer.ParseJWT(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestNewIssuerValidation(t *testing.T) {
	_, err := NewIssuer("", "1h")
	assert.Error(t, err)
	_, err = NewIssuer("secret", "one day")
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("pw", hash))
	assert.False(t, CheckPasswordHash("nope", hash))
}
