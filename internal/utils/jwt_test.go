package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestSignJWT(t *testing.T) {
	tokenString, err := SignJWT("secret", "user-1", "worker", 60)

	assert.NoError(t, err)
	assert.NotEmpty(t, tokenString)

	claims, err := ParseJWT("secret", tokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "worker", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJWT_InvalidToken(t *testing.T) {
	_, err := ParseJWT("secret", "invalid.token.string")
	assert.Error(t, err)
}

func TestParseJWT_ExpiredToken(t *testing.T) {
	tokenString, _ := SignJWT("secret", "user-1", "worker", -1)

	_, err := ParseJWT("secret", tokenString)
	assert.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tokenString, _ := SignJWT("secret1", "user-1", "employer", 60)

	_, err := ParseJWT("secret2", tokenString)
	assert.Error(t, err)
}

func TestSignJWT_UniqueTokenID(t *testing.T) {
	t1, _ := SignJWT("secret", "user-1", "worker", 60)
	t2, _ := SignJWT("secret", "user-1", "worker", 60)

	c1, err := ParseJWT("secret", t1)
	assert.NoError(t, err)
	c2, err := ParseJWT("secret", t2)
	assert.NoError(t, err)
	assert.NotEqual(t, c1.ID, c2.ID)
}
