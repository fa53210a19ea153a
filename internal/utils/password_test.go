package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	password := "password123"
	hashed, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)
}

func TestCheckPassword(t *testing.T) {
	password := "password123"
	hashed, _ := HashPassword(password)

	assert.True(t, CheckPassword(hashed, password))
	assert.False(t, CheckPassword(hashed, "wrongpassword"))
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	assert.False(t, CheckPassword("invalidhash", "password123"))
}
