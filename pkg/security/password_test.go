package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/okuyamiwatch/backend/pkg/config"
)

var fastCost = config.PasswordConfig{BcryptCost: bcrypt.MinCost}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse", fastCost)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2"))
	assert.NotContains(t, hash, "correct-horse")

	ok, err := VerifyPassword("correct-horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("", fastCost)
	assert.Error(t, err)
}

func TestHashPasswordSaltsEveryCall(t *testing.T) {
	first, err := HashPassword("correct-horse", fastCost)
	require.NoError(t, err)
	second, err := HashPassword("correct-horse", fastCost)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("anything", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestClampCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, clampCost(0))
	assert.Equal(t, bcrypt.DefaultCost, clampCost(-3))
	assert.Equal(t, 12, clampCost(12))
	assert.Equal(t, bcrypt.MaxCost, clampCost(99))
}
