package account

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secreta123")
	require.NoError(t, err)

	// Stored form is hex(salt):hex(key).
	salt, key, found := strings.Cut(hash, ":")
	require.True(t, found)
	assert.Len(t, salt, 32)
	assert.Len(t, key, 128)

	assert.True(t, VerifyPassword(hash, "secreta123"))
	assert.False(t, VerifyPassword(hash, "secreta124"))
	assert.False(t, VerifyPassword(hash, ""))
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	h1, err := HashPassword("secreta123")
	require.NoError(t, err)
	h2, err := HashPassword("secreta123")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("no-separator", "x"))
	assert.False(t, VerifyPassword("zzzz:zzzz", "x"))
	assert.False(t, VerifyPassword("", "x"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@lar.edu", NormalizeEmail("  ANA@Lar.EDU "))
}
