// AngelaMos | 2026
// security_test.go

package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	other, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	valid, err := VerifyPassword("s3cret-pass", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = VerifyPassword("wrong", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyPasswordTimingSafe(t *testing.T) {
	valid, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, valid)

	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	valid, err = VerifyPasswordTimingSafe("s3cret-pass", &hash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	_, err := VerifyPassword("x", "$bcrypt$nope")
	assert.Error(t, err)
}
