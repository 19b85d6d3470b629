package cryptox

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, "$argon2id$v=19$m=65536,t=1,p=4$"))

	assert.True(t, ComparePassword("correct horse", digest))
	assert.False(t, ComparePassword("correct horsf", digest))
	assert.False(t, ComparePassword("", digest))
}

func TestHashPassword_SaltedPerDigest(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, ComparePassword("same", a))
	assert.True(t, ComparePassword("same", b))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	k1 := deriveKey([]byte("secret-password"), []byte("fixed-salt"), 1, 64*1024, 4, 32)
	k2 := deriveKey([]byte("secret-password"), []byte("fixed-salt"), 1, 64*1024, 4, 32)
	assert.Equal(t, k1, k2)

	k3 := deriveKey([]byte("secret-password"), []byte("salt-2"), 1, 64*1024, 4, 32)
	assert.NotEqual(t, k1, k3)
}

func TestComparePassword_MalformedDigests(t *testing.T) {
	for _, d := range []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=65536,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=x,t=1,p=4$c2FsdA$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$a2V5",
		"$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$",
	} {
		assert.False(t, ComparePassword("pw", d), d)
	}
}

func TestGenerateID(t *testing.T) {
	id, err := GenerateID()
	require.NoError(t, err)
	assert.Len(t, id, 32)
	_, err = hex.DecodeString(id)
	assert.NoError(t, err)
	assert.Equal(t, strings.ToLower(id), id)
}

func TestGenerateSessionToken(t *testing.T) {
	a, err := GenerateSessionToken()
	require.NoError(t, err)
	b, err := GenerateSessionToken()
	require.NoError(t, err)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestGenerateShortCode(t *testing.T) {
	code, err := GenerateShortCode()
	require.NoError(t, err)
	assert.Len(t, code, 8)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(ShortCodeAlphabet, r))
	}
}
