package common

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- MakeRandHexString ----------

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	require.NoError(t, err)
	assert.Len(t, s, n*2)
	_, err = hex.DecodeString(s)
	assert.NoError(t, err)
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	require.NoError(t, err)
	assert.Empty(t, s)
}

func TestMakeRandHexString_EntropyHint(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

// ---------- MakeRandString ----------

func TestMakeRandString_UsesAlphabet(t *testing.T) {
	const alphabet = "abc"
	s, err := MakeRandString(alphabet, 64)
	require.NoError(t, err)
	assert.Len(t, s, 64)
	for _, r := range s {
		assert.True(t, strings.ContainsRune(alphabet, r), "unexpected symbol %q", r)
	}
}

func TestMakeRandString_EmptyAlphabet(t *testing.T) {
	_, err := MakeRandString("", 4)
	assert.Error(t, err)
}

// ---------- errors ----------

func TestValidationError_MatchesSentinel(t *testing.T) {
	err := fmt.Errorf("register: %w", NewValidationError("email", "malformed"))
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "email", ve.Field)
	assert.Equal(t, "invalid email: malformed", ve.Error())
}

func TestStoreError_MatchesStoreAndCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := StoreError("get", "users/a@b.c.json", cause)

	assert.True(t, errors.Is(err, ErrStore))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "users/a@b.c.json")
}

func TestIsDenied(t *testing.T) {
	assert.True(t, IsDenied(ErrExpired))
	assert.True(t, IsDenied(fmt.Errorf("wrap: %w", ErrLimitReached)))
	assert.False(t, IsDenied(ErrorNotFound))
}

// ---------- WipeByteArray ----------

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 6), buf)

	WipeByteArray(nil)
}
