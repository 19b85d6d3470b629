// Package cryptox is the identity and credential service: one-way password
// digests and opaque random identifiers.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mutix31/Sharebin/internal/common"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for new digests. Stored digests carry their own
// parameters, so these may be raised without invalidating old passwords.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonKeyLen  uint32 = 32
	saltLen             = 16
)

const (
	idBytes      = 16
	tokenBytes   = 32
	shortCodeLen = 8
)

// ShortCodeAlphabet is the symbol set of short URL codes.
const ShortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

var errMalformedDigest = errors.New("malformed password digest")

func deriveKey(password, salt []byte, time, memory uint32, threads uint8, keyLen uint32) []byte {
	return argon2.IDKey(password, salt, time, memory, threads, keyLen)
}

// HashPassword returns an encoded argon2id digest with a fresh random salt:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := deriveKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// ComparePassword reports whether password matches digest. The final
// comparison runs in constant time.
func ComparePassword(password, digest string) bool {
	p, salt, key, err := decodeDigest(digest)
	if err != nil {
		return false
	}
	candidate := deriveKey([]byte(password), salt, p.time, p.memory, p.threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(candidate, key) == 1
}

type argonParams struct {
	memory  uint32
	time    uint32
	threads uint8
}

func decodeDigest(digest string) (argonParams, []byte, []byte, error) {
	var p argonParams

	parts := strings.Split(digest, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, errMalformedDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, errMalformedDigest
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.time, &p.threads); err != nil {
		return p, nil, nil, errMalformedDigest
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, errMalformedDigest
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errMalformedDigest
	}
	return p, salt, key, nil
}

// GenerateID returns 16 random bytes as 32 lowercase hex characters.
func GenerateID() (string, error) {
	return common.MakeRandHexString(idBytes)
}

// GenerateSessionToken returns 32 random bytes as 64 lowercase hex characters.
func GenerateSessionToken() (string, error) {
	return common.MakeRandHexString(tokenBytes)
}

// GenerateShortCode returns an 8-symbol base62 code.
func GenerateShortCode() (string, error) {
	return common.MakeRandString(ShortCodeAlphabet, shortCodeLen)
}
