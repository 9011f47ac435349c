package helpers

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	hashIterations = 1000
	hashKeyLen     = 64
)

// Hasher derives stored digests from secrets using PBKDF2-SHA512 keyed with a
// process-wide secret. The same input always yields the same digest: there is
// no per-call salt. It is used for passwords and for activation codes.
type Hasher struct {
	secret []byte
}

func NewHasher(secret string) *Hasher {
	return &Hasher{secret: []byte(secret)}
}

// Hash returns the hex digest of plain
func (h *Hasher) Hash(plain string) string {
	key := pbkdf2.Key([]byte(plain), h.secret, hashIterations, hashKeyLen, sha512.New)
	return hex.EncodeToString(key)
}

// Matches reports whether digest was produced from plain
func (h *Hasher) Matches(digest, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(digest), []byte(h.Hash(plain))) == 1
}
