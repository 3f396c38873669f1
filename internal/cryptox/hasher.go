// Package cryptox implements the credential hasher: a one-way function over
// a per-identity salt and a plaintext password, plus salt generation and
// constant-time verification.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/coursekeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	AlgorithmSHA256   = "sha256"
	AlgorithmArgon2ID = "argon2id"

	// SaltSize is the number of random bytes behind every salt (128 bits).
	SaltSize = 16

	argon2Prefix = AlgorithmArgon2ID + "$"
	argon2Params = "t=%d,m=%d,p=%d"

	// Digests longer than this would not fit the password_hash column
	// together with the parameter prefix.
	maxArgon2KeyLen = 32
)

// Hasher computes the stored digest for a salt and a password.
type Hasher interface {
	Hash(salt, password string) string
	Name() string
}

// SHA256Hasher computes hex(SHA-256(salt || password)).
type SHA256Hasher struct{}

func (SHA256Hasher) Name() string { return AlgorithmSHA256 }

func (SHA256Hasher) Hash(salt, password string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// Argon2Hasher derives the digest with Argon2id. Its output has the form
// "argon2id$t=<time>,m=<memory>,p=<threads>$<hex>" so Verify can tell the
// encodings apart and recompute with the parameters the digest was made with.
type Argon2Hasher struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
}

// NewArgon2Hasher returns an Argon2id hasher with the parameters used for
// master keys elsewhere in the project (1 pass, 64 MiB, 4 lanes, 32 bytes).
func NewArgon2Hasher() Argon2Hasher {
	return Argon2Hasher{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 32}
}

func (Argon2Hasher) Name() string { return AlgorithmArgon2ID }

func (h Argon2Hasher) Hash(salt, password string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), h.Time, h.Memory, h.Threads, h.KeyLen)
	return argon2Prefix + h.params() + "$" + hex.EncodeToString(key)
}

func (h Argon2Hasher) params() string {
	return fmt.Sprintf(argon2Params, h.Time, h.Memory, h.Threads)
}

// parseArgon2 recovers the hasher an Argon2 encoding was produced with.
func parseArgon2(encoded string) (Argon2Hasher, bool) {
	params, digest, ok := strings.Cut(strings.TrimPrefix(encoded, argon2Prefix), "$")
	if !ok {
		return Argon2Hasher{}, false
	}

	var h Argon2Hasher
	if _, err := fmt.Sscanf(params, argon2Params, &h.Time, &h.Memory, &h.Threads); err != nil {
		return Argon2Hasher{}, false
	}
	// Sscanf tolerates trailing input; the round trip rejects it.
	if h.params() != params || h.Time == 0 || h.Threads == 0 || h.Memory < 8*uint32(h.Threads) {
		return Argon2Hasher{}, false
	}

	key, err := hex.DecodeString(digest)
	if err != nil || len(key) == 0 || len(key) > maxArgon2KeyLen {
		return Argon2Hasher{}, false
	}
	h.KeyLen = uint32(len(key))
	return h, true
}

// NewHasher returns the hasher registered under name.
func NewHasher(name string) (Hasher, error) {
	switch name {
	case "", AlgorithmSHA256:
		return SHA256Hasher{}, nil
	case AlgorithmArgon2ID:
		return NewArgon2Hasher(), nil
	}
	return nil, fmt.Errorf("unknown hash algorithm %q", name)
}

// NewSalt draws a fresh salt from crypto/rand.
func NewSalt() (string, error) {
	return common.MakeRandHexString(SaltSize)
}

// Verify recomputes the digest for salt and password with the algorithm and
// parameters the stored encoding was produced by and compares in constant
// time. A malformed Argon2 encoding never verifies.
func Verify(salt, password, encoded string) bool {
	var h Hasher = SHA256Hasher{}
	if strings.HasPrefix(encoded, argon2Prefix) {
		a, ok := parseArgon2(encoded)
		if !ok {
			return false
		}
		h = a
	}
	candidate := h.Hash(salt, password)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(encoded)) == 1
}
