package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/AlibekovAA/task-manager/internal/common/constants"
)

var ErrEmptySalt = errors.New("salt cannot be empty")

type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(password string, salt string) (string, error)
}

type Argon2Hasher struct{}

func NewArgon2Hasher() *Argon2Hasher {
	return &Argon2Hasher{}
}

func (h *Argon2Hasher) GenerateSalt() (string, error) {
	b := make([]byte, constants.SaltSizeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return base64.RawStdEncoding.EncodeToString(b), nil
}

// Hash is deterministic for a given password and salt.
func (h *Argon2Hasher) Hash(password string, salt string) (string, error) {
	if salt == "" {
		return "", ErrEmptySalt
	}
	key := argon2.IDKey(
		[]byte(password),
		[]byte(salt),
		constants.Argon2Time,
		constants.Argon2MemoryKiB,
		constants.Argon2Threads,
		constants.Argon2KeyLength,
	)
	return base64.RawStdEncoding.EncodeToString(key), nil
}

func EqualHashes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
