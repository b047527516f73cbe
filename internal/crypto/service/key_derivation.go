package service

import (
	"crypto/rand"
	"crypto/sha512"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
)

// PBKDF2Deriver derives AES-256 keys with PBKDF2-HMAC-SHA512.
type PBKDF2Deriver struct {
	iterations int
}

// NewPBKDF2Deriver creates a deriver using the default iteration count.
func NewPBKDF2Deriver() *PBKDF2Deriver {
	return &PBKDF2Deriver{iterations: cryptoDomain.PBKDF2Iterations}
}

// DeriveKey derives a KeySize-byte key from secret and salt.
//
// The caller owns the returned slice and should Zero it after use.
func (d *PBKDF2Deriver) DeriveKey(secret, salt []byte) ([]byte, error) {
	if len(secret) != cryptoDomain.MasterSecretSize {
		return nil, fmt.Errorf(
			"%w: secret must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.MasterSecretSize,
			len(secret),
		)
	}
	if len(salt) != cryptoDomain.SaltSize {
		return nil, fmt.Errorf(
			"%w: salt must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.SaltSize,
			len(salt),
		)
	}
	return pbkdf2.Key(secret, salt, d.iterations, cryptoDomain.KeySize, sha512.New), nil
}

// GenerateSalt returns SaltSize bytes from crypto/rand.
func GenerateSalt() ([]byte, error) {
	return randomBytes(cryptoDomain.SaltSize)
}

// GenerateNonce returns NonceSize bytes from crypto/rand.
func GenerateNonce() ([]byte, error) {
	return randomBytes(cryptoDomain.NonceSize)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}
