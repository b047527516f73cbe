// Package service provides the password-based envelope encryption used for
// confidential data at rest: PBKDF2-HMAC-SHA512 key derivation, AES-256-GCM
// with a 16-byte nonce, and the base64 blob format that carries both.
package service

import (
	"context"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with the given nonce and AAD. The returned
	// ciphertext and tag are separated.
	Encrypt(plaintext, nonce, aad []byte) (ciphertext, tag []byte, err error)

	// Decrypt verifies tag and decrypts ciphertext using the nonce and AAD.
	Decrypt(ciphertext, tag, nonce, aad []byte) ([]byte, error)
}

// KeyDeriver derives a symmetric key from a secret and a salt.
type KeyDeriver interface {
	DeriveKey(secret, salt []byte) ([]byte, error)
}

// Envelope encrypts and decrypts self-describing blobs under a master secret.
//
// Implementations are stateless and safe for concurrent use.
type Envelope interface {
	// Encrypt returns base64(salt || nonce || tag || ciphertext). The aad is
	// authenticated but not stored; the same aad must be passed to Decrypt.
	Encrypt(plaintext, aad []byte) (string, error)

	// Decrypt parses and authenticates a blob produced by Encrypt.
	Decrypt(blob string, aad []byte) ([]byte, error)
}

// KMSService opens keepers for wrapping and unwrapping the master secret.
type KMSService interface {
	// OpenKeeper opens a keeper for the KMS key at keyURI.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
