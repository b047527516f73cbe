package service

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
)

// AESGCMCipher implements the AEAD interface using AES-256-GCM with a 16-byte
// nonce and a detached 16-byte authentication tag.
//
// Go's GCM appends the tag to the ciphertext on Seal; this type splits it off
// so the envelope can store the tag ahead of the ciphertext.
//
// Thread safety:
//
//	The cipher instance is stateless and safe for concurrent use from multiple
//	goroutines. Nonces are supplied by the caller and must never repeat for
//	the same key.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits).
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, fmt.Errorf(
			"%w: key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.KeySize,
			len(key),
		)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals plaintext and returns the ciphertext and tag separately.
func (a *AESGCMCipher) Encrypt(plaintext, nonce, aad []byte) (ciphertext, tag []byte, err error) {
	if len(nonce) != a.aead.NonceSize() {
		return nil, nil, fmt.Errorf("invalid nonce size: %d", len(nonce))
	}

	sealed := a.aead.Seal(nil, nonce, plaintext, aad)
	split := len(sealed) - a.aead.Overhead()
	return sealed[:split], sealed[split:], nil
}

// Decrypt verifies tag over ciphertext, nonce and aad and returns the plaintext.
//
// Any verification failure is reported as ErrAuthenticationFailed without
// detail; no plaintext is returned.
func (a *AESGCMCipher) Decrypt(ciphertext, tag, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != a.aead.NonceSize() || len(tag) != a.aead.Overhead() {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := a.aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}
	return plaintext, nil
}
