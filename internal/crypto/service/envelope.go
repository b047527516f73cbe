package service

import (
	"encoding/base64"
	"fmt"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
)

// PasswordEnvelope implements Envelope on top of a master secret.
//
// Each Encrypt call draws a fresh salt and nonce, derives a per-blob key with
// the KeyDeriver, and zeroes the derived key once the cipher is done with it.
type PasswordEnvelope struct {
	secret  *cryptoDomain.MasterSecret
	deriver KeyDeriver
}

// NewPasswordEnvelope creates an Envelope bound to secret.
func NewPasswordEnvelope(secret *cryptoDomain.MasterSecret, deriver KeyDeriver) *PasswordEnvelope {
	return &PasswordEnvelope{secret: secret, deriver: deriver}
}

// Encrypt produces base64(salt || nonce || tag || ciphertext).
//
// Two calls with the same plaintext produce different blobs. Any failure is
// reported as ErrEncryptionFailed and no partial output is returned.
func (e *PasswordEnvelope) Encrypt(plaintext, aad []byte) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}
	nonce, err := GenerateNonce()
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	aead, err := e.cipherFor(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	ciphertext, tag, err := aead.Encrypt(plaintext, nonce, aad)
	if err != nil {
		return "", fmt.Errorf("%w: %v", cryptoDomain.ErrEncryptionFailed, err)
	}

	blob := make([]byte, 0, cryptoDomain.HeaderSize+len(ciphertext))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt parses a blob and returns its plaintext.
//
// Returns:
//   - ErrMalformedBlob if the blob is not base64 or is shorter than the header
//   - ErrAuthenticationFailed if any byte of the blob or the aad was altered
func (e *PasswordEnvelope) Decrypt(blob string, aad []byte) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, cryptoDomain.ErrMalformedBlob
	}
	if len(raw) < cryptoDomain.HeaderSize {
		return nil, fmt.Errorf(
			"%w: %d bytes, need at least %d",
			cryptoDomain.ErrMalformedBlob,
			len(raw),
			cryptoDomain.HeaderSize,
		)
	}

	salt := raw[:cryptoDomain.SaltSize]
	nonce := raw[cryptoDomain.SaltSize : cryptoDomain.SaltSize+cryptoDomain.NonceSize]
	tag := raw[cryptoDomain.SaltSize+cryptoDomain.NonceSize : cryptoDomain.HeaderSize]
	ciphertext := raw[cryptoDomain.HeaderSize:]

	aead, err := e.cipherFor(salt)
	if err != nil {
		return nil, err
	}

	return aead.Decrypt(ciphertext, tag, nonce, aad)
}

func (e *PasswordEnvelope) cipherFor(salt []byte) (*AESGCMCipher, error) {
	secret := e.secret.Bytes()
	defer cryptoDomain.Zero(secret)

	key, err := e.deriver.DeriveKey(secret, salt)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	return NewAESGCM(key)
}
