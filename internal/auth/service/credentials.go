package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
)

// credentialSize is the number of random bytes in secrets and tokens.
const credentialSize = 32

// randomCredential returns credentialSize random bytes, URL-safe base64 encoded.
func randomCredential() (string, error) {
	buf := make([]byte, credentialSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(buf), nil
}

type secretService struct {
	hasher *pwdhash.PasswordHasher
}

func (s *secretService) GenerateSecret() (string, string, error) {
	plain, err := randomCredential()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random secret")
	}

	hashed, err := s.HashSecret(plain)
	if err != nil {
		return "", "", err
	}
	return plain, hashed, nil
}

func (s *secretService) HashSecret(plainSecret string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plainSecret))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash secret")
	}
	return hashed, nil
}

func (s *secretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	ok, err := s.hasher.Verify([]byte(plainSecret), hashedSecret)
	return err == nil && ok
}

// NewSecretService returns a SecretService hashing with argon2id under the
// moderate pwdhash policy.
func NewSecretService() SecretService {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// only reachable with an invalid built-in policy
		panic(err)
	}
	return &secretService{hasher: hasher}
}

type tokenService struct{}

func (t *tokenService) GenerateToken() (string, string, error) {
	plain, err := randomCredential()
	if err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}
	return plain, t.HashToken(plain), nil
}

func (t *tokenService) HashToken(plainToken string) string {
	sum := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(sum[:])
}

// NewTokenService returns a TokenService using SHA-256 token hashes.
func NewTokenService() TokenService {
	return &tokenService{}
}
