// Package service generates and verifies client credentials: argon2id-hashed
// client secrets and SHA-256-hashed bearer tokens.
package service

// SecretService generates and verifies client secrets.
type SecretService interface {
	// GenerateSecret returns a new plain secret and its hash. The plain secret
	// is shown once to the operator who created the client.
	GenerateSecret() (plainSecret string, hashedSecret string, err error)

	HashSecret(plainSecret string) (hashedSecret string, err error)

	// CompareSecret reports whether plainSecret matches hashedSecret in constant time.
	CompareSecret(plainSecret string, hashedSecret string) bool
}

// TokenService generates bearer tokens and hashes them for lookup.
type TokenService interface {
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the hex SHA-256 of a plain token.
	HashToken(plainToken string) string
}
