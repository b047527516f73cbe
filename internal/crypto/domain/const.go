package domain

// Envelope layout and key-derivation parameters.
//
// An encrypted blob is the base64 encoding of
//
//	salt (32) || nonce (16) || tag (16) || ciphertext (n)
//
// Every encryption draws a fresh salt, which yields a fresh derived key, and an
// independently random nonce.
const (
	// MasterSecretSize is the required length of the decoded master secret.
	MasterSecretSize = 32

	// KeySize is the length of the AES-256 key produced by key derivation.
	KeySize = 32

	// SaltSize is the length of the random PBKDF2 salt stored with each blob.
	SaltSize = 32

	// NonceSize is the length of the GCM nonce (IV) stored with each blob.
	NonceSize = 16

	// TagSize is the length of the GCM authentication tag.
	TagSize = 16

	// HeaderSize is the fixed prefix of every blob; shorter blobs are malformed.
	HeaderSize = SaltSize + NonceSize + TagSize

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA512 work factor.
	PBKDF2Iterations = 100000
)
