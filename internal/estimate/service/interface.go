// Package service provides the domain envelopes of the estimate vault: sealing
// and opening internal estimates and file references, HMAC signing, secure
// token hashing, and the quote cost model.
package service

import (
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// EstimateVault seals and opens estimate and file reference blobs.
type EstimateVault interface {
	// EncryptInternalEstimate seals the estimate together with a timestamp,
	// version and checksum.
	EncryptInternalEstimate(estimate estimateDomain.InternalEstimate) (string, error)

	// DecryptInternalEstimate opens a blob and re-verifies its checksum. A
	// mismatch fails with ErrIntegrityCheckFailed; an estimate older than the
	// freshness window is returned with Stale set and a warning.
	DecryptInternalEstimate(blob string) (*estimateDomain.DecryptedEstimate, error)

	// EncryptFileReference seals a descriptor with an expiry and random nonce.
	EncryptFileReference(
		descriptor estimateDomain.FileDescriptor,
	) (string, *estimateDomain.FileReference, error)

	// DecryptFileReference opens a reference blob and rejects it once expired.
	DecryptFileReference(blob string) (*estimateDomain.FileReference, error)
}

// Signer computes and verifies HMAC signatures over estimates.
type Signer interface {
	// SignData returns the hex HMAC-SHA256 of the canonical estimate.
	SignData(estimate estimateDomain.InternalEstimate) (string, error)

	// ValidateDataIntegrity reports whether signature matches the estimate. The
	// comparison runs in constant time for any signature input.
	ValidateDataIntegrity(estimate estimateDomain.InternalEstimate, signature string) bool
}

// SecureHasher derives opaque tokens and their storage hashes.
type SecureHasher interface {
	// GenerateSecureHash returns the hex SHA-256 of input followed by the
	// current Unix millisecond timestamp.
	GenerateSecureHash(input string) string

	// HashToken returns the hex SHA-256 under which a token is stored.
	HashToken(token string) string
}

// Calculator computes internal estimates from print parameters.
type Calculator interface {
	Calculate(input estimateDomain.CalculationInput) (estimateDomain.InternalEstimate, error)
}
