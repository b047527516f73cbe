// Package domain defines the confidential estimate models, file references and
// the errors of the estimate vault.
package domain

import (
	"github.com/newtonic3d/estimatevault/internal/errors"
)

// Estimate vault error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// so the HTTP layer maps them without knowing the estimate domain.
var (
	// ErrIntegrityCheckFailed indicates a checksum or signature mismatch after a
	// successful decryption. It is the highest severity failure and is never
	// downgraded to a warning.
	ErrIntegrityCheckFailed = errors.Wrap(errors.ErrIntegrity, "integrity check failed")

	// ErrReferenceExpired indicates a file reference is past its expiry.
	ErrReferenceExpired = errors.Wrap(errors.ErrExpired, "file reference expired")

	// ErrUnauthenticated indicates no caller identity accompanied the request.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrDenied indicates the caller is not an administrator.
	ErrDenied = errors.Wrap(errors.ErrForbidden, "admin access required")

	// ErrQuoteNotFound indicates no quote document exists with the given id.
	ErrQuoteNotFound = errors.Wrap(errors.ErrNotFound, "quote not found")

	// ErrNoEncryptedEstimate indicates the quote exists but carries no sealed estimate.
	ErrNoEncryptedEstimate = errors.Wrap(errors.ErrNotFound, "no encrypted estimate")

	// ErrFileTokenInvalid indicates the secure token is unknown, expired, or bound
	// to a different quote than the reference.
	ErrFileTokenInvalid = errors.Wrap(errors.ErrForbidden, "invalid file access token")

	// ErrInvalidEstimate indicates an estimate or calculation input failed validation.
	ErrInvalidEstimate = errors.Wrap(errors.ErrInvalidInput, "invalid estimate")

	// ErrFileTokenNotFound indicates no stored token matches a hash.
	ErrFileTokenNotFound = errors.Wrap(errors.ErrNotFound, "file access token not found")
)
