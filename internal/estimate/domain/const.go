package domain

import "time"

const (
	// EstimateAAD binds estimate blobs to their purpose.
	EstimateAAD = "NewTonic3D-Internal-Data"

	// FileReferenceAAD binds file reference blobs to their purpose.
	FileReferenceAAD = "NewTonic3D-File-Reference"

	// PayloadVersion is the format version written into every sealed estimate.
	PayloadVersion = "1.0"

	// SecurityLevelEncrypted marks a quote whose estimate is sealed.
	SecurityLevelEncrypted = "encrypted"

	// DefaultFreshnessWindow is the age after which a decrypted estimate is flagged stale.
	DefaultFreshnessWindow = 24 * time.Hour

	// DefaultFileReferenceTTL is the validity window of a file reference.
	DefaultFileReferenceTTL = 2 * time.Hour

	// ReferenceNonceSize is the number of random bytes in a reference nonce (32 hex chars).
	ReferenceNonceSize = 16
)

// Warnings attached to otherwise successful results.
const (
	WarningNoIntegrityVerification = "no integrity verification available"
	WarningStaleEstimate           = "estimate is older than the freshness window"
)
