package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	cryptoService "github.com/newtonic3d/estimatevault/internal/crypto/service"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

type estimateVault struct {
	envelope        cryptoService.Envelope
	freshnessWindow time.Duration
	referenceTTL    time.Duration
	now             func() time.Time
}

// NewEstimateVault creates an EstimateVault over envelope. Zero durations fall
// back to the 24 hour freshness window and the 2 hour reference lifetime.
func NewEstimateVault(
	envelope cryptoService.Envelope,
	freshnessWindow time.Duration,
	referenceTTL time.Duration,
) EstimateVault {
	if freshnessWindow <= 0 {
		freshnessWindow = estimateDomain.DefaultFreshnessWindow
	}
	if referenceTTL <= 0 {
		referenceTTL = estimateDomain.DefaultFileReferenceTTL
	}
	return &estimateVault{
		envelope:        envelope,
		freshnessWindow: freshnessWindow,
		referenceTTL:    referenceTTL,
		now:             time.Now,
	}
}

func (v *estimateVault) EncryptInternalEstimate(estimate estimateDomain.InternalEstimate) (string, error) {
	checksum, err := estimate.Checksum()
	if err != nil {
		return "", fmt.Errorf("failed to compute checksum: %w", err)
	}

	payload, err := json.Marshal(estimateDomain.SealedEstimate{
		InternalEstimate: estimate,
		Timestamp:        v.now().UnixMilli(),
		Version:          estimateDomain.PayloadVersion,
		Checksum:         checksum,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sealed estimate: %w", err)
	}

	return v.envelope.Encrypt(payload, []byte(estimateDomain.EstimateAAD))
}

func (v *estimateVault) DecryptInternalEstimate(blob string) (*estimateDomain.DecryptedEstimate, error) {
	plaintext, err := v.envelope.Decrypt(blob, []byte(estimateDomain.EstimateAAD))
	if err != nil {
		return nil, err
	}

	var sealed estimateDomain.SealedEstimate
	if err := json.Unmarshal(plaintext, &sealed); err != nil {
		return nil, fmt.Errorf("%w: payload is not a sealed estimate", estimateDomain.ErrIntegrityCheckFailed)
	}

	checksum, err := sealed.InternalEstimate.Checksum()
	if err != nil {
		return nil, fmt.Errorf("failed to compute checksum: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(checksum), []byte(sealed.Checksum)) != 1 {
		return nil, fmt.Errorf("%w: checksum mismatch", estimateDomain.ErrIntegrityCheckFailed)
	}

	result := &estimateDomain.DecryptedEstimate{
		Estimate: sealed.InternalEstimate,
		SealedAt: time.UnixMilli(sealed.Timestamp).UTC(),
		Version:  sealed.Version,
	}
	if v.now().Sub(result.SealedAt) > v.freshnessWindow {
		result.Stale = true
		result.Warnings = append(result.Warnings, estimateDomain.WarningStaleEstimate)
	}

	return result, nil
}

func (v *estimateVault) EncryptFileReference(
	descriptor estimateDomain.FileDescriptor,
) (string, *estimateDomain.FileReference, error) {
	nonce := make([]byte, estimateDomain.ReferenceNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", nil, fmt.Errorf("failed to generate reference nonce: %w", err)
	}

	ref := &estimateDomain.FileReference{
		StoragePath:  descriptor.StoragePath,
		OriginalName: descriptor.OriginalName,
		QuoteID:      descriptor.QuoteID,
		ExpiresAt:    v.now().Add(v.referenceTTL).UnixMilli(),
		Nonce:        hex.EncodeToString(nonce),
	}

	payload, err := json.Marshal(ref)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal file reference: %w", err)
	}

	blob, err := v.envelope.Encrypt(payload, []byte(estimateDomain.FileReferenceAAD))
	if err != nil {
		return "", nil, err
	}
	return blob, ref, nil
}

func (v *estimateVault) DecryptFileReference(blob string) (*estimateDomain.FileReference, error) {
	plaintext, err := v.envelope.Decrypt(blob, []byte(estimateDomain.FileReferenceAAD))
	if err != nil {
		return nil, err
	}

	var ref estimateDomain.FileReference
	if err := json.Unmarshal(plaintext, &ref); err != nil {
		return nil, fmt.Errorf("%w: payload is not a file reference", estimateDomain.ErrIntegrityCheckFailed)
	}

	if ref.Expired(v.now()) {
		return nil, estimateDomain.ErrReferenceExpired
	}
	return &ref, nil
}
