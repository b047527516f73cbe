package service

import (
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
	cryptoService "github.com/newtonic3d/estimatevault/internal/crypto/service"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestVault(t *testing.T) (*estimateVault, cryptoService.Envelope, *testClock) {
	t.Helper()
	envelope := cryptoService.NewPasswordEnvelope(newTestSecret(t, 0x42), cryptoService.NewPBKDF2Deriver())
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	vault := NewEstimateVault(envelope, 0, 0).(*estimateVault)
	vault.now = clock.Now
	return vault, envelope, clock
}

func TestEstimateVault_InternalEstimate(t *testing.T) {
	vault, envelope, clock := newTestVault(t)
	estimate := sampleEstimate()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		blob, err := vault.EncryptInternalEstimate(estimate)
		require.NoError(t, err)

		decrypted, err := vault.DecryptInternalEstimate(blob)
		require.NoError(t, err)
		assert.Equal(t, estimate, decrypted.Estimate)
		assert.Equal(t, estimateDomain.PayloadVersion, decrypted.Version)
		assert.Equal(t, clock.now, decrypted.SealedAt)
		assert.False(t, decrypted.Stale)
		assert.Empty(t, decrypted.Warnings)
	})

	t.Run("Success_NonDeterministic", func(t *testing.T) {
		first, err := vault.EncryptInternalEstimate(estimate)
		require.NoError(t, err)
		second, err := vault.EncryptInternalEstimate(estimate)
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Success_StaleIsWarningOnly", func(t *testing.T) {
		blob, err := vault.EncryptInternalEstimate(estimate)
		require.NoError(t, err)

		sealedAt := clock.now
		clock.now = sealedAt.Add(25 * time.Hour)
		defer func() { clock.now = sealedAt }()

		decrypted, err := vault.DecryptInternalEstimate(blob)
		require.NoError(t, err)
		assert.Equal(t, estimate, decrypted.Estimate)
		assert.True(t, decrypted.Stale)
		assert.Contains(t, decrypted.Warnings, estimateDomain.WarningStaleEstimate)
	})

	t.Run("Error_ChecksumMismatch", func(t *testing.T) {
		payload, err := json.Marshal(estimateDomain.SealedEstimate{
			InternalEstimate: estimate,
			Timestamp:        clock.now.UnixMilli(),
			Version:          estimateDomain.PayloadVersion,
			Checksum:         "0000000000000000000000000000000000000000000000000000000000000000",
		})
		require.NoError(t, err)
		blob, err := envelope.Encrypt(payload, []byte(estimateDomain.EstimateAAD))
		require.NoError(t, err)

		decrypted, err := vault.DecryptInternalEstimate(blob)
		assert.Nil(t, decrypted)
		assert.ErrorIs(t, err, estimateDomain.ErrIntegrityCheckFailed)
		assert.ErrorIs(t, err, apperrors.ErrIntegrity)
	})

	t.Run("Error_FieldChangedAfterChecksum", func(t *testing.T) {
		checksum, err := estimate.Checksum()
		require.NoError(t, err)
		changed := estimate
		changed.Price = 1

		payload, err := json.Marshal(estimateDomain.SealedEstimate{
			InternalEstimate: changed,
			Timestamp:        clock.now.UnixMilli(),
			Version:          estimateDomain.PayloadVersion,
			Checksum:         checksum,
		})
		require.NoError(t, err)
		blob, err := envelope.Encrypt(payload, []byte(estimateDomain.EstimateAAD))
		require.NoError(t, err)

		_, err = vault.DecryptInternalEstimate(blob)
		assert.ErrorIs(t, err, estimateDomain.ErrIntegrityCheckFailed)
	})

	t.Run("Error_TamperedBlob", func(t *testing.T) {
		blob, err := vault.EncryptInternalEstimate(estimate)
		require.NoError(t, err)

		raw, _ := base64.StdEncoding.DecodeString(blob)
		raw[len(raw)-1] ^= 0x01

		_, err = vault.DecryptInternalEstimate(base64.StdEncoding.EncodeToString(raw))
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})

	t.Run("Error_Malformed", func(t *testing.T) {
		_, err := vault.DecryptInternalEstimate("c2hvcnQ=")
		assert.ErrorIs(t, err, cryptoDomain.ErrMalformedBlob)
	})
}

func TestEstimateVault_FileReference(t *testing.T) {
	vault, _, clock := newTestVault(t)
	descriptor := estimateDomain.FileDescriptor{
		StoragePath:  "quotes/abc/model.stl",
		OriginalName: "model.stl",
		QuoteID:      uuid.Must(uuid.NewV7()),
	}

	t.Run("Success_RoundTrip", func(t *testing.T) {
		blob, ref, err := vault.EncryptFileReference(descriptor)
		require.NoError(t, err)
		assert.Len(t, ref.Nonce, 32)
		assert.Equal(t, clock.now.Add(2*time.Hour).UnixMilli(), ref.ExpiresAt)

		decrypted, err := vault.DecryptFileReference(blob)
		require.NoError(t, err)
		assert.Equal(t, ref, decrypted)
		assert.Equal(t, descriptor.QuoteID, decrypted.QuoteID)
	})

	t.Run("Success_UniqueNonce", func(t *testing.T) {
		_, first, err := vault.EncryptFileReference(descriptor)
		require.NoError(t, err)
		_, second, err := vault.EncryptFileReference(descriptor)
		require.NoError(t, err)
		assert.NotEqual(t, first.Nonce, second.Nonce)
	})

	t.Run("Error_Expired", func(t *testing.T) {
		blob, _, err := vault.EncryptFileReference(descriptor)
		require.NoError(t, err)

		issuedAt := clock.now
		clock.now = issuedAt.Add(2*time.Hour + time.Millisecond)
		defer func() { clock.now = issuedAt }()

		ref, err := vault.DecryptFileReference(blob)
		assert.Nil(t, ref)
		assert.ErrorIs(t, err, estimateDomain.ErrReferenceExpired)
		assert.ErrorIs(t, err, apperrors.ErrExpired)
	})

	t.Run("Error_ExpiresExactlyNow", func(t *testing.T) {
		blob, _, err := vault.EncryptFileReference(descriptor)
		require.NoError(t, err)

		issuedAt := clock.now
		clock.now = issuedAt.Add(2 * time.Hour)
		defer func() { clock.now = issuedAt }()

		_, err = vault.DecryptFileReference(blob)
		assert.ErrorIs(t, err, estimateDomain.ErrReferenceExpired)
	})

	t.Run("Error_PurposeBinding", func(t *testing.T) {
		refBlob, _, err := vault.EncryptFileReference(descriptor)
		require.NoError(t, err)
		_, err = vault.DecryptInternalEstimate(refBlob)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)

		estimateBlob, err := vault.EncryptInternalEstimate(sampleEstimate())
		require.NoError(t, err)
		_, err = vault.DecryptFileReference(estimateBlob)
		assert.ErrorIs(t, err, cryptoDomain.ErrAuthenticationFailed)
	})
}
