package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
	cryptoService "github.com/newtonic3d/estimatevault/internal/crypto/service"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
)

const masterSecretLoadTimeout = 30 * time.Second

type cryptoComponents struct {
	kmsService   lazy[cryptoService.KMSService]
	masterSecret lazy[*cryptoDomain.MasterSecret]
	envelope     lazy[cryptoService.Envelope]
}

// KMSService returns the KMS service used to wrap and unwrap the master secret.
func (c *Container) KMSService() cryptoService.KMSService {
	svc, _ := c.kmsService.get(func() (cryptoService.KMSService, error) {
		return cryptoService.NewKMSService(), nil
	})
	return svc
}

// MasterSecret returns the decoded master secret. When KMS_KEY_URI is set,
// ENCRYPTION_MASTER_KEY holds a KMS ciphertext that is unwrapped here.
//
// The error wraps ErrUnavailable when the key is missing or invalid.
func (c *Container) MasterSecret() (*cryptoDomain.MasterSecret, error) {
	return c.masterSecret.get(func() (*cryptoDomain.MasterSecret, error) {
		ctx, cancel := context.WithTimeout(context.Background(), masterSecretLoadTimeout)
		defer cancel()

		secret, err := cryptoService.LoadMasterSecret(
			ctx,
			c.KMSService(),
			c.config.EncryptionMasterKey,
			c.config.KMSKeyURI,
		)
		if err != nil {
			return nil, err
		}
		c.onShutdown("master secret", func(context.Context) error {
			secret.Close()
			return nil
		})
		return secret, nil
	})
}

// Envelope returns the password-based AES-GCM envelope keyed by the master secret.
func (c *Container) Envelope() (cryptoService.Envelope, error) {
	return c.envelope.get(func() (cryptoService.Envelope, error) {
		secret, err := c.MasterSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to load master secret: %w", err)
		}
		return cryptoService.NewPasswordEnvelope(secret, cryptoService.NewPBKDF2Deriver()), nil
	})
}

// isVaultUnavailable reports whether err means the master secret could not be loaded.
func isVaultUnavailable(err error) bool {
	return errors.Is(err, apperrors.ErrUnavailable)
}
