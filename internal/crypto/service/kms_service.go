package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// LoadMasterSecret resolves the configured master key value.
//
// With an empty keyURI the value is the 64-character hex secret. Otherwise it
// is the standard base64 KMS ciphertext of the raw 32-byte secret, unwrapped
// through the keeper opened at keyURI. The unwrapped plaintext is zeroed once
// copied into the MasterSecret.
func LoadMasterSecret(
	ctx context.Context,
	kms KMSService,
	value, keyURI string,
) (*cryptoDomain.MasterSecret, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, cryptoDomain.ErrMasterKeyNotSet
	}
	if keyURI == "" {
		return cryptoDomain.ParseMasterSecretHex(value)
	}

	wrapped, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: KMS ciphertext is not valid base64", cryptoDomain.ErrInvalidMasterKey)
	}

	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidMasterKey, err)
	}
	defer func() {
		_ = keeper.Close()
	}()

	raw, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to unwrap with KMS: %v", cryptoDomain.ErrInvalidMasterKey, err)
	}
	defer cryptoDomain.Zero(raw)

	return cryptoDomain.NewMasterSecret(raw)
}

// WrapMasterSecret encrypts raw with the keeper at keyURI and returns the
// base64 ciphertext suitable for ENCRYPTION_MASTER_KEY.
func WrapMasterSecret(ctx context.Context, kms KMSService, raw []byte, keyURI string) (string, error) {
	keeper, err := kms.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	wrapped, err := keeper.Encrypt(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("failed to wrap master key with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(wrapped), nil
}
