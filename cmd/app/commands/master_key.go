package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
	cryptoService "github.com/newtonic3d/estimatevault/internal/crypto/service"
)

// RunCreateMasterKey generates a random 32-byte master secret and prints the
// environment variables that configure it.
//
// Without a KMS key URI the secret is printed as 64 hex characters. With one,
// the secret is wrapped by the KMS and only the base64 ciphertext is printed;
// the server unwraps it at startup. The raw key is zeroed before returning.
//
// Never use the localsecrets provider in production.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsProvider, kmsKeyURI string,
) error {
	if (kmsProvider == "") != (kmsKeyURI == "") {
		return fmt.Errorf("--kms-provider and --kms-key-uri must be set together")
	}

	masterKey := make([]byte, cryptoDomain.MasterSecretSize)
	if _, err := rand.Read(masterKey); err != nil {
		return fmt.Errorf("failed to generate master key: %w", err)
	}
	defer cryptoDomain.Zero(masterKey)

	_, _ = fmt.Fprintln(writer, "# Master Key Configuration")
	_, _ = fmt.Fprintln(writer, "# Copy these environment variables to your .env file or secrets manager")
	_, _ = fmt.Fprintln(writer)

	if kmsKeyURI == "" {
		logger.Info("generated plaintext master key")
		_, _ = fmt.Fprintf(writer, "ENCRYPTION_MASTER_KEY=\"%s\"\n", hex.EncodeToString(masterKey))
		return nil
	}

	wrapped, err := cryptoService.WrapMasterSecret(ctx, kmsService, masterKey, kmsKeyURI)
	if err != nil {
		return err
	}

	logger.Info("generated KMS-wrapped master key", slog.String("kms_provider", kmsProvider))
	_, _ = fmt.Fprintf(writer, "KMS_PROVIDER=\"%s\"\n", kmsProvider)
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_MASTER_KEY=\"%s\"\n", wrapped)
	return nil
}
