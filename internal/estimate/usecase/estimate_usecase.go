package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/newtonic3d/estimatevault/internal/database"
	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	estimateService "github.com/newtonic3d/estimatevault/internal/estimate/service"
	"github.com/newtonic3d/estimatevault/internal/validation"
)

// estimateUseCase implements the EstimateUseCase interface.
type estimateUseCase struct {
	txManager     database.TxManager
	quoteRepo     QuoteRepository
	fileTokenRepo FileTokenRepository
	adminChecker  AdminChecker
	vault         estimateService.EstimateVault
	signer        estimateService.Signer
	hasher        estimateService.SecureHasher
	calculator    estimateService.Calculator
	logger        *slog.Logger
}

// authorize enforces the caller checks shared by every admin operation.
func (e *estimateUseCase) authorize(ctx context.Context, callerID uuid.UUID) error {
	if callerID == uuid.Nil {
		return estimateDomain.ErrUnauthenticated
	}

	isAdmin, err := e.adminChecker.IsAdmin(ctx, callerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return estimateDomain.ErrDenied
		}
		return err
	}
	if !isAdmin {
		return estimateDomain.ErrDenied
	}
	return nil
}

// Seal encrypts and signs an estimate and stores it on the quote document.
func (e *estimateUseCase) Seal(
	ctx context.Context,
	callerID, quoteID uuid.UUID,
	input *estimateDomain.SealInput,
) (*estimateDomain.Quote, error) {
	if err := e.authorize(ctx, callerID); err != nil {
		return nil, err
	}

	estimate, err := e.resolveEstimate(input)
	if err != nil {
		return nil, err
	}

	blob, err := e.vault.EncryptInternalEstimate(*estimate)
	if err != nil {
		return nil, err
	}
	signature, err := e.signer.SignData(*estimate)
	if err != nil {
		return nil, err
	}

	var quote *estimateDomain.Quote
	err = e.txManager.WithTx(ctx, func(txCtx context.Context) error {
		now := time.Now().UTC()

		existing, err := e.quoteRepo.Get(txCtx, quoteID)
		switch {
		case errors.Is(err, estimateDomain.ErrQuoteNotFound):
			quote = &estimateDomain.Quote{ID: quoteID, CreatedAt: now}
		case err != nil:
			return err
		default:
			quote = existing
		}

		quote.EstimatedPrice = estimate.Price
		quote.EstimatedDays = estimate.TotalDays
		quote.InternalEstimates = blob
		quote.DataSignature = signature
		quote.SecurityLevel = estimateDomain.SecurityLevelEncrypted
		quote.LastCalculatedAt = &now
		quote.UpdatedAt = now

		return e.quoteRepo.Upsert(txCtx, quote)
	})
	if err != nil {
		return nil, err
	}

	return quote, nil
}

func (e *estimateUseCase) resolveEstimate(input *estimateDomain.SealInput) (*estimateDomain.InternalEstimate, error) {
	switch {
	case input == nil || (input.Estimate == nil && input.Calculation == nil):
		return nil, fmt.Errorf("%w: estimate or calculation is required", estimateDomain.ErrInvalidEstimate)
	case input.Estimate != nil:
		if err := input.Estimate.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", estimateDomain.ErrInvalidEstimate, err)
		}
		estimate := *input.Estimate
		return &estimate, nil
	default:
		estimate, err := e.calculator.Calculate(*input.Calculation)
		if err != nil {
			return nil, err
		}
		return &estimate, nil
	}
}

// Decrypt runs the retrieval flow: authenticate, authorize, load, decrypt,
// then verify the signature when one is stored.
func (e *estimateUseCase) Decrypt(
	ctx context.Context,
	callerID, quoteID uuid.UUID,
) (*estimateDomain.RetrievalResult, error) {
	if err := e.authorize(ctx, callerID); err != nil {
		return nil, err
	}

	quote, err := e.quoteRepo.Get(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.HasEncryptedEstimate() {
		return nil, estimateDomain.ErrNoEncryptedEstimate
	}

	decrypted, err := e.vault.DecryptInternalEstimate(quote.InternalEstimates)
	if err != nil {
		e.logTamper(err, "estimate", quoteID, callerID)
		return nil, err
	}

	result := &estimateDomain.RetrievalResult{
		Estimate:         decrypted.Estimate,
		SecurityLevel:    quote.SecurityLevel,
		LastCalculatedAt: quote.LastCalculatedAt,
		Warnings:         append([]string{}, decrypted.Warnings...),
	}

	if quote.DataSignature == "" {
		result.Warnings = append(result.Warnings, estimateDomain.WarningNoIntegrityVerification)
		return result, nil
	}

	if !e.signer.ValidateDataIntegrity(decrypted.Estimate, quote.DataSignature) {
		err := fmt.Errorf("%w: signature mismatch", estimateDomain.ErrIntegrityCheckFailed)
		e.logTamper(err, "estimate", quoteID, callerID)
		return nil, err
	}

	result.Verified = true
	return result, nil
}

// Calculate runs the cost model for an administrator.
func (e *estimateUseCase) Calculate(
	ctx context.Context,
	callerID uuid.UUID,
	input *estimateDomain.CalculationInput,
) (*estimateDomain.InternalEstimate, error) {
	if err := e.authorize(ctx, callerID); err != nil {
		return nil, err
	}
	if input == nil {
		return nil, fmt.Errorf("%w: calculation is required", estimateDomain.ErrInvalidEstimate)
	}

	estimate, err := e.calculator.Calculate(*input)
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// IssueFileReference seals a descriptor for an existing quote and stores the
// hash of a secure token paired with it.
func (e *estimateUseCase) IssueFileReference(
	ctx context.Context,
	callerID uuid.UUID,
	descriptor *estimateDomain.FileDescriptor,
) (*estimateDomain.IssuedFileReference, error) {
	if err := e.authorize(ctx, callerID); err != nil {
		return nil, err
	}
	if descriptor == nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "file descriptor is required")
	}
	if err := descriptor.Validate(); err != nil {
		return nil, validation.WrapValidationError(err)
	}

	if _, err := e.quoteRepo.Get(ctx, descriptor.QuoteID); err != nil {
		return nil, err
	}

	blob, ref, err := e.vault.EncryptFileReference(*descriptor)
	if err != nil {
		return nil, err
	}

	token := e.hasher.GenerateSecureHash(strings.Join([]string{
		descriptor.QuoteID.String(),
		descriptor.OriginalName,
		callerID.String(),
		ref.Nonce,
	}, "|"))

	accessToken := &estimateDomain.FileAccessToken{
		ID:            uuid.Must(uuid.NewV7()),
		TokenHash:     e.hasher.HashToken(token),
		ReferenceHash: e.hasher.HashToken(ref.Nonce),
		QuoteID:       descriptor.QuoteID,
		ExpiresAt:     ref.ExpiresAtTime(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := e.fileTokenRepo.Create(ctx, accessToken); err != nil {
		return nil, err
	}

	return &estimateDomain.IssuedFileReference{
		Reference: blob,
		Token:     token,
		ExpiresAt: accessToken.ExpiresAt,
	}, nil
}

// ResolveFileReference opens a reference and checks that token was issued
// together with that exact reference and has not expired.
func (e *estimateUseCase) ResolveFileReference(
	ctx context.Context,
	reference, token string,
) (*estimateDomain.FileReference, error) {
	if strings.TrimSpace(token) == "" {
		return nil, estimateDomain.ErrFileTokenInvalid
	}

	ref, err := e.vault.DecryptFileReference(reference)
	if err != nil {
		e.logTamper(err, "file_reference", uuid.Nil, uuid.Nil)
		return nil, err
	}

	accessToken, err := e.fileTokenRepo.GetByTokenHash(ctx, e.hasher.HashToken(token))
	if err != nil {
		if errors.Is(err, estimateDomain.ErrFileTokenNotFound) {
			return nil, estimateDomain.ErrFileTokenInvalid
		}
		return nil, err
	}

	if !accessToken.ExpiresAt.After(time.Now().UTC()) || accessToken.QuoteID != ref.QuoteID {
		return nil, estimateDomain.ErrFileTokenInvalid
	}
	referenceHash := e.hasher.HashToken(ref.Nonce)
	if subtle.ConstantTimeCompare([]byte(accessToken.ReferenceHash), []byte(referenceHash)) != 1 {
		return nil, estimateDomain.ErrFileTokenInvalid
	}

	return ref, nil
}

// CleanExpiredFileTokens deletes file tokens that expired more than the given
// number of days ago. Use dryRun=true to preview the count without deletion.
func (e *estimateUseCase) CleanExpiredFileTokens(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be non-negative")
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		return e.fileTokenRepo.CountExpired(ctx, cutoff)
	}
	return e.fileTokenRepo.DeleteExpired(ctx, cutoff)
}

// logTamper records integrity failures as security events. Other errors are
// left to the caller.
func (e *estimateUseCase) logTamper(err error, object string, quoteID, callerID uuid.UUID) {
	if e.logger == nil || !errors.Is(err, apperrors.ErrIntegrity) {
		return
	}

	attrs := []any{
		slog.String("security_event", "possible_tamper"),
		slog.String("object", object),
		slog.Any("error", err),
	}
	if quoteID != uuid.Nil {
		attrs = append(attrs, slog.String("quote_id", quoteID.String()))
	}
	if callerID != uuid.Nil {
		attrs = append(attrs, slog.String("caller_id", callerID.String()))
	}

	e.logger.Error("integrity verification failed", attrs...)
}

// NewEstimateUseCase creates a new EstimateUseCase with injected dependencies.
func NewEstimateUseCase(
	txManager database.TxManager,
	quoteRepo QuoteRepository,
	fileTokenRepo FileTokenRepository,
	adminChecker AdminChecker,
	vault estimateService.EstimateVault,
	signer estimateService.Signer,
	hasher estimateService.SecureHasher,
	calculator estimateService.Calculator,
	logger *slog.Logger,
) EstimateUseCase {
	return &estimateUseCase{
		txManager:     txManager,
		quoteRepo:     quoteRepo,
		fileTokenRepo: fileTokenRepo,
		adminChecker:  adminChecker,
		vault:         vault,
		signer:        signer,
		hasher:        hasher,
		calculator:    calculator,
		logger:        logger,
	}
}
