package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/newtonic3d/estimatevault/internal/errors"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	"github.com/newtonic3d/estimatevault/internal/metrics"
)

const metricsDomain = "estimates"

// estimateUseCaseWithMetrics decorates EstimateUseCase with metrics instrumentation.
type estimateUseCaseWithMetrics struct {
	next    EstimateUseCase
	metrics metrics.BusinessMetrics
}

// NewEstimateUseCaseWithMetrics wraps an EstimateUseCase with metrics recording.
func NewEstimateUseCaseWithMetrics(useCase EstimateUseCase, m metrics.BusinessMetrics) EstimateUseCase {
	return &estimateUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram. Integrity
// failures get their own status and are also counted as security events.
func (e *estimateUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	switch {
	case errors.Is(err, apperrors.ErrIntegrity):
		status = "integrity_violation"
	case err != nil:
		status = "error"
	}

	e.metrics.RecordOperation(ctx, metricsDomain, operation, status)
	e.metrics.RecordDuration(ctx, metricsDomain, operation, time.Since(start), status)
	if status == "integrity_violation" {
		e.metrics.RecordSecurityEvent(ctx, metricsDomain, operation, "possible_tamper")
	}
}

// Seal records metrics for estimate sealing.
func (e *estimateUseCaseWithMetrics) Seal(
	ctx context.Context,
	callerID, quoteID uuid.UUID,
	input *estimateDomain.SealInput,
) (*estimateDomain.Quote, error) {
	start := time.Now()
	quote, err := e.next.Seal(ctx, callerID, quoteID, input)
	e.record(ctx, "estimate_seal", start, err)
	return quote, err
}

// Decrypt records metrics for estimate retrieval.
func (e *estimateUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	callerID, quoteID uuid.UUID,
) (*estimateDomain.RetrievalResult, error) {
	start := time.Now()
	result, err := e.next.Decrypt(ctx, callerID, quoteID)
	e.record(ctx, "estimate_decrypt", start, err)
	return result, err
}

// Calculate records metrics for estimate calculation.
func (e *estimateUseCaseWithMetrics) Calculate(
	ctx context.Context,
	callerID uuid.UUID,
	input *estimateDomain.CalculationInput,
) (*estimateDomain.InternalEstimate, error) {
	start := time.Now()
	estimate, err := e.next.Calculate(ctx, callerID, input)
	e.record(ctx, "estimate_calculate", start, err)
	return estimate, err
}

// IssueFileReference records metrics for file reference issuance.
func (e *estimateUseCaseWithMetrics) IssueFileReference(
	ctx context.Context,
	callerID uuid.UUID,
	descriptor *estimateDomain.FileDescriptor,
) (*estimateDomain.IssuedFileReference, error) {
	start := time.Now()
	issued, err := e.next.IssueFileReference(ctx, callerID, descriptor)
	e.record(ctx, "file_reference_issue", start, err)
	return issued, err
}

// ResolveFileReference records metrics for file reference resolution.
func (e *estimateUseCaseWithMetrics) ResolveFileReference(
	ctx context.Context,
	reference, token string,
) (*estimateDomain.FileReference, error) {
	start := time.Now()
	ref, err := e.next.ResolveFileReference(ctx, reference, token)
	e.record(ctx, "file_reference_resolve", start, err)
	return ref, err
}

// CleanExpiredFileTokens records metrics for file token cleanup.
func (e *estimateUseCaseWithMetrics) CleanExpiredFileTokens(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	count, err := e.next.CleanExpiredFileTokens(ctx, days, dryRun)
	e.record(ctx, "file_token_cleanup", start, err)
	return count, err
}
