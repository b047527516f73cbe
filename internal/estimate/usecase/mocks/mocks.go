// Package mocks provides mock implementations of the estimate use case
// interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// MockQuoteRepository is a mock implementation of QuoteRepository.
type MockQuoteRepository struct {
	mock.Mock
}

// Get mocks the Get method of QuoteRepository.
func (m *MockQuoteRepository) Get(ctx context.Context, quoteID uuid.UUID) (*estimateDomain.Quote, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.Quote), args.Error(1)
}

// Upsert mocks the Upsert method of QuoteRepository.
func (m *MockQuoteRepository) Upsert(ctx context.Context, quote *estimateDomain.Quote) error {
	args := m.Called(ctx, quote)
	return args.Error(0)
}

// MockFileTokenRepository is a mock implementation of FileTokenRepository.
type MockFileTokenRepository struct {
	mock.Mock
}

// Create mocks the Create method of FileTokenRepository.
func (m *MockFileTokenRepository) Create(ctx context.Context, token *estimateDomain.FileAccessToken) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

// GetByTokenHash mocks the GetByTokenHash method of FileTokenRepository.
func (m *MockFileTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*estimateDomain.FileAccessToken, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.FileAccessToken), args.Error(1)
}

// DeleteExpired mocks the DeleteExpired method of FileTokenRepository.
func (m *MockFileTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// CountExpired mocks the CountExpired method of FileTokenRepository.
func (m *MockFileTokenRepository) CountExpired(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdminChecker is a mock implementation of AdminChecker.
type MockAdminChecker struct {
	mock.Mock
}

// IsAdmin mocks the IsAdmin method of AdminChecker.
func (m *MockAdminChecker) IsAdmin(ctx context.Context, callerID uuid.UUID) (bool, error) {
	args := m.Called(ctx, callerID)
	return args.Bool(0), args.Error(1)
}

// MockEstimateUseCase is a mock implementation of EstimateUseCase.
type MockEstimateUseCase struct {
	mock.Mock
}

// Seal mocks the Seal method of EstimateUseCase.
func (m *MockEstimateUseCase) Seal(
	ctx context.Context,
	callerID, quoteID uuid.UUID,
	input *estimateDomain.SealInput,
) (*estimateDomain.Quote, error) {
	args := m.Called(ctx, callerID, quoteID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.Quote), args.Error(1)
}

// Decrypt mocks the Decrypt method of EstimateUseCase.
func (m *MockEstimateUseCase) Decrypt(
	ctx context.Context,
	callerID, quoteID uuid.UUID,
) (*estimateDomain.RetrievalResult, error) {
	args := m.Called(ctx, callerID, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.RetrievalResult), args.Error(1)
}

// Calculate mocks the Calculate method of EstimateUseCase.
func (m *MockEstimateUseCase) Calculate(
	ctx context.Context,
	callerID uuid.UUID,
	input *estimateDomain.CalculationInput,
) (*estimateDomain.InternalEstimate, error) {
	args := m.Called(ctx, callerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.InternalEstimate), args.Error(1)
}

// IssueFileReference mocks the IssueFileReference method of EstimateUseCase.
func (m *MockEstimateUseCase) IssueFileReference(
	ctx context.Context,
	callerID uuid.UUID,
	descriptor *estimateDomain.FileDescriptor,
) (*estimateDomain.IssuedFileReference, error) {
	args := m.Called(ctx, callerID, descriptor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.IssuedFileReference), args.Error(1)
}

// ResolveFileReference mocks the ResolveFileReference method of EstimateUseCase.
func (m *MockEstimateUseCase) ResolveFileReference(
	ctx context.Context,
	reference, token string,
) (*estimateDomain.FileReference, error) {
	args := m.Called(ctx, reference, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.FileReference), args.Error(1)
}

// CleanExpiredFileTokens mocks the CleanExpiredFileTokens method of EstimateUseCase.
func (m *MockEstimateUseCase) CleanExpiredFileTokens(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}
