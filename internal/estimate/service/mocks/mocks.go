// Package mocks provides mock implementations of the estimate services for testing.
package mocks

import (
	"github.com/stretchr/testify/mock"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// MockEstimateVault is a mock implementation of EstimateVault.
type MockEstimateVault struct {
	mock.Mock
}

// EncryptInternalEstimate mocks the EncryptInternalEstimate method of EstimateVault.
func (m *MockEstimateVault) EncryptInternalEstimate(estimate estimateDomain.InternalEstimate) (string, error) {
	args := m.Called(estimate)
	return args.String(0), args.Error(1)
}

// DecryptInternalEstimate mocks the DecryptInternalEstimate method of EstimateVault.
func (m *MockEstimateVault) DecryptInternalEstimate(blob string) (*estimateDomain.DecryptedEstimate, error) {
	args := m.Called(blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.DecryptedEstimate), args.Error(1)
}

// EncryptFileReference mocks the EncryptFileReference method of EstimateVault.
func (m *MockEstimateVault) EncryptFileReference(
	descriptor estimateDomain.FileDescriptor,
) (string, *estimateDomain.FileReference, error) {
	args := m.Called(descriptor)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*estimateDomain.FileReference), args.Error(2)
}

// DecryptFileReference mocks the DecryptFileReference method of EstimateVault.
func (m *MockEstimateVault) DecryptFileReference(blob string) (*estimateDomain.FileReference, error) {
	args := m.Called(blob)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*estimateDomain.FileReference), args.Error(1)
}

// MockSecureHasher is a mock implementation of SecureHasher.
type MockSecureHasher struct {
	mock.Mock
}

// GenerateSecureHash mocks the GenerateSecureHash method of SecureHasher.
func (m *MockSecureHasher) GenerateSecureHash(input string) string {
	args := m.Called(input)
	return args.String(0)
}

// HashToken mocks the HashToken method of SecureHasher.
func (m *MockSecureHasher) HashToken(token string) string {
	args := m.Called(token)
	return args.String(0)
}
