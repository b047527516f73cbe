package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/newtonic3d/estimatevault/internal/crypto/domain"
	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

type hmacSigner struct {
	secret *cryptoDomain.MasterSecret
}

// NewSigner creates a Signer keyed by the master secret.
func NewSigner(secret *cryptoDomain.MasterSecret) Signer {
	return &hmacSigner{secret: secret}
}

func (s *hmacSigner) mac(estimate estimateDomain.InternalEstimate) ([]byte, error) {
	canonical, err := estimate.CanonicalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize estimate: %w", err)
	}

	key := s.secret.Bytes()
	defer cryptoDomain.Zero(key)

	mac := hmac.New(sha256.New, key)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

func (s *hmacSigner) SignData(estimate estimateDomain.InternalEstimate) (string, error) {
	sum, err := s.mac(estimate)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// ValidateDataIntegrity always compares a full-length buffer so the time taken
// does not depend on how the signature differs, including its length or a
// failed hex decode.
func (s *hmacSigner) ValidateDataIntegrity(estimate estimateDomain.InternalEstimate, signature string) bool {
	expected, err := s.mac(estimate)
	if err != nil {
		return false
	}

	provided, decodeErr := hex.DecodeString(signature)

	candidate := make([]byte, len(expected))
	copy(candidate, provided)

	lengthOK := subtle.ConstantTimeEq(int32(len(provided)), int32(len(expected)))
	bytesOK := subtle.ConstantTimeCompare(candidate, expected)

	return decodeErr == nil && lengthOK&bytesOK == 1
}
