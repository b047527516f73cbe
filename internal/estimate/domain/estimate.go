package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/newtonic3d/estimatevault/internal/validation"
)

// InternalEstimate holds the confidential cost breakdown of a quote.
//
// The field order is the canonical serialization order used for checksums and
// signatures; changing it invalidates every stored signature.
type InternalEstimate struct {
	Price        float64 `json:"price"`
	PrintTime    float64 `json:"printTime"`
	Volume       float64 `json:"volume"`
	Weight       float64 `json:"weight"`
	MaterialCost float64 `json:"materialCost"`
	LaborCost    float64 `json:"laborCost"`
	TotalDays    int     `json:"totalDays"`
}

// Validate checks that every field is finite and non-negative.
func (e InternalEstimate) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Price, validation.Min(0.0), customValidation.Finite),
		validation.Field(&e.PrintTime, validation.Min(0.0), customValidation.Finite),
		validation.Field(&e.Volume, validation.Min(0.0), customValidation.Finite),
		validation.Field(&e.Weight, validation.Min(0.0), customValidation.Finite),
		validation.Field(&e.MaterialCost, validation.Min(0.0), customValidation.Finite),
		validation.Field(&e.LaborCost, validation.Min(0.0), customValidation.Finite),
		validation.Field(&e.TotalDays, validation.Min(0)),
	)
}

// CanonicalJSON returns the deterministic JSON form of the estimate.
func (e InternalEstimate) CanonicalJSON() ([]byte, error) {
	return json.Marshal(e)
}

// Checksum returns the hex SHA-256 of the canonical JSON.
func (e InternalEstimate) Checksum() (string, error) {
	data, err := e.CanonicalJSON()
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// SealedEstimate is the plaintext sealed inside an estimate blob.
type SealedEstimate struct {
	InternalEstimate
	Timestamp int64  `json:"timestamp"`
	Version   string `json:"version"`
	Checksum  string `json:"checksum"`
}

// DecryptedEstimate is the result of opening an estimate blob.
type DecryptedEstimate struct {
	Estimate InternalEstimate
	SealedAt time.Time
	Version  string
	Stale    bool
	Warnings []string
}

// RetrievalResult is returned to an administrator reading a sealed estimate.
type RetrievalResult struct {
	Estimate         InternalEstimate
	SecurityLevel    string
	LastCalculatedAt *time.Time
	Warnings         []string
	Verified         bool
}

// SealInput carries either an explicit estimate or the parameters to compute
// one. When both are set the explicit estimate wins.
type SealInput struct {
	Estimate    *InternalEstimate
	Calculation *CalculationInput
}
