package dto

import (
	"time"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
)

// EstimateResponse is the wire form of an internal estimate.
type EstimateResponse struct {
	Price        float64 `json:"price"`
	PrintTime    float64 `json:"print_time"`
	Volume       float64 `json:"volume"`
	Weight       float64 `json:"weight"`
	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
	TotalDays    int     `json:"total_days"`
}

// MapEstimateToResponse converts a domain estimate to an API response.
func MapEstimateToResponse(estimate estimateDomain.InternalEstimate) EstimateResponse {
	return EstimateResponse{
		Price:        estimate.Price,
		PrintTime:    estimate.PrintTime,
		Volume:       estimate.Volume,
		Weight:       estimate.Weight,
		MaterialCost: estimate.MaterialCost,
		LaborCost:    estimate.LaborCost,
		TotalDays:    estimate.TotalDays,
	}
}

// SealEstimateResponse describes a quote after sealing. It exposes only the
// public figures; the ciphertext and signature never leave the service.
type SealEstimateResponse struct {
	QuoteID          string     `json:"quote_id"`
	EstimatedPrice   float64    `json:"estimated_price"`
	EstimatedDays    int        `json:"estimated_days"`
	SecurityLevel    string     `json:"security_level"`
	LastCalculatedAt *time.Time `json:"last_calculated_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// MapQuoteToSealResponse converts a sealed quote to an API response.
func MapQuoteToSealResponse(quote *estimateDomain.Quote) SealEstimateResponse {
	return SealEstimateResponse{
		QuoteID:          quote.ID.String(),
		EstimatedPrice:   quote.EstimatedPrice,
		EstimatedDays:    quote.EstimatedDays,
		SecurityLevel:    quote.SecurityLevel,
		LastCalculatedAt: quote.LastCalculatedAt,
		UpdatedAt:        quote.UpdatedAt,
	}
}

// RetrieveEstimateResponse is the result of the access-controlled retrieval flow.
// SECURITY: contains decrypted cost data; only administrators ever receive it.
type RetrieveEstimateResponse struct {
	QuoteID          string           `json:"quote_id"`
	Estimate         EstimateResponse `json:"estimate"`
	SecurityLevel    string           `json:"security_level"`
	LastCalculatedAt *time.Time       `json:"last_calculated_at,omitempty"`
	Verified         bool             `json:"verified"`
	Warnings         []string         `json:"warnings"`
}

// MapRetrievalToResponse converts a retrieval result to an API response.
func MapRetrievalToResponse(quoteID string, result *estimateDomain.RetrievalResult) RetrieveEstimateResponse {
	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return RetrieveEstimateResponse{
		QuoteID:          quoteID,
		Estimate:         MapEstimateToResponse(result.Estimate),
		SecurityLevel:    result.SecurityLevel,
		LastCalculatedAt: result.LastCalculatedAt,
		Verified:         result.Verified,
		Warnings:         warnings,
	}
}

// IssueFileReferenceResponse carries a new reference and its token.
// SECURITY: The token is only returned once.
type IssueFileReferenceResponse struct {
	Reference string    `json:"reference"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapIssuedFileReferenceToResponse converts an issued reference to an API response.
func MapIssuedFileReferenceToResponse(issued *estimateDomain.IssuedFileReference) IssueFileReferenceResponse {
	return IssueFileReferenceResponse{
		Reference: issued.Reference,
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}
}

// FileReferenceResponse is a resolved file reference.
type FileReferenceResponse struct {
	StoragePath  string    `json:"storage_path"`
	OriginalName string    `json:"original_name"`
	QuoteID      string    `json:"quote_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// MapFileReferenceToResponse converts a resolved reference to an API response.
func MapFileReferenceToResponse(ref *estimateDomain.FileReference) FileReferenceResponse {
	return FileReferenceResponse{
		StoragePath:  ref.StoragePath,
		OriginalName: ref.OriginalName,
		QuoteID:      ref.QuoteID.String(),
		ExpiresAt:    ref.ExpiresAtTime(),
	}
}
