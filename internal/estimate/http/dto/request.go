// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	customValidation "github.com/newtonic3d/estimatevault/internal/validation"
)

// EstimateRequest carries the internal estimate fields in their wire form.
type EstimateRequest struct {
	Price        float64 `json:"price"`
	PrintTime    float64 `json:"print_time"`
	Volume       float64 `json:"volume"`
	Weight       float64 `json:"weight"`
	MaterialCost float64 `json:"material_cost"`
	LaborCost    float64 `json:"labor_cost"`
	TotalDays    int     `json:"total_days"`
}

// ToDomain converts the request to a domain estimate.
func (r *EstimateRequest) ToDomain() *estimateDomain.InternalEstimate {
	return &estimateDomain.InternalEstimate{
		Price:        r.Price,
		PrintTime:    r.PrintTime,
		Volume:       r.Volume,
		Weight:       r.Weight,
		MaterialCost: r.MaterialCost,
		LaborCost:    r.LaborCost,
		TotalDays:    r.TotalDays,
	}
}

// CalculateEstimateRequest contains the print parameters fed to the cost model.
type CalculateEstimateRequest struct {
	FileSizeMB     float64 `json:"file_size_mb"`
	Quantity       int     `json:"quantity"`
	Density        float64 `json:"density"`
	PricePerGram   float64 `json:"price_per_gram"`
	Quality        string  `json:"quality"`
	Urgency        string  `json:"urgency"`
	ColorSurcharge float64 `json:"color_surcharge"`
}

// Validate checks if the calculation request is valid.
func (r *CalculateEstimateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FileSizeMB, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&r.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&r.Density, validation.Min(0.0)),
		validation.Field(&r.PricePerGram, validation.Min(0.0)),
		validation.Field(&r.Quality, validation.In(
			estimateDomain.QualityDraft,
			estimateDomain.QualityStandard,
			estimateDomain.QualityFine,
			estimateDomain.QualityUltraFine,
		)),
		validation.Field(&r.Urgency, validation.In(
			estimateDomain.UrgencyStandard,
			estimateDomain.UrgencyExpress,
			estimateDomain.UrgencyUrgent,
		)),
		validation.Field(&r.ColorSurcharge, validation.Min(0.0)),
	)
}

// ToDomain converts the request to a domain calculation input.
func (r *CalculateEstimateRequest) ToDomain() *estimateDomain.CalculationInput {
	return &estimateDomain.CalculationInput{
		FileSizeMB:     r.FileSizeMB,
		Quantity:       r.Quantity,
		Density:        r.Density,
		PricePerGram:   r.PricePerGram,
		Quality:        r.Quality,
		Urgency:        r.Urgency,
		ColorSurcharge: r.ColorSurcharge,
	}
}

// SealEstimateRequest seals either an explicit estimate or the result of a
// calculation. Exactly one of the two must be set.
type SealEstimateRequest struct {
	Estimate    *EstimateRequest          `json:"estimate"`
	Calculation *CalculateEstimateRequest `json:"calculation"`
}

// Validate checks if the seal request is valid.
func (r *SealEstimateRequest) Validate() error {
	if (r.Estimate == nil) == (r.Calculation == nil) {
		return validation.Errors{
			"estimate": validation.NewError("validation_one_of", "exactly one of estimate or calculation is required"),
		}
	}
	return validation.ValidateStruct(r,
		validation.Field(&r.Calculation),
	)
}

// ToDomain converts the request to a domain seal input.
func (r *SealEstimateRequest) ToDomain() *estimateDomain.SealInput {
	input := &estimateDomain.SealInput{}
	if r.Estimate != nil {
		input.Estimate = r.Estimate.ToDomain()
	}
	if r.Calculation != nil {
		input.Calculation = r.Calculation.ToDomain()
	}
	return input
}

// IssueFileReferenceRequest describes the stored file a reference is issued for.
type IssueFileReferenceRequest struct {
	StoragePath  string `json:"storage_path"`
	OriginalName string `json:"original_name"`
}

// Validate checks if the issue request is valid.
func (r *IssueFileReferenceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.StoragePath,
			validation.Required,
			customValidation.StoragePath,
		),
		validation.Field(&r.OriginalName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// ToDomain converts the request to a file descriptor for quoteID.
func (r *IssueFileReferenceRequest) ToDomain(quoteID uuid.UUID) *estimateDomain.FileDescriptor {
	return &estimateDomain.FileDescriptor{
		StoragePath:  r.StoragePath,
		OriginalName: r.OriginalName,
		QuoteID:      quoteID,
	}
}

// ResolveFileReferenceRequest pairs an encrypted reference with its access token.
type ResolveFileReferenceRequest struct {
	Reference string `json:"reference"`
	Token     string `json:"token"`
}

// Validate checks if the resolve request is valid.
func (r *ResolveFileReferenceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Reference,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
