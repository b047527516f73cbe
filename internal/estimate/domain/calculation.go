package domain

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/newtonic3d/estimatevault/internal/validation"
)

// Print quality levels.
const (
	QualityDraft     = "draft"
	QualityStandard  = "standard"
	QualityFine      = "fine"
	QualityUltraFine = "ultrafine"
)

// Delivery urgency levels.
const (
	UrgencyStandard = "standard"
	UrgencyExpress  = "express"
	UrgencyUrgent   = "urgent"
)

// DefaultMaterialDensity is the density in g/cm³ used when none is supplied.
const DefaultMaterialDensity = 1.2

// CalculationInput holds the parameters of the cost model.
//
// Quality and Urgency outside the known levels fall back to a 1.0 multiplier.
type CalculationInput struct {
	FileSizeMB     float64
	Quantity       int
	Density        float64
	PricePerGram   float64
	Quality        string
	Urgency        string
	ColorSurcharge float64
}

// Validate checks the calculation input.
func (c CalculationInput) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.FileSizeMB, validation.Required, validation.Min(0.0).Exclusive(), customValidation.Finite),
		validation.Field(&c.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&c.Density, validation.Min(0.0), customValidation.Finite),
		validation.Field(&c.PricePerGram, validation.Min(0.0), customValidation.Finite),
		validation.Field(&c.ColorSurcharge, validation.Min(0.0), customValidation.Finite),
	)
}
