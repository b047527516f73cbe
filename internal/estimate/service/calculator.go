package service

import (
	"math"
	"strings"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	"github.com/newtonic3d/estimatevault/internal/validation"
)

// Cost model constants.
const (
	volumePerMB      = 75.0 // cm³ of printed volume per MB of model file
	minVolume        = 10.0
	hoursPerCM3      = 0.5
	laborRatePerHour = 8.0
	marginMultiplier = 1.2
	printHoursPerDay = 8.0
	shippingDays     = 2
	minDeliveryDays  = 2
)

var qualityMultipliers = map[string]float64{
	estimateDomain.QualityDraft:     0.8,
	estimateDomain.QualityStandard:  1.0,
	estimateDomain.QualityFine:      1.5,
	estimateDomain.QualityUltraFine: 2.0,
}

var urgencyMultipliers = map[string]float64{
	estimateDomain.UrgencyStandard: 1.0,
	estimateDomain.UrgencyExpress:  1.5,
	estimateDomain.UrgencyUrgent:   2.0,
}

type calculator struct{}

// NewCalculator creates the quote cost model.
func NewCalculator() Calculator {
	return &calculator{}
}

func (c *calculator) Calculate(input estimateDomain.CalculationInput) (estimateDomain.InternalEstimate, error) {
	if err := input.Validate(); err != nil {
		return estimateDomain.InternalEstimate{}, validation.WrapValidationError(err)
	}

	density := input.Density
	if density == 0 {
		density = estimateDomain.DefaultMaterialDensity
	}

	volume := math.Max(minVolume, input.FileSizeMB*volumePerMB)
	weight := volume * density * float64(input.Quantity)
	printTime := volume * hoursPerCM3 * multiplier(qualityMultipliers, input.Quality)

	materialCost := weight * input.PricePerGram
	laborCost := printTime * laborRatePerHour

	subtotal := (materialCost + laborCost) *
		(1 + input.ColorSurcharge/100) *
		multiplier(urgencyMultipliers, input.Urgency)

	totalDays := int(math.Ceil(printTime/printHoursPerDay)) + shippingDays
	if totalDays < minDeliveryDays {
		totalDays = minDeliveryDays
	}

	return estimateDomain.InternalEstimate{
		Price:        round(subtotal*marginMultiplier, 2),
		PrintTime:    round(printTime, 1),
		Volume:       round(volume, 1),
		Weight:       round(weight, 1),
		MaterialCost: round(materialCost, 2),
		LaborCost:    round(laborCost, 2),
		TotalDays:    totalDays,
	}, nil
}

func multiplier(table map[string]float64, key string) float64 {
	if m, ok := table[strings.ToLower(strings.TrimSpace(key))]; ok {
		return m
	}
	return 1.0
}

func round(value float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(value*p) / p
}
