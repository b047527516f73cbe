package commands

import (
	"fmt"
	"io"

	estimateDomain "github.com/newtonic3d/estimatevault/internal/estimate/domain"
	estimateService "github.com/newtonic3d/estimatevault/internal/estimate/service"
)

// RunCalculateEstimate runs the cost model offline and prints the internal
// estimate. Nothing is encrypted or stored.
func RunCalculateEstimate(
	calculator estimateService.Calculator,
	writer io.Writer,
	input estimateDomain.CalculationInput,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	estimate, err := calculator.Calculate(input)
	if err != nil {
		return fmt.Errorf("failed to calculate estimate: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, estimate)
	}

	_, _ = fmt.Fprintf(writer, "Price:         %.2f\n", estimate.Price)
	_, _ = fmt.Fprintf(writer, "Print time:    %.2f h\n", estimate.PrintTime)
	_, _ = fmt.Fprintf(writer, "Volume:        %.2f cm3\n", estimate.Volume)
	_, _ = fmt.Fprintf(writer, "Weight:        %.2f g\n", estimate.Weight)
	_, _ = fmt.Fprintf(writer, "Material cost: %.2f\n", estimate.MaterialCost)
	_, _ = fmt.Fprintf(writer, "Labor cost:    %.2f\n", estimate.LaborCost)
	_, _ = fmt.Fprintf(writer, "Total days:    %d\n", estimate.TotalDays)
	return nil
}
