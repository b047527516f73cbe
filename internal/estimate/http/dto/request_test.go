package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSealEstimateRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     SealEstimateRequest
		wantErr bool
	}{
		{"estimate only", SealEstimateRequest{Estimate: &EstimateRequest{Price: 10}}, false},
		{
			"calculation only",
			SealEstimateRequest{Calculation: &CalculateEstimateRequest{FileSizeMB: 1, Quantity: 1}},
			false,
		},
		{"neither", SealEstimateRequest{}, true},
		{
			"both",
			SealEstimateRequest{
				Estimate:    &EstimateRequest{},
				Calculation: &CalculateEstimateRequest{FileSizeMB: 1, Quantity: 1},
			},
			true,
		},
		{
			"invalid calculation",
			SealEstimateRequest{Calculation: &CalculateEstimateRequest{FileSizeMB: 1}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCalculateEstimateRequest_Validate(t *testing.T) {
	valid := CalculateEstimateRequest{FileSizeMB: 3.5, Quantity: 2, Quality: "fine", Urgency: "urgent"}
	assert.NoError(t, valid.Validate())

	zeroSize := valid
	zeroSize.FileSizeMB = 0
	assert.Error(t, zeroSize.Validate())

	badUrgency := valid
	badUrgency.Urgency = "yesterday"
	assert.Error(t, badUrgency.Validate())

	negativeDensity := valid
	negativeDensity.Density = -1
	assert.Error(t, negativeDensity.Validate())
}

func TestIssueFileReferenceRequest(t *testing.T) {
	req := IssueFileReferenceRequest{StoragePath: "uploads/a.stl", OriginalName: "a.stl"}
	assert.NoError(t, req.Validate())

	quoteID := uuid.Must(uuid.NewV7())
	descriptor := req.ToDomain(quoteID)
	assert.Equal(t, quoteID, descriptor.QuoteID)
	assert.Equal(t, "uploads/a.stl", descriptor.StoragePath)

	req.StoragePath = "/etc/passwd"
	assert.Error(t, req.Validate())
}

func TestResolveFileReferenceRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ResolveFileReferenceRequest{Reference: "cmVm", Token: "t"}).Validate())
	assert.Error(t, (&ResolveFileReferenceRequest{Reference: "not base64!", Token: "t"}).Validate())
	assert.Error(t, (&ResolveFileReferenceRequest{Reference: "cmVm"}).Validate())
}
