package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRequest_Unmarshal(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected QuoteRequest
	}{
		{
			name: "full request",
			body: `{"area_telhado": 100, "comprimento_cumeeira": 8.5, "perimetro": 42, "sistema": "shingle-supreme"}`,
			expected: QuoteRequest{
				AreaTelhado:         100,
				ComprimentoCumeeira: 8.5,
				Perimetro:           42,
				Sistema:             "shingle-supreme",
			},
		},
		{
			name:     "minimal request leaves optional fields zero",
			body:     `{"area_telhado": 55.5}`,
			expected: QuoteRequest{AreaTelhado: 55.5},
		},
		{
			name:     "empty body",
			body:     `{}`,
			expected: QuoteRequest{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req QuoteRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestCompositionItemPatchRequest_AbsentFieldsStayNil(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		validate func(*testing.T, CompositionItemPatchRequest)
	}{
		{
			name: "only breakage present",
			body: `{"breakage_percent": 15}`,
			validate: func(t *testing.T, p CompositionItemPatchRequest) {
				require.NotNil(t, p.BreakagePercent)
				assert.Equal(t, 15.0, *p.BreakagePercent)
				assert.Nil(t, p.ProductCode)
				assert.Nil(t, p.ConsumptionPerUnitArea)
				assert.Nil(t, p.CorrectionFactor)
				assert.Nil(t, p.CalculationMode)
				assert.Nil(t, p.CustomFormula)
			},
		},
		{
			name: "explicit zero is distinct from absent",
			body: `{"correction_factor": 0}`,
			validate: func(t *testing.T, p CompositionItemPatchRequest) {
				require.NotNil(t, p.CorrectionFactor)
				assert.Equal(t, 0.0, *p.CorrectionFactor)
			},
		},
		{
			name: "mode and formula together",
			body: `{"calculation_mode": "custom", "custom_formula": "preco / rendimento"}`,
			validate: func(t *testing.T, p CompositionItemPatchRequest) {
				require.NotNil(t, p.CalculationMode)
				assert.Equal(t, "custom", *p.CalculationMode)
				require.NotNil(t, p.CustomFormula)
				assert.Equal(t, "preco / rendimento", *p.CustomFormula)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch CompositionItemPatchRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			tt.validate(t, patch)
		})
	}
}

func TestCompositionItemRequest_OptionalOrder(t *testing.T) {
	var withOrder CompositionItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"product_code": "OSB-11", "order": 3}`), &withOrder))
	require.NotNil(t, withOrder.Order)
	assert.Equal(t, 3, *withOrder.Order)

	var withoutOrder CompositionItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"product_code": "OSB-11"}`), &withoutOrder))
	assert.Nil(t, withoutOrder.Order)
}
