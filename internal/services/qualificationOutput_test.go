package services

import (
	"encoding/json"
	"testing"

	"webstar/terra-qualifier-worker/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleQualification_AllFallbacks(t *testing.T) {
	record := assembleQualification(dto.LeadFields{}, false)

	assert.False(t, record.LeadQualified)
	assert.Equal(t, dto.OwnerTypeBroker, record.OwnerType)
	assert.Equal(t, BairroUnspecified, record.Location.Bairro)
	assert.Equal(t, "Florianópolis", record.Location.Cidade)
	assert.Equal(t, MinPositiveSentinel, record.LandSizeM2)
	assert.Equal(t, MinPositiveSentinel, record.AskingPrice)
	assert.Equal(t, LegalStatusNotInformed, record.LegalStatus)
	assert.Equal(t, ObsNone, record.Obs)
	assert.Equal(t, dto.NextStepDisqualified, record.NextStep)
}

func TestAssembleQualification_KnownFieldsOverrideFallbacks(t *testing.T) {
	fields := dto.LeadFields{
		OwnerType:     strPtr(dto.OwnerTypeOwner),
		Bairro:        strPtr("Itacorubi"),
		LandSizeM2:    f64Ptr(600),
		AskingPrice:   f64Ptr(1200000),
		LegalStatus:   strPtr("has_title"),
		Differentials: strPtr("esquina, plano"),
	}

	record := assembleQualification(fields, true)

	assert.True(t, record.LeadQualified)
	assert.Equal(t, dto.OwnerTypeOwner, record.OwnerType)
	assert.Equal(t, "Itacorubi", record.Location.Bairro)
	assert.Equal(t, 600.0, record.LandSizeM2)
	assert.Equal(t, 1200000.0, record.AskingPrice)
	assert.Equal(t, LegalStatusHasTitle, record.LegalStatus)
	assert.Equal(t, "esquina, plano", record.Obs)
	assert.Equal(t, dto.NextStepScheduleMeeting, record.NextStep)
}

func TestAssembleQualification_PartialFields(t *testing.T) {
	// Disqualified lead that only got as far as stating a bairro
	fields := dto.LeadFields{
		Bairro: strPtr("Rio Tavares"),
	}

	record := assembleQualification(fields, false)

	assert.Equal(t, "Rio Tavares", record.Location.Bairro)
	assert.Equal(t, dto.OwnerTypeBroker, record.OwnerType)
	assert.Equal(t, MinPositiveSentinel, record.LandSizeM2)
	assert.Equal(t, dto.NextStepDisqualified, record.NextStep)
}

func TestAssembleQualification_JSONShape(t *testing.T) {
	record := assembleQualification(dto.LeadFields{}, false)

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{
		"lead_qualified", "owner_type", "location",
		"land_size_m2", "asking_price", "legal_status", "obs", "next_step",
	} {
		assert.Contains(t, decoded, key)
	}

	location, ok := decoded["location"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, location, "bairro")
	assert.Contains(t, location, "cidade")
}

func TestNormalizeLegalStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		expected string
	}{
		{name: "extractor positive", status: "has_title", expected: LegalStatusHasTitle},
		{name: "free text positive", status: "sim, escritura registrada", expected: LegalStatusHasTitle},
		{name: "extractor negative", status: "no_title", expected: LegalStatusNoTitle},
		{name: "free text negative", status: "ainda sem escritura", expected: LegalStatusNoTitle},
		{name: "unclear passes through", status: "preciso confirmar com meu advogado", expected: "preciso confirmar com meu advogado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeLegalStatus(tt.status))
		})
	}
}
