package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumericValue(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected float64
		ok       bool
	}{
		{
			name:     "thousand suffix",
			text:     "850 mil",
			expected: 850000.0,
			ok:       true,
		},
		{
			name:     "million suffix",
			text:     "1 milhão",
			expected: 1000000.0,
			ok:       true,
		},
		{
			name:     "million suffix without accent",
			text:     "2 milhoes",
			expected: 2000000.0,
			ok:       true,
		},
		{
			name:     "decimal million",
			text:     "1,5 milhão",
			expected: 1500000.0,
			ok:       true,
		},
		{
			name:     "brazilian format with currency",
			text:     "R$ 1.000.000,50",
			expected: 1000000.50,
			ok:       true,
		},
		{
			name:     "us format",
			text:     "1,000,000.50",
			expected: 1000000.50,
			ok:       true,
		},
		{
			// A single dot is ambiguous and reads as a decimal point
			name:     "single dot reads as decimal",
			text:     "R$ 850.000",
			expected: 850.0,
			ok:       true,
		},
		{
			name:     "square meters unit",
			text:     "450m²",
			expected: 450.0,
			ok:       true,
		},
		{
			name:     "plain integer",
			text:     "600",
			expected: 600.0,
			ok:       true,
		},
		{
			name:     "comma as decimal",
			text:     "450,5",
			expected: 450.5,
			ok:       true,
		},
		{
			name:     "no numerals",
			text:     "abc",
			expected: 0,
			ok:       false,
		},
		{
			name:     "empty string",
			text:     "",
			expected: 0,
			ok:       false,
		},
		{
			name:     "separators only",
			text:     "R$ ,.",
			expected: 0,
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := ParseNumericValue(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, value)
			}
		})
	}
}

func TestParseNumericValue_MultipleDotsAreGrouping(t *testing.T) {
	value, ok := ParseNumericValue("1.000.000")
	assert.True(t, ok)
	assert.Equal(t, 1000000.0, value)
}

func TestParseNumericValue_TotalOnGarbage(t *testing.T) {
	// Must never panic, whatever the input
	inputs := []string{"", "   ", "R$", "m²", "mil", "milhão", "..,,..", "!!!", "R$ mil reais"}
	for _, input := range inputs {
		assert.NotPanics(t, func() {
			ParseNumericValue(input)
		})
	}
}
