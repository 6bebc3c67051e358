package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "₹0.00"},
		{111, "₹111.00"},
		{999, "₹999.00"},
		{1000, "₹1,000.00"},
		{43311, "₹43,311.00"},
		{100000, "₹1,00,000.00"},
		{1234567.5, "₹12,34,567.50"},
		{12345678, "₹1,23,45,678.00"},
		{-111, "-₹111.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount), "Format(%v)", tt.amount)
	}
}

func TestFormatPrice(t *testing.T) {
	// Whole-number prices drop the decimals.
	assert.Equal(t, "₹111", FormatPrice(111))
	assert.Equal(t, "₹50,000", FormatPrice(50000))
	assert.Equal(t, "₹110.50", FormatPrice(110.5))
}
