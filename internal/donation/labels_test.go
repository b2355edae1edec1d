package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyLabel(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{150000, "$1,500"},
		{100, "$1"},
		{3500, "$35"},
		{100000000, "$1,000,000"},
		{199, "$1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrencyLabel(tt.amount), "amount %d", tt.amount)
	}
}

func TestFormatImpactLabel(t *testing.T) {
	assert.Equal(t, "50 hours", FormatImpactLabel(100))
	assert.Equal(t, "250 hours", FormatImpactLabel(500))
	assert.Equal(t, "75,000 hours", FormatImpactLabel(150000))
}

func TestBuildConfirmationLabel(t *testing.T) {
	assert.Contains(t, BuildConfirmationLabel(OneTime, 500), "one-time donation of $5")
	assert.Contains(t, BuildConfirmationLabel(Month, 500), "$5 per month")
	assert.Equal(t, "Confirm your donation of $250 per year", BuildConfirmationLabel(Year, 25000))
}

func TestDescriptionLabel(t *testing.T) {
	assert.Equal(t,
		"Your $50 donation will provide 2,500 hours of learning to people around the world each month.",
		DescriptionLabel(Month, 5000))
	assert.Equal(t,
		"Your $5 donation will provide 250 hours of learning to people around the world.",
		DescriptionLabel(OneTime, 500))
}

func TestHeadings(t *testing.T) {
	assert.Empty(t, PayPalHeading(OneTime, 500))
	assert.Empty(t, CardHeading(OneTime))
	assert.Equal(t, "Confirm your donation of $35 / year with PayPal:", PayPalHeading(Year, 3500))
	assert.Equal(t, "Confirm your donation of $5 / month with PayPal:", PayPalHeading(Month, 500))
	assert.Equal(t, "Or donate with a credit card:", CardHeading(Month))
}

func TestAmountOptionID(t *testing.T) {
	assert.Equal(t, "monthly-donation-500", AmountOptionID(Month, 500))
	assert.Equal(t, "one-time-donation-100", AmountOptionID(OneTime, 100))
}
