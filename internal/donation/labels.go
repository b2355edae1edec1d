package donation

import "fmt"

// BuildConfirmationLabel is the text of the card widget's confirm button.
func BuildConfirmationLabel(d Duration, amount int64) string {
	if !d.Recurring() {
		return fmt.Sprintf("Confirm your one-time donation of %s", FormatCurrencyLabel(amount))
	}
	return fmt.Sprintf("Confirm your donation of %s %s", FormatCurrencyLabel(amount), d.Cadence())
}

// DescriptionLabel explains what the donation pays for.
func DescriptionLabel(d Duration, amount int64) string {
	suffix := "."
	if d.Recurring() {
		suffix = fmt.Sprintf(" each %s.", d)
	}
	return fmt.Sprintf("Your %s donation will provide %s of learning to people around the world%s",
		FormatCurrencyLabel(amount), FormatImpactLabel(amount), suffix)
}

// PayPalHeading introduces the PayPal button for recurring donations.
// One-time donations get no heading.
func PayPalHeading(d Duration, amount int64) string {
	if !d.Recurring() {
		return ""
	}
	return fmt.Sprintf("Confirm your donation of %s / %s with PayPal:", FormatCurrencyLabel(amount), d)
}

// CardHeading introduces the card widget for recurring donations.
func CardHeading(d Duration) string {
	if !d.Recurring() {
		return ""
	}
	return "Or donate with a credit card:"
}

// AmountOptionID is the element id of an amount button.
func AmountOptionID(d Duration, amount int64) string {
	return fmt.Sprintf("%s-donation-%d", d.Title(), amount)
}
