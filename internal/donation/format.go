package donation

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// CentsPerDollar is the minor-to-major unit ratio for USD.
	CentsPerDollar = 100
	// HoursPerDollar is how many hours of learning one dollar provides.
	HoursPerDollar = 50
)

// groupDigits renders n with English thousands separators.
func groupDigits(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatCurrencyLabel renders an amount in cents as whole dollars,
// e.g. 150000 -> "$1,500". Any cents remainder is dropped.
func FormatCurrencyLabel(amount int64) string {
	return "$" + groupDigits(amount/CentsPerDollar)
}

// FormatImpactLabel renders the hours of learning an amount provides,
// e.g. 100 -> "50 hours".
func FormatImpactLabel(amount int64) string {
	return fmt.Sprintf("%s hours", groupDigits(amount/CentsPerDollar*HoursPerDollar))
}
