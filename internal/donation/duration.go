package donation

import "fmt"

// Duration is the billing cadence of a donation.
type Duration string

const (
	OneTime Duration = "onetime"
	Month   Duration = "month"
	Year    Duration = "year"
)

// AllDurations lists every supported duration in default tab order.
var AllDurations = []Duration{Year, Month, OneTime}

var durationTitles = map[Duration]string{
	OneTime: "one-time",
	Month:   "monthly",
	Year:    "yearly",
}

// ParseDuration converts a raw value into a Duration.
func ParseDuration(s string) (Duration, error) {
	d := Duration(s)
	if _, ok := durationTitles[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDuration, s)
	}
	return d, nil
}

// Title is the tab label shown for the duration.
func (d Duration) Title() string {
	return durationTitles[d]
}

// Recurring reports whether the donation repeats.
func (d Duration) Recurring() bool {
	return d == Month || d == Year
}

// Cadence returns "per month" or "per year" for recurring durations.
func (d Duration) Cadence() string {
	switch d {
	case Month:
		return "per month"
	case Year:
		return "per year"
	}
	return ""
}
