package donation

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownDuration  = errors.New("unknown donation duration")
	ErrEmptyCatalog     = errors.New("no amounts configured for duration")
	ErrInvalidDefault   = errors.New("default amount not offered for duration")
	ErrAmountNotOffered = errors.New("amount not offered for duration")
	ErrNoDurations      = errors.New("no donation durations configured")
)

// Catalog holds the selectable amounts (in cents) for every configured duration.
// It is immutable once built.
type Catalog struct {
	durations []Duration
	amounts   map[Duration][]int64
	defaults  map[Duration]int64
}

// NewCatalog builds a validated catalog. Any error is a configuration error
// and should stop the process.
func NewCatalog(durations []Duration, amounts map[Duration][]int64, defaults map[Duration]int64) (*Catalog, error) {
	c := &Catalog{
		durations: slices.Clone(durations),
		amounts:   make(map[Duration][]int64, len(amounts)),
		defaults:  make(map[Duration]int64, len(defaults)),
	}
	for d, list := range amounts {
		c.amounts[d] = slices.Clone(list)
	}
	for d, amount := range defaults {
		c.defaults[d] = amount
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that every configured duration is known and has a non-empty
// amount list, and that every default is one of the offered amounts.
func (c *Catalog) Validate() error {
	if len(c.durations) == 0 {
		return ErrNoDurations
	}
	seen := make(map[Duration]bool, len(c.durations))
	for _, d := range c.durations {
		if _, err := ParseDuration(string(d)); err != nil {
			return err
		}
		if seen[d] {
			return fmt.Errorf("duration %q listed twice", d)
		}
		seen[d] = true
		if len(c.amounts[d]) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCatalog, d)
		}
		for _, amount := range c.amounts[d] {
			if amount <= 0 {
				return fmt.Errorf("duration %s: amount %d must be positive", d, amount)
			}
		}
	}
	for d, amount := range c.defaults {
		if !seen[d] {
			return fmt.Errorf("%w: default set for %q", ErrUnknownDuration, d)
		}
		if !slices.Contains(c.amounts[d], amount) {
			return fmt.Errorf("%w: %s default %d", ErrInvalidDefault, d, amount)
		}
	}
	return nil
}

// Durations returns the configured durations in display order.
func (c *Catalog) Durations() []Duration {
	return slices.Clone(c.durations)
}

// Has reports whether d is configured.
func (c *Catalog) Has(d Duration) bool {
	return slices.Contains(c.durations, d)
}

// Amounts returns the amounts offered for d, in display order.
func (c *Catalog) Amounts(d Duration) []int64 {
	return slices.Clone(c.amounts[d])
}

// Default returns the preferred amount for d, if one is configured.
func (c *Catalog) Default(d Duration) (int64, bool) {
	amount, ok := c.defaults[d]
	return amount, ok
}

// Offers reports whether amount is selectable for d.
func (c *Catalog) Offers(d Duration, amount int64) bool {
	return slices.Contains(c.amounts[d], amount)
}

// ResolveAmount returns requested when it is offered for d. Otherwise it falls
// back to the configured default, then to the first offered amount.
// d must be a configured duration; an unconfigured one resolves to 0.
func (c *Catalog) ResolveAmount(d Duration, requested int64) int64 {
	list := c.amounts[d]
	if len(list) == 0 {
		return 0
	}
	if slices.Contains(list, requested) {
		return requested
	}
	if amount, ok := c.defaults[d]; ok {
		return amount
	}
	return list[0]
}

// OnDurationChanged returns the amount to adopt together with newDuration.
func (c *Catalog) OnDurationChanged(newDuration Duration, currentAmount int64) int64 {
	return c.ResolveAmount(newDuration, currentAmount)
}
