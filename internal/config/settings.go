package config

import (
	"fmt"
	"os"

	"github.com/aiagenz/donate/internal/donation"
	"gopkg.in/yaml.v3"
)

// DonationSettings is the on-disk shape of the donation catalog.
type DonationSettings struct {
	// Durations lists the tabs in display order. Empty means every duration
	// that has amounts, in the default order.
	Durations []string           `yaml:"durations"`
	Amounts   map[string][]int64 `yaml:"amounts"`
	Defaults  map[string]int64   `yaml:"defaults"`
	Initial   InitialSelection   `yaml:"initial"`
}

// InitialSelection is what a freshly mounted form shows.
type InitialSelection struct {
	Duration string `yaml:"duration"`
	Amount   int64  `yaml:"amount"`
}

// DefaultDonationSettings mirrors the catalog shipped in config/donation-settings.yaml.
func DefaultDonationSettings() *DonationSettings {
	return &DonationSettings{
		Durations: []string{"year", "month", "onetime"},
		Amounts: map[string][]int64{
			"year":    {100000, 25000, 3500},
			"month":   {5000, 3500, 500},
			"onetime": {100000, 25000, 3500},
		},
		Defaults: map[string]int64{
			"year":    25000,
			"month":   3500,
			"onetime": 25000,
		},
		Initial: InitialSelection{Duration: "month", Amount: 5000},
	}
}

// LoadDonationSettings reads settings from path, or returns the defaults when
// path is empty.
func LoadDonationSettings(path string) (*DonationSettings, error) {
	if path == "" {
		return DefaultDonationSettings(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read donation settings: %w", err)
	}
	var s DonationSettings
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse donation settings %s: %w", path, err)
	}
	return &s, nil
}

// Catalog converts the settings into a validated catalog and the initial
// selection. Errors here are fatal configuration errors.
func (s *DonationSettings) Catalog() (*donation.Catalog, donation.Selection, error) {
	names := s.Durations
	if len(names) == 0 {
		for _, d := range donation.AllDurations {
			if _, ok := s.Amounts[string(d)]; ok {
				names = append(names, string(d))
			}
		}
	}

	durations := make([]donation.Duration, 0, len(names))
	for _, name := range names {
		d, err := donation.ParseDuration(name)
		if err != nil {
			return nil, donation.Selection{}, fmt.Errorf("donation settings: %w", err)
		}
		durations = append(durations, d)
	}

	amounts := make(map[donation.Duration][]int64, len(s.Amounts))
	for name, list := range s.Amounts {
		amounts[donation.Duration(name)] = list
	}
	defaults := make(map[donation.Duration]int64, len(s.Defaults))
	for name, amount := range s.Defaults {
		defaults[donation.Duration(name)] = amount
	}

	catalog, err := donation.NewCatalog(durations, amounts, defaults)
	if err != nil {
		return nil, donation.Selection{}, fmt.Errorf("donation settings: %w", err)
	}

	initial := donation.Selection{Duration: durations[0], Amount: s.Initial.Amount}
	if s.Initial.Duration != "" {
		d, err := donation.ParseDuration(s.Initial.Duration)
		if err != nil || !catalog.Has(d) {
			return nil, donation.Selection{}, fmt.Errorf("donation settings: initial duration %q is not configured", s.Initial.Duration)
		}
		initial.Duration = d
	}
	initial.Amount = catalog.ResolveAmount(initial.Duration, initial.Amount)

	return catalog, initial, nil
}
