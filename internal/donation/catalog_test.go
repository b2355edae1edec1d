package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(
		[]Duration{Month, OneTime},
		map[Duration][]int64{
			Month:   {500, 1000, 2500},
			OneTime: {100, 500},
		},
		map[Duration]int64{Month: 1000},
	)
	require.NoError(t, err)
	return c
}

func TestResolveAmountAlwaysOffered(t *testing.T) {
	c := scenarioCatalog(t)

	inputs := []int64{-1, 0, 1, 100, 500, 999, 1000, 2500, 1 << 40}
	for _, d := range c.Durations() {
		for _, x := range inputs {
			got := c.ResolveAmount(d, x)
			assert.Truef(t, c.Offers(d, got), "ResolveAmount(%s, %d) = %d not offered", d, x, got)
		}
	}
}

func TestResolveAmountKeepsOfferedAmount(t *testing.T) {
	c := scenarioCatalog(t)

	for _, d := range c.Durations() {
		for _, a := range c.Amounts(d) {
			assert.Equal(t, a, c.ResolveAmount(d, a))
		}
	}
}

func TestResolveAmountFallbacks(t *testing.T) {
	c := scenarioCatalog(t)

	assert.Equal(t, int64(1000), c.ResolveAmount(Month, 0), "default wins when configured")
	assert.Equal(t, int64(100), c.ResolveAmount(OneTime, 2500), "first entry without default")
	assert.Equal(t, int64(0), c.ResolveAmount(Year, 100), "unconfigured duration")
}

func TestOnDurationChanged(t *testing.T) {
	c := scenarioCatalog(t)

	assert.Equal(t, int64(500), c.OnDurationChanged(OneTime, 500))
	assert.Equal(t, int64(100), c.OnDurationChanged(OneTime, 2500))
	assert.Equal(t, int64(1000), c.OnDurationChanged(Month, 100))
}

func TestNewCatalogRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name      string
		durations []Duration
		amounts   map[Duration][]int64
		defaults  map[Duration]int64
		wantErr   error
	}{
		{
			name:    "no durations",
			wantErr: ErrNoDurations,
		},
		{
			name:      "empty list",
			durations: []Duration{Month, Year},
			amounts:   map[Duration][]int64{Month: {500}},
			wantErr:   ErrEmptyCatalog,
		},
		{
			name:      "unknown duration",
			durations: []Duration{"week"},
			amounts:   map[Duration][]int64{"week": {500}},
			wantErr:   ErrUnknownDuration,
		},
		{
			name:      "default not offered",
			durations: []Duration{Month},
			amounts:   map[Duration][]int64{Month: {500}},
			defaults:  map[Duration]int64{Month: 700},
			wantErr:   ErrInvalidDefault,
		},
		{
			name:      "default for unconfigured duration",
			durations: []Duration{Month},
			amounts:   map[Duration][]int64{Month: {500}},
			defaults:  map[Duration]int64{Year: 500},
			wantErr:   ErrUnknownDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.durations, tt.amounts, tt.defaults)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCatalogRejectsNonPositiveAmount(t *testing.T) {
	_, err := NewCatalog([]Duration{Month}, map[Duration][]int64{Month: {500, 0}}, nil)
	require.Error(t, err)
}

func TestCatalogCopiesInput(t *testing.T) {
	amounts := map[Duration][]int64{Month: {500, 1000}}
	c, err := NewCatalog([]Duration{Month}, amounts, nil)
	require.NoError(t, err)

	amounts[Month][0] = 1
	c.Amounts(Month)[1] = 2

	assert.Equal(t, []int64{500, 1000}, c.Amounts(Month))
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("year")
	require.NoError(t, err)
	assert.Equal(t, Year, d)
	assert.Equal(t, "yearly", d.Title())

	_, err = ParseDuration("fortnight")
	require.ErrorIs(t, err, ErrUnknownDuration)
}
