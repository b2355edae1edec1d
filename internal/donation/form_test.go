package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormScenario(t *testing.T) {
	c := scenarioCatalog(t)

	f, err := NewForm(c, Selection{Duration: Month})
	require.NoError(t, err)
	assert.Equal(t, Selection{Duration: Month, Amount: 1000}, f.Selection())

	require.NoError(t, f.SelectAmount(2500))
	assert.Equal(t, Selection{Duration: Month, Amount: 2500}, f.Selection())

	require.NoError(t, f.SelectDuration(OneTime))
	assert.Equal(t, Selection{Duration: OneTime, Amount: 100}, f.Selection())
}

func TestFormKeepsAmountAcrossDurations(t *testing.T) {
	c := scenarioCatalog(t)
	f, err := NewForm(c, Selection{Duration: Month, Amount: 500})
	require.NoError(t, err)

	require.NoError(t, f.SelectDuration(OneTime))
	assert.Equal(t, int64(500), f.Selection().Amount)
}

func TestFormRejectsInvalidSelections(t *testing.T) {
	c := scenarioCatalog(t)
	f, err := NewForm(c, Selection{Duration: Month})
	require.NoError(t, err)

	require.ErrorIs(t, f.SelectAmount(100), ErrAmountNotOffered)
	require.ErrorIs(t, f.SelectDuration(Year), ErrUnknownDuration)
	assert.Equal(t, Selection{Duration: Month, Amount: 1000}, f.Selection())

	_, err = NewForm(c, Selection{Duration: Year})
	require.ErrorIs(t, err, ErrUnknownDuration)
}

func TestFormLockedWhileResolved(t *testing.T) {
	c := scenarioCatalog(t)
	f, err := NewForm(c, Selection{Duration: Month})
	require.NoError(t, err)

	f.Dispatch(ProcessingStarted())
	require.ErrorIs(t, f.SelectAmount(500), ErrFormLocked)
	require.ErrorIs(t, f.SelectDuration(OneTime), ErrFormLocked)

	f.Dispatch(Failed("card declined"))
	assert.Equal(t, "card declined", f.Outcome().Error)

	f.Dispatch(Reset())
	require.NoError(t, f.SelectAmount(500))
}

func TestFormView(t *testing.T) {
	c := scenarioCatalog(t)
	f, err := NewForm(c, Selection{Duration: Month, Amount: 2500})
	require.NoError(t, err)

	v := f.View()
	assert.False(t, v.Resolved)
	assert.Equal(t, StateIdle, v.State)
	assert.Equal(t, "$25", v.AmountLabel)
	assert.Equal(t, "1,250 hours", v.ImpactLabel)
	assert.Equal(t, "Confirm your donation of $25 per month", v.ConfirmationLabel)
	assert.True(t, v.Recurring)
	assert.NotEmpty(t, v.PayPalHeading)
	require.Len(t, v.Tabs, 2)

	month := v.Tabs[0]
	assert.True(t, month.Active)
	assert.Equal(t, "monthly", month.Title)
	require.Len(t, month.Options, 3)
	assert.True(t, month.Options[2].Selected)
	assert.Equal(t, "monthly-donation-2500", month.Options[2].ID)

	onetime := v.Tabs[1]
	assert.False(t, onetime.Active)
	assert.Equal(t, int64(100), onetime.Amount)
	assert.True(t, onetime.Options[0].Selected)
}

func TestFormViewHidesTabs(t *testing.T) {
	c := scenarioCatalog(t)
	f, err := NewForm(c, Selection{Duration: Month})
	require.NoError(t, err)

	f.HideAmountOptions(true)
	v := f.View()
	assert.True(t, v.OptionsHidden)
	assert.Empty(t, v.Tabs)

	f.HideAmountOptions(false)
	f.Dispatch(Succeeded())
	v = f.View()
	assert.True(t, v.Resolved)
	assert.Empty(t, v.Tabs)

	f.HideAmountOptions(true)
	f.Dispatch(Reset())
	assert.False(t, f.View().OptionsHidden)
}

func TestFormClaim(t *testing.T) {
	f, err := NewForm(scenarioCatalog(t), Selection{Duration: Month})
	require.NoError(t, err)

	require.NoError(t, f.Claim())
	assert.True(t, f.Claimed())
	assert.ErrorIs(t, f.Claim(), ErrFormLocked, "one attempt at a time")

	f.Release()
	assert.False(t, f.Claimed())

	f.Dispatch(Succeeded())
	assert.ErrorIs(t, f.Claim(), ErrFormLocked, "a resolved form cannot start a new attempt")
}
