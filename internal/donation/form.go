package donation

import (
	"errors"
	"fmt"
)

// ErrFormLocked is returned when the selection is changed while a payment
// attempt is in flight or resolved.
var ErrFormLocked = errors.New("donation form is locked until reset")

// Selection is the chosen duration and amount. Amount is always offered for
// Duration.
type Selection struct {
	Duration Duration `json:"duration"`
	Amount   int64    `json:"amount"`
}

// Form is the state of one donation form. It is not safe for concurrent use;
// the owner serialises events.
type Form struct {
	catalog       *Catalog
	selection     Selection
	optionsHidden bool
	outcome       Outcome
	claimed       bool
}

// NewForm mounts a form with the given initial selection. The amount is
// resolved against the catalog so the form never starts invalid.
func NewForm(catalog *Catalog, initial Selection) (*Form, error) {
	if !catalog.Has(initial.Duration) {
		return nil, fmt.Errorf("%w: initial duration %q", ErrUnknownDuration, initial.Duration)
	}
	return &Form{
		catalog: catalog,
		selection: Selection{
			Duration: initial.Duration,
			Amount:   catalog.ResolveAmount(initial.Duration, initial.Amount),
		},
	}, nil
}

// Selection returns the current selection.
func (f *Form) Selection() Selection { return f.selection }

// Outcome returns the current payment outcome.
func (f *Form) Outcome() Outcome { return f.outcome }

// SelectDuration switches the duration and re-resolves the amount in one step.
func (f *Form) SelectDuration(d Duration) error {
	if f.outcome.IsResolved() {
		return ErrFormLocked
	}
	if !f.catalog.Has(d) {
		return fmt.Errorf("%w: %q", ErrUnknownDuration, d)
	}
	f.selection = Selection{Duration: d, Amount: f.catalog.OnDurationChanged(d, f.selection.Amount)}
	return nil
}

// SelectAmount picks one of the amounts offered for the current duration.
func (f *Form) SelectAmount(amount int64) error {
	if f.outcome.IsResolved() {
		return ErrFormLocked
	}
	if !f.catalog.Offers(f.selection.Duration, amount) {
		return fmt.Errorf("%w: %s %d", ErrAmountNotOffered, f.selection.Duration, amount)
	}
	f.selection.Amount = amount
	return nil
}

// HideAmountOptions is the card widget's onProcessingChanged callback.
func (f *Form) HideAmountOptions(hide bool) {
	f.optionsHidden = hide
}

// Claim marks a payment attempt driven by the server. While claimed, the
// attempt's result can only be reported by the claimant through Release.
func (f *Form) Claim() error {
	if f.claimed || f.outcome.IsResolved() {
		return ErrFormLocked
	}
	f.claimed = true
	return nil
}

// Release ends a claimed attempt.
func (f *Form) Release() {
	f.claimed = false
}

// Claimed reports whether a server-driven payment attempt is in flight.
func (f *Form) Claimed() bool { return f.claimed }

// Dispatch feeds a payment callback or reset through the outcome reducer.
func (f *Form) Dispatch(e Event) Outcome {
	f.outcome = Reduce(f.outcome, e)
	if e.kind == eventReset {
		f.optionsHidden = false
	}
	return f.outcome
}

// AmountOption is one amount button inside a duration tab.
type AmountOption struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

// Tab is one duration tab of the form.
type Tab struct {
	Duration    Duration       `json:"duration"`
	Title       string         `json:"title"`
	Active      bool           `json:"active"`
	Amount      int64          `json:"amount"`
	Description string         `json:"description"`
	Options     []AmountOption `json:"options"`
}

// View is everything a renderer needs to draw the form or the completion
// screen.
type View struct {
	Resolved          bool         `json:"resolved"`
	State             OutcomeState `json:"state"`
	Outcome           Outcome      `json:"outcome"`
	Selection         Selection    `json:"selection"`
	AmountLabel       string       `json:"amountLabel"`
	ImpactLabel       string       `json:"impactLabel"`
	ConfirmationLabel string       `json:"confirmationLabel"`
	Recurring         bool         `json:"recurring"`
	OptionsHidden     bool         `json:"optionsHidden"`
	PayPalHeading     string       `json:"paypalHeading,omitempty"`
	CardHeading       string       `json:"cardHeading,omitempty"`
	Tabs              []Tab        `json:"tabs,omitempty"`
}

// View snapshots the form. Tabs are omitted while options are hidden or the
// outcome is resolved.
func (f *Form) View() View {
	sel := f.selection
	v := View{
		Resolved:          f.outcome.IsResolved(),
		State:             f.outcome.State(),
		Outcome:           f.outcome,
		Selection:         sel,
		AmountLabel:       FormatCurrencyLabel(sel.Amount),
		ImpactLabel:       FormatImpactLabel(sel.Amount),
		ConfirmationLabel: BuildConfirmationLabel(sel.Duration, sel.Amount),
		Recurring:         sel.Duration.Recurring(),
		OptionsHidden:     f.optionsHidden,
		PayPalHeading:     PayPalHeading(sel.Duration, sel.Amount),
		CardHeading:       CardHeading(sel.Duration),
	}
	if v.Resolved || f.optionsHidden {
		return v
	}
	for _, d := range f.catalog.Durations() {
		active := f.catalog.ResolveAmount(d, sel.Amount)
		tab := Tab{
			Duration:    d,
			Title:       d.Title(),
			Active:      d == sel.Duration,
			Amount:      active,
			Description: DescriptionLabel(d, active),
		}
		for _, amount := range f.catalog.Amounts(d) {
			tab.Options = append(tab.Options, AmountOption{
				ID:       AmountOptionID(d, amount),
				Amount:   amount,
				Label:    FormatCurrencyLabel(amount),
				Selected: amount == active,
			})
		}
		v.Tabs = append(v.Tabs, tab)
	}
	return v
}
