package donation

// OutcomeState is the derived phase of a payment attempt.
type OutcomeState string

const (
	StateIdle       OutcomeState = "idle"
	StateProcessing OutcomeState = "processing"
	StateSuccess    OutcomeState = "success"
	StateError      OutcomeState = "error"
)

// Outcome is the result of the current payment attempt as reported by the
// payment collaborators. The zero value is idle.
type Outcome struct {
	Processing bool   `json:"processing"`
	Success    bool   `json:"success"`
	Error      string `json:"error"`
}

// State derives the phase. An error message wins over success, and both win
// over processing.
func (o Outcome) State() OutcomeState {
	switch {
	case o.Error != "":
		return StateError
	case o.Success:
		return StateSuccess
	case o.Processing:
		return StateProcessing
	}
	return StateIdle
}

// Terminal reports whether only a reset can leave the current state.
func (o Outcome) Terminal() bool {
	s := o.State()
	return s == StateSuccess || s == StateError
}

// IsResolved is the single condition for replacing the form with the
// completion view.
func (o Outcome) IsResolved() bool {
	return o.Processing || o.Success || o.Error != ""
}

type eventKind int

const (
	eventChanged eventKind = iota
	eventReset
)

// Event is a callback from a payment collaborator or the reset action.
type Event struct {
	kind    eventKind
	outcome Outcome
}

// OutcomeChanged is the collaborators' onDonationOutcomeChanged callback.
func OutcomeChanged(success, processing bool, errMsg string) Event {
	return Event{kind: eventChanged, outcome: Outcome{Processing: processing, Success: success, Error: errMsg}}
}

// ProcessingStarted marks the start of a payment attempt.
func ProcessingStarted() Event {
	return OutcomeChanged(false, true, "")
}

// Succeeded marks a completed payment.
func Succeeded() Event {
	return OutcomeChanged(true, false, "")
}

// Failed marks a failed payment; msg is shown verbatim.
func Failed(msg string) Event {
	if msg == "" {
		msg = "Something went wrong processing your donation. Please try again."
	}
	return OutcomeChanged(false, false, msg)
}

// Reset returns the outcome to idle.
func Reset() Event {
	return Event{kind: eventReset}
}

// Reduce applies e to o. Reset always yields idle. Once the outcome is
// terminal every other event is ignored. Reported outcomes are normalised so
// that at most one of processing, success and error is set.
func Reduce(o Outcome, e Event) Outcome {
	if e.kind == eventReset {
		return Outcome{}
	}
	if o.Terminal() {
		return o
	}
	switch e.outcome.State() {
	case StateError:
		return Outcome{Error: e.outcome.Error}
	case StateSuccess:
		return Outcome{Success: true}
	case StateProcessing:
		return Outcome{Processing: true}
	}
	return Outcome{}
}
