package donation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceHappyPath(t *testing.T) {
	var o Outcome
	assert.Equal(t, StateIdle, o.State())
	assert.False(t, o.IsResolved())

	o = Reduce(o, ProcessingStarted())
	assert.Equal(t, StateProcessing, o.State())
	assert.True(t, o.IsResolved())

	o = Reduce(o, Succeeded())
	assert.Equal(t, Outcome{Success: true}, o)
	assert.True(t, o.Terminal())

	o = Reduce(o, Reset())
	assert.Equal(t, Outcome{}, o)
}

func TestReduceTerminalIgnoresEverythingButReset(t *testing.T) {
	terminals := []Outcome{{Success: true}, {Error: "card declined"}}
	events := []Event{ProcessingStarted(), Succeeded(), Failed("other"), OutcomeChanged(false, false, "")}

	for _, start := range terminals {
		for _, e := range events {
			assert.Equal(t, start, Reduce(start, e))
		}
		assert.Equal(t, Outcome{}, Reduce(start, Reset()))
	}
}

func TestReduceNormalisesReportedOutcome(t *testing.T) {
	got := Reduce(Outcome{}, OutcomeChanged(true, true, "boom"))
	assert.Equal(t, Outcome{Error: "boom"}, got)

	got = Reduce(Outcome{Processing: true}, OutcomeChanged(true, true, ""))
	assert.Equal(t, Outcome{Success: true}, got)
}

func TestReduceAcceptsOutOfOrderCallbacks(t *testing.T) {
	// a collaborator that skips the processing callback still lands in a terminal state
	assert.Equal(t, StateSuccess, Reduce(Outcome{}, Succeeded()).State())
	assert.Equal(t, StateError, Reduce(Outcome{}, Failed("x")).State())

	// a cancelled attempt goes back to idle
	assert.Equal(t, Outcome{}, Reduce(Outcome{Processing: true}, OutcomeChanged(false, false, "")))
}

func TestReachableStates(t *testing.T) {
	events := []Event{ProcessingStarted(), Succeeded(), Failed("e"), OutcomeChanged(false, false, ""), Reset()}
	seen := map[OutcomeState]bool{}
	frontier := []Outcome{{}}
	visited := map[Outcome]bool{{}: true}

	for len(frontier) > 0 {
		o := frontier[0]
		frontier = frontier[1:]
		seen[o.State()] = true
		for _, e := range events {
			next := Reduce(o, e)
			if !visited[next] {
				visited[next] = true
				frontier = append(frontier, next)
			}
		}
	}

	assert.Equal(t, map[OutcomeState]bool{
		StateIdle: true, StateProcessing: true, StateSuccess: true, StateError: true,
	}, seen)
}

func TestFailedDefaultMessage(t *testing.T) {
	o := Reduce(Outcome{Processing: true}, Failed(""))
	assert.Equal(t, StateError, o.State())
	assert.NotEmpty(t, o.Error)
}

func TestIsResolvedWithErrorOnly(t *testing.T) {
	o := Outcome{Error: "declined"}
	assert.True(t, o.IsResolved())
	assert.False(t, o.Processing)
	assert.False(t, o.Success)
}
