package pipeline

import (
	"sync"
	"time"

	"github.com/kbukum/railway/observability"
)

// State is the state of one stage within a run. States only move forward:
// a stage leaves StatePending once and never changes again.
type State int

const (
	// StatePending means the stage has not been reached.
	StatePending State = iota
	// StateSucceeded means the stage produced a value.
	StateSucceeded
	// StateFailed means the stage failed with a classified kind.
	StateFailed
	// StateEscaped means the stage raised an unclassified error.
	StateEscaped
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

func (s State) outcome() string {
	switch s {
	case StateSucceeded:
		return observability.OutcomeSuccess
	case StateFailed:
		return observability.OutcomeFailure
	default:
		return observability.OutcomeEscaped
	}
}

// Event reports a resolved stage, or a finished run when Index is -1.
type Event struct {
	RunID    string
	Pipeline string
	Stage    string
	Index    int
	State    State
	// Kind is the failure kind's String form when State is StateFailed.
	Kind string
	// Err is the escaped error when State is StateEscaped.
	Err      error
	Duration time.Duration
}

// IsRun reports whether e describes a whole run rather than one stage.
func (e Event) IsRun() bool { return e.Index < 0 }

// Recorder collects events. Its Observe method can be passed to
// WithObserver. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Observe records e.
func (r *Recorder) Observe(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// States returns the state of each of n stages in run runID. Stages without
// an event are pending.
func (r *Recorder) States(runID string, n int) []State {
	states := make([]State, n)
	for _, e := range r.Events() {
		if e.RunID == runID && !e.IsRun() && e.Index < n {
			states[e.Index] = e.State
		}
	}
	return states
}

// Run returns the run event for runID, if the run has finished.
func (r *Recorder) Run(runID string) (Event, bool) {
	for _, e := range r.Events() {
		if e.RunID == runID && e.IsRun() {
			return e, true
		}
	}
	return Event{}, false
}
