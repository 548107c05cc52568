package domain

// PollState is the client-side poller state machine. A run always observes
// a prefix of Submitting, Polling*, then at most one of Done or Failed.
type PollState string

const (
	PollStateSubmitting PollState = "submitting"
	PollStatePolling    PollState = "polling"
	PollStateDone       PollState = "done"
	PollStateFailed     PollState = "failed"
)

// Transition is one observed poller state change. RawStatus holds the
// server vocabulary string that caused it, when one was involved.
type Transition struct {
	State     PollState
	RawStatus string
	Job       Job
}
