package domain

type RunID string

type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusExpired        RunStatus = "expired"
)

// Transient reports whether the run is still being worked on by the
// service. Any other status, known or not, ends the poll loop.
func (s RunStatus) Transient() bool {
	return s == RunStatusQueued || s == RunStatusInProgress
}

// Run is one execution of the agent against a thread. Created per user
// turn and discarded after the reply is extracted.
type Run struct {
	ID     RunID
	Status RunStatus
}
