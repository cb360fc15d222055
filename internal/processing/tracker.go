package processing

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSubmissionInFlight is returned when a second submission starts while
// one is still being processed.
var ErrSubmissionInFlight = errors.New("a submission is already being processed")

// ErrNotSubmitting is returned for terminal transitions requested outside
// the submitting phase.
var ErrNotSubmitting = errors.New("no submission in flight")

// GenericFailureMessage replaces empty failure messages so the UI always
// has something to show.
const GenericFailureMessage = "Processing failed. Please try again."

// Tracker owns the processing state for the single allowed in-flight
// submission and guards its transitions. Snapshots are returned by value;
// mutation happens only through the transition methods.
type Tracker struct {
	mu    sync.RWMutex
	state State
}

// NewTracker creates a tracker in the idle phase.
func NewTracker() *Tracker {
	return &Tracker{
		state: State{Phase: PhaseIdle, UpdatedAt: time.Now().UTC()},
	}
}

// Begin starts a new submission. It rejects the call while another
// submission is in flight, otherwise it discards the previous result and
// error and enters the submitting phase with progress zero.
func (t *Tracker) Begin(jobID uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}

	t.state = State{
		JobID:     jobID,
		Phase:     PhaseSubmitting,
		IsLoading: true,
		Progress:  0,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

// Advance moves the perceived progress forward while a submission is in
// flight. Regressions and out-of-phase ticks are ignored so a late
// simulator tick can never corrupt a terminal state.
func (t *Tracker) Advance(progress int, task string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != PhaseSubmitting {
		return
	}
	if progress <= t.state.Progress {
		return
	}
	if progress > 100 {
		progress = 100
	}

	t.state.Progress = progress
	t.state.CurrentTask = task
	t.state.UpdatedAt = time.Now().UTC()
}

// Complete settles the in-flight submission as successful: progress is
// forced to 100 and the result slot is filled.
func (t *Tracker) Complete(result *InterviewResult) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != PhaseSubmitting {
		return ErrNotSubmitting
	}

	t.state.Phase = PhaseSuccess
	t.state.IsLoading = false
	t.state.Progress = 100
	t.state.CurrentTask = "Complete"
	t.state.Error = ""
	t.state.Result = result
	t.state.UpdatedAt = time.Now().UTC()
	return nil
}

// Fail settles the in-flight submission as failed: progress is discarded,
// the task label cleared and the error message stored. An empty message is
// replaced with GenericFailureMessage.
func (t *Tracker) Fail(message string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase != PhaseSubmitting {
		return ErrNotSubmitting
	}
	if message == "" {
		message = GenericFailureMessage
	}

	t.state.Phase = PhaseFailure
	t.state.IsLoading = false
	t.state.Progress = 0
	t.state.CurrentTask = ""
	t.state.Error = message
	t.state.Result = nil
	t.state.UpdatedAt = time.Now().UTC()
	return nil
}

// MarkValidating flags that a draft validation pass is running. Only
// meaningful from idle; any other phase keeps its value.
func (t *Tracker) MarkValidating() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase == PhaseIdle {
		t.state.Phase = PhaseValidating
		t.state.UpdatedAt = time.Now().UTC()
	}
}

// MarkIdle returns a validating tracker to idle after the pass finishes.
func (t *Tracker) MarkIdle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Phase == PhaseValidating {
		t.state.Phase = PhaseIdle
		t.state.UpdatedAt = time.Now().UTC()
	}
}

// Reset returns the tracker to idle from any phase, discarding result,
// error and progress.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = State{Phase: PhaseIdle, UpdatedAt: time.Now().UTC()}
}

// Snapshot returns a copy of the current state. The embedded result pointer
// is shared but the result itself is immutable once produced.
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// IsLoading reports whether a submission is in flight.
func (t *Tracker) IsLoading() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.IsLoading
}

// Progress returns the current perceived progress value.
func (t *Tracker) Progress() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Progress
}
