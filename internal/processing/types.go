package processing

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the lifecycle phase of one transcript submission.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseSubmitting Phase = "submitting"
	PhaseSuccess    Phase = "success"
	PhaseFailure    Phase = "failure"
)

// InterviewResult is the structured analysis produced for one transcript.
// It is immutable once produced; a new submission replaces it wholesale.
type InterviewResult struct {
	Summary          string            `json:"summary"`
	Highlights       []string          `json:"highlights"`
	Lowlights        []string          `json:"lowlights"`
	KeyNamedEntities map[string]string `json:"key_named_entities"`
	ProcessingTime   *float64          `json:"processing_time,omitempty"`
	Model            string            `json:"model"`
}

// State is a snapshot of the processing lifecycle for the current submission.
type State struct {
	JobID       uuid.UUID        `json:"job_id"`
	Phase       Phase            `json:"phase"`
	IsLoading   bool             `json:"is_loading"`
	Progress    int              `json:"progress"`
	CurrentTask string           `json:"current_task"`
	Error       string           `json:"error,omitempty"`
	Result      *InterviewResult `json:"result,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}
