package events

import "time"

// Topic names for the in-process event bus.
const (
	TopicProcessing = "INTERVIEW_PROCESSING"
)

// Event types carried on TopicProcessing.
const (
	TypeProgress = "PROGRESS"
	TypeState    = "STATE"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "PROGRESS").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewProgressEvent describes one synthetic progress tick for a submission.
func NewProgressEvent(jobID string, progress int, task string) Event {
	return BaseEvent{
		Type: TypeProgress,
		Data: map[string]interface{}{
			"job_id":       jobID,
			"progress":     progress,
			"current_task": task,
		},
		OccurredAt: time.Now().UTC(),
	}
}

// NewStateEvent describes a lifecycle phase change for a submission.
func NewStateEvent(jobID string, phase string, errMsg string) Event {
	return BaseEvent{
		Type: TypeState,
		Data: map[string]interface{}{
			"job_id": jobID,
			"phase":  phase,
			"error":  errMsg,
		},
		OccurredAt: time.Now().UTC(),
	}
}
