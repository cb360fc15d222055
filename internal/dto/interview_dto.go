package dto

import (
	"time"

	"github.com/google/uuid"

	"interview-insights-be/pkg/transcript"
)

type ProcessInterviewRequest struct {
	Transcript string `json:"transcript" validate:"required,min=50,max=50000"`
	Model      string `json:"model"`
}

type ProcessInterviewResponse struct {
	Summary          string            `json:"summary"`
	Highlights       []string          `json:"highlights"`
	Lowlights        []string          `json:"lowlights"`
	KeyNamedEntities map[string]string `json:"key_named_entities"`
	Model            string            `json:"model"`
	ProcessingTime   *float64          `json:"processing_time,omitempty"`
}

type ValidateTranscriptRequest struct {
	Transcript string `json:"transcript"`
}

type ValidateTranscriptResponse struct {
	Valid    bool                 `json:"valid"`
	Findings []transcript.Finding `json:"findings"`
}

type ProcessingStatusResponse struct {
	JobID       uuid.UUID                 `json:"job_id"`
	Phase       string                    `json:"phase"`
	IsLoading   bool                      `json:"is_loading"`
	Progress    int                       `json:"progress"`
	CurrentTask string                    `json:"current_task"`
	Error       string                    `json:"error,omitempty"`
	Result      *ProcessInterviewResponse `json:"result,omitempty"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}
