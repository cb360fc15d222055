package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/logger"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/internal/processing"
	"interview-insights-be/internal/repository/memory"
	"interview-insights-be/pkg/events"
	"interview-insights-be/pkg/llm"
	"interview-insights-be/pkg/transcript"
)

// IInterviewService orchestrates one transcript submission at a time:
// validation, the progress illusion, the parallel model calls and the
// terminal state transition.
type IInterviewService interface {
	Process(ctx context.Context, req *dto.ProcessInterviewRequest) (*dto.ProcessInterviewResponse, error)
	ValidateTranscript(text string) []transcript.Finding
	Status() *dto.ProcessingStatusResponse
	Reset()
}

type interviewService struct {
	llmProvider  llm.LLMProvider
	tracker      *processing.Tracker
	simulator    *processing.Simulator
	jobRepo      *memory.JobRepository
	publisher    message.Publisher
	logger       logger.ILogger
	defaultModel string
	maxTokens    int
}

func NewInterviewService(
	llmProvider llm.LLMProvider,
	tracker *processing.Tracker,
	simulator *processing.Simulator,
	jobRepo *memory.JobRepository,
	publisher message.Publisher,
	sysLogger logger.ILogger,
	defaultModel string,
	maxTokens int,
) IInterviewService {
	return &interviewService{
		llmProvider:  llmProvider,
		tracker:      tracker,
		simulator:    simulator,
		jobRepo:      jobRepo,
		publisher:    publisher,
		logger:       sysLogger,
		defaultModel: defaultModel,
		maxTokens:    maxTokens,
	}
}

// analysis carries the combined output of the three parallel chains.
type analysis struct {
	summary    string
	highlights []string
	lowlights  []string
	entities   map[string]string
}

func (s *interviewService) Process(ctx context.Context, req *dto.ProcessInterviewRequest) (*dto.ProcessInterviewResponse, error) {
	start := time.Now()

	// 1. Gate: one submission in flight at a time
	if s.tracker.IsLoading() {
		return nil, serverutils.NewAppError(fiber.StatusConflict, "An interview is already being processed")
	}

	// 2. Validate before anything leaves the process
	if findings := transcript.Validate(req.Transcript); len(findings) > 0 {
		return nil, serverutils.NewAppErrorWithDetails(fiber.StatusBadRequest, "Transcript validation failed", findings)
	}

	normalized := transcript.Normalize(req.Transcript)
	if n := transcript.CountTimestampLines(normalized); n < 2 {
		s.logger.Warn("InterviewService", "Transcript may not contain proper timestamp formatting", map[string]interface{}{
			"timestamp_lines": n,
		})
	}

	model := req.Model
	if model == "" {
		model = s.defaultModel
	}

	// 3. Enter submitting state
	jobID := uuid.New()
	if err := s.tracker.Begin(jobID); err != nil {
		return nil, serverutils.NewAppError(fiber.StatusConflict, "An interview is already being processed")
	}
	s.saveAndPublishState()

	s.logger.Info("InterviewService", "Processing interview transcript", map[string]interface{}{
		"job_id": jobID.String(),
		"length": len(normalized),
		"model":  model,
	})

	// 4. Progress illusion runs while the model call is in flight. The stop
	// func MUST run before any terminal transition, otherwise a late tick
	// would keep mutating state.
	stop := s.simulator.Start(s.tracker.Progress, func(progress int, task string) {
		s.tracker.Advance(progress, task)
		s.jobRepo.Save(s.tracker.Snapshot())
		s.publish(events.NewProgressEvent(jobID.String(), progress, task))
	})

	// 5. The single suspension point: three chains against the provider
	result, err := s.analyze(ctx, normalized, model)
	stop()

	if err != nil {
		failMsg := err.Error()
		if failErr := s.tracker.Fail(failMsg); failErr != nil {
			s.logger.Error("InterviewService", "Failure transition rejected", map[string]interface{}{"error": failErr.Error()})
		}
		s.saveAndPublishState()
		s.logger.Error("InterviewService", "Interview processing failed", map[string]interface{}{
			"job_id": jobID.String(),
			"error":  failMsg,
		})
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, failMsg)
	}

	// 6. Commit terminal state
	elapsed := roundSeconds(time.Since(start))
	final := &processing.InterviewResult{
		Summary:          result.summary,
		Highlights:       result.highlights,
		Lowlights:        result.lowlights,
		KeyNamedEntities: result.entities,
		ProcessingTime:   &elapsed,
		Model:            model,
	}
	if err := s.tracker.Complete(final); err != nil {
		s.logger.Error("InterviewService", "Success transition rejected", map[string]interface{}{"error": err.Error()})
	}
	s.saveAndPublishState()

	s.logger.Info("InterviewService", "Interview processing completed", map[string]interface{}{
		"job_id":          jobID.String(),
		"processing_time": elapsed,
	})

	return resultToResponse(final), nil
}

// analyze runs the summary, highlights/lowlights and entity chains in
// parallel and combines their output. The first chain error wins.
func (s *interviewService) analyze(ctx context.Context, text, model string) (*analysis, error) {
	opts := []llm.Option{
		llm.WithModel(model),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(s.maxTokens),
	}

	prompts := []string{
		fmt.Sprintf(summaryPrompt, text),
		fmt.Sprintf(highlightsPrompt, text),
		fmt.Sprintf(entitiesPrompt, text),
	}

	outputs := make([]string, len(prompts))
	errs := make([]error, len(prompts))

	var wg sync.WaitGroup
	for i, prompt := range prompts {
		wg.Add(1)
		go func(i int, prompt string) {
			defer wg.Done()
			outputs[i], errs[i] = s.llmProvider.Generate(ctx, prompt, opts...)
		}(i, prompt)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return s.combine(outputs[0], outputs[1], outputs[2]), nil
}

// combine maps the raw chain outputs into the result shape, falling back to
// placeholder entries when the model returned malformed JSON.
func (s *interviewService) combine(summaryOut, highlightsOut, entitiesOut string) *analysis {
	out := &analysis{
		summary:    strings.TrimSpace(summaryOut),
		highlights: []string{},
		lowlights:  []string{},
		entities:   map[string]string{},
	}

	var hl struct {
		Highlights []string `json:"highlights"`
		Lowlights  []string `json:"lowlights"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(highlightsOut)), &hl); err != nil {
		s.logger.Warn("InterviewService", "Failed to parse highlights/lowlights JSON, using fallback", map[string]interface{}{"error": err.Error()})
		out.highlights = []string{"Unable to extract highlights due to parsing error"}
		out.lowlights = []string{"Unable to extract lowlights due to parsing error"}
	} else {
		if hl.Highlights != nil {
			out.highlights = hl.Highlights
		}
		if hl.Lowlights != nil {
			out.lowlights = hl.Lowlights
		}
	}

	var entities map[string]string
	if err := json.Unmarshal([]byte(stripCodeFence(entitiesOut)), &entities); err != nil {
		s.logger.Warn("InterviewService", "Failed to parse entities JSON, using fallback", map[string]interface{}{"error": err.Error()})
		out.entities = map[string]string{"error": "Unable to extract entities due to parsing error"}
	} else {
		out.entities = entities
	}

	return out
}

func (s *interviewService) ValidateTranscript(text string) []transcript.Finding {
	s.tracker.MarkValidating()
	defer s.tracker.MarkIdle()
	return transcript.Validate(text)
}

func (s *interviewService) Status() *dto.ProcessingStatusResponse {
	state := s.tracker.Snapshot()
	return &dto.ProcessingStatusResponse{
		JobID:       state.JobID,
		Phase:       string(state.Phase),
		IsLoading:   state.IsLoading,
		Progress:    state.Progress,
		CurrentTask: state.CurrentTask,
		Error:       state.Error,
		Result:      resultToResponse(state.Result),
		UpdatedAt:   state.UpdatedAt,
	}
}

func (s *interviewService) Reset() {
	s.tracker.Reset()
	s.saveAndPublishState()
}

func (s *interviewService) saveAndPublishState() {
	state := s.tracker.Snapshot()
	if state.JobID != uuid.Nil {
		s.jobRepo.Save(state)
	}
	s.publish(events.NewStateEvent(state.JobID.String(), string(state.Phase), state.Error))
}

func (s *interviewService) publish(ev events.Event) {
	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type":      ev.EventType(),
		"data":      ev.Payload(),
		"timestamp": ev.Timestamp(),
	})
	if err != nil {
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.publisher.Publish(events.TopicProcessing, msg); err != nil {
		s.logger.Warn("InterviewService", "Failed to publish processing event", map[string]interface{}{"error": err.Error()})
	}
}

func resultToResponse(r *processing.InterviewResult) *dto.ProcessInterviewResponse {
	if r == nil {
		return nil
	}
	return &dto.ProcessInterviewResponse{
		Summary:          r.Summary,
		Highlights:       r.Highlights,
		Lowlights:        r.Lowlights,
		KeyNamedEntities: r.KeyNamedEntities,
		Model:            r.Model,
		ProcessingTime:   r.ProcessingTime,
	}
}

// stripCodeFence removes a surrounding markdown code fence, which chat
// models often wrap JSON answers in.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*1000) / 1000
}
