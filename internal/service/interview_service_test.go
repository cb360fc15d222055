package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/pkg/serverutils"
	"interview-insights-be/internal/processing"
	"interview-insights-be/internal/repository/memory"
	"interview-insights-be/pkg/events"
	"interview-insights-be/pkg/llm"
)

const validTranscript = "00:00:10 intro hello candidate walks through their background calmly"

// stubProvider is a canned LLMProvider for orchestrator tests.
type stubProvider struct {
	mu         sync.Mutex
	delay      time.Duration
	err        error
	summary    string
	highlights string
	entities   string
	calls      int
	lastOpts   llm.Options
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	p.calls++
	options := llm.Options{}
	for _, opt := range opts {
		opt(&options)
	}
	p.lastOpts = options
	p.mu.Unlock()

	if p.delay > 0 {
		time.Sleep(p.delay)
	}
	if p.err != nil {
		return "", p.err
	}

	switch {
	case strings.Contains(prompt, "highlights (positive findings)"):
		return p.highlights, nil
	case strings.Contains(prompt, "key candidate information"):
		return p.entities, nil
	default:
		return p.summary, nil
	}
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fixture struct {
	svc      IInterviewService
	provider *stubProvider
	tracker  *processing.Tracker
	repo     *memory.JobRepository
	pubSub   *gochannel.GoChannel
}

func newFixture(provider *stubProvider) *fixture {
	tracker := processing.NewTracker()
	repo := memory.NewJobRepository()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

	svc := NewInterviewService(
		provider,
		tracker,
		processing.NewSimulator(5*time.Millisecond, nil),
		repo,
		pubSub,
		nopLogger{},
		"anthropic/claude-3.5-sonnet",
		1024,
	)
	return &fixture{svc: svc, provider: provider, tracker: tracker, repo: repo, pubSub: pubSub}
}

func TestProcessSuccessMirrorsProviderOutput(t *testing.T) {
	f := newFixture(&stubProvider{
		delay:      30 * time.Millisecond,
		summary:    "ok",
		highlights: `{"highlights":["a"],"lowlights":[]}`,
		entities:   `{"name":"Jane"}`,
	})

	res, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{
		Transcript: validTranscript,
		Model:      "m",
	})
	require.NoError(t, err)

	assert.Equal(t, "ok", res.Summary)
	assert.Equal(t, []string{"a"}, res.Highlights)
	assert.Equal(t, []string{}, res.Lowlights)
	assert.Equal(t, map[string]string{"name": "Jane"}, res.KeyNamedEntities)
	assert.Equal(t, "m", res.Model)
	require.NotNil(t, res.ProcessingTime)
	assert.GreaterOrEqual(t, *res.ProcessingTime, 0.0)

	state := f.tracker.Snapshot()
	assert.Equal(t, processing.PhaseSuccess, state.Phase)
	assert.Equal(t, 100, state.Progress)
	assert.Equal(t, "Complete", state.CurrentTask)
	assert.False(t, state.IsLoading)
	assert.Empty(t, state.Error)

	// One call per chain
	assert.Equal(t, 3, f.provider.callCount())

	// Terminal snapshot is retrievable by job id
	saved, found := f.repo.Get(state.JobID.String())
	require.True(t, found)
	assert.Equal(t, processing.PhaseSuccess, saved.Phase)
}

func TestProcessFailureSurfacesProviderMessage(t *testing.T) {
	f := newFixture(&stubProvider{err: errors.New("rate limited")})

	_, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Code)
	assert.Equal(t, "rate limited", appErr.Message)

	state := f.tracker.Snapshot()
	assert.Equal(t, processing.PhaseFailure, state.Phase)
	assert.Equal(t, "rate limited", state.Error)
	assert.False(t, state.IsLoading)
	assert.Zero(t, state.Progress)
	assert.Empty(t, state.CurrentTask)
	assert.Nil(t, state.Result)
}

func TestProcessBlocksInvalidTranscript(t *testing.T) {
	f := newFixture(&stubProvider{summary: "never used"})

	_, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: ""})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	// Validation failures never reach the provider
	assert.Zero(t, f.provider.callCount())
	assert.Equal(t, processing.PhaseIdle, f.tracker.Snapshot().Phase)
}

func TestProcessRejectsConcurrentSubmission(t *testing.T) {
	f := newFixture(&stubProvider{
		delay:      150 * time.Millisecond,
		summary:    "s",
		highlights: `{"highlights":[],"lowlights":[]}`,
		entities:   `{}`,
	})

	firstDone := make(chan error, 1)
	go func() {
		_, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
		firstDone <- err
	}()

	// Wait until the first submission is definitely in flight.
	require.Eventually(t, f.tracker.IsLoading, time.Second, 5*time.Millisecond)

	_, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.Code)

	require.NoError(t, <-firstDone)
	assert.Equal(t, processing.PhaseSuccess, f.tracker.Snapshot().Phase)
}

func TestProcessUsesDefaultModel(t *testing.T) {
	f := newFixture(&stubProvider{
		summary:    "s",
		highlights: `{"highlights":[],"lowlights":[]}`,
		entities:   `{}`,
	})

	res, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	require.NoError(t, err)

	assert.Equal(t, "anthropic/claude-3.5-sonnet", res.Model)
	assert.Equal(t, "anthropic/claude-3.5-sonnet", f.provider.lastOpts.Model)
	assert.Equal(t, 1024, f.provider.lastOpts.MaxTokens)
	assert.InDelta(t, 0.3, f.provider.lastOpts.Temperature, 1e-9)
}

func TestProcessFallsBackOnMalformedChainOutput(t *testing.T) {
	f := newFixture(&stubProvider{
		summary:    "fine",
		highlights: "not json at all",
		entities:   "```json\nbroken",
	})

	res, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	require.NoError(t, err)

	assert.Equal(t, []string{"Unable to extract highlights due to parsing error"}, res.Highlights)
	assert.Equal(t, []string{"Unable to extract lowlights due to parsing error"}, res.Lowlights)
	assert.Equal(t, map[string]string{"error": "Unable to extract entities due to parsing error"}, res.KeyNamedEntities)
}

func TestProcessAcceptsFencedJSON(t *testing.T) {
	f := newFixture(&stubProvider{
		summary:    "fine",
		highlights: "```json\n{\"highlights\":[\"h1\"],\"lowlights\":[\"l1\"]}\n```",
		entities:   "```\n{\"role\":\"SRE\"}\n```",
	})

	res, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	require.NoError(t, err)

	assert.Equal(t, []string{"h1"}, res.Highlights)
	assert.Equal(t, []string{"l1"}, res.Lowlights)
	assert.Equal(t, map[string]string{"role": "SRE"}, res.KeyNamedEntities)
}

func TestProcessPublishesProgressAndStateEvents(t *testing.T) {
	f := newFixture(&stubProvider{
		delay:      60 * time.Millisecond,
		summary:    "s",
		highlights: `{"highlights":[],"lowlights":[]}`,
		entities:   `{}`,
	})

	msgs, err := f.pubSub.Subscribe(context.Background(), events.TopicProcessing)
	require.NoError(t, err)

	collected := make(chan string, 64)
	go func() {
		for msg := range msgs {
			collected <- string(msg.Payload)
			msg.Ack()
		}
	}()

	_, err = f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	require.NoError(t, err)

	var sawProgress, sawSuccess bool
	deadline := time.After(time.Second)
	for !(sawProgress && sawSuccess) {
		select {
		case payload := <-collected:
			if strings.Contains(payload, `"PROGRESS"`) {
				sawProgress = true
			}
			if strings.Contains(payload, `"success"`) {
				sawSuccess = true
			}
		case <-deadline:
			t.Fatalf("missing events: progress=%v success=%v", sawProgress, sawSuccess)
		}
	}
}

func TestResetReturnsToIdle(t *testing.T) {
	f := newFixture(&stubProvider{
		summary:    "s",
		highlights: `{"highlights":[],"lowlights":[]}`,
		entities:   `{}`,
	})

	_, err := f.svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: validTranscript})
	require.NoError(t, err)

	f.svc.Reset()

	status := f.svc.Status()
	assert.Equal(t, string(processing.PhaseIdle), status.Phase)
	assert.Zero(t, status.Progress)
	assert.Nil(t, status.Result)
	assert.Empty(t, status.Error)
}

func TestValidateTranscriptDelegatesToValidator(t *testing.T) {
	f := newFixture(&stubProvider{})

	findings := f.svc.ValidateTranscript("")
	require.Len(t, findings, 1)
	assert.Equal(t, "Transcript is required", findings[0].Message)

	assert.Empty(t, f.svc.ValidateTranscript(validTranscript))
}
