// Command simulation drives the processing pipeline against a canned
// provider so the progress illusion can be inspected without an API key.
package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"interview-insights-be/internal/dto"
	"interview-insights-be/internal/processing"
	"interview-insights-be/internal/repository/memory"
	"interview-insights-be/internal/service"
	"interview-insights-be/pkg/llm"
)

const sampleTranscript = `00:00:10 introduction Welcome to the interview, please introduce yourself
00:02:10 problem description Can you describe a challenging problem you solved?
00:04:00 solution discussion I rebuilt our ingestion pipeline around a message queue
00:07:30 closing Thank you, we will be in touch soon`

// cannedProvider fakes a slow model call with plausible chain outputs.
type cannedProvider struct {
	delay time.Duration
}

func (p *cannedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return p.Generate(ctx, history[len(history)-1].Content, opts...)
}

func (p *cannedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(p.delay):
	}

	switch {
	case strings.Contains(prompt, "highlights (positive findings)"):
		return `{"highlights":["Clear problem framing","Hands-on queue experience"],"lowlights":["Sparse detail on testing"]}`, nil
	case strings.Contains(prompt, "key candidate information"):
		return `{"role":"Backend Engineer","current_company":"Not mentioned","key_skills":"pipelines, message queues"}`, nil
	default:
		return "The candidate walked through a pipeline rebuild with confidence and structure.", nil
	}
}

type consoleLogger struct{}

func (consoleLogger) Debug(module, message string, details map[string]interface{}) {}
func (consoleLogger) Info(module, message string, details map[string]interface{})  {}
func (consoleLogger) Warn(module, message string, details map[string]interface{}) {
	color.Yellow("  warn: %s", message)
}
func (consoleLogger) Error(module, message string, details map[string]interface{}) {
	color.Red("  error: %s", message)
}
func (consoleLogger) Sync() error { return nil }

func main() {
	tracker := processing.NewTracker()
	simulator := processing.NewSimulator(400*time.Millisecond, nil)

	svc := service.NewInterviewService(
		&cannedProvider{delay: 3 * time.Second},
		tracker,
		simulator,
		memory.NewJobRepository(),
		nil, // no event bus needed for a terminal run
		consoleLogger{},
		"anthropic/claude-3.5-sonnet",
		1024,
	)

	color.Cyan("Submitting sample transcript (%d characters)…", len(sampleTranscript))

	type outcome struct {
		res *dto.ProcessInterviewResponse
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := svc.Process(context.Background(), &dto.ProcessInterviewRequest{Transcript: sampleTranscript})
		done <- outcome{res, err}
	}()

	var res *dto.ProcessInterviewResponse
	var err error
poll:
	for {
		select {
		case out := <-done:
			res, err = out.res, out.err
			break poll
		case <-time.After(200 * time.Millisecond):
			s := tracker.Snapshot()
			bar := strings.Repeat("█", s.Progress/5) + strings.Repeat("░", 20-s.Progress/5)
			fmt.Printf("\r  [%s] %3d%%  %-45s", bar, s.Progress, s.CurrentTask)
		}
	}
	fmt.Println()

	if err != nil {
		color.Red("Processing failed: %v", err)
		return
	}

	color.Green("Done in %.3fs (model %s)", *res.ProcessingTime, res.Model)
	fmt.Printf("\nSummary:\n  %s\n", res.Summary)
	color.Green("\nHighlights:")
	for _, h := range res.Highlights {
		fmt.Printf("  + %s\n", h)
	}
	color.Red("\nLowlights:")
	for _, l := range res.Lowlights {
		fmt.Printf("  - %s\n", l)
	}
	fmt.Println("\nKey entities:")
	for k, v := range res.KeyNamedEntities {
		fmt.Printf("  %s: %s\n", k, v)
	}
}
