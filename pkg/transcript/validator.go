package transcript

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MinLength is the minimum transcript length (in characters) accepted for processing.
	MinLength = 50
	// MaxLength is the maximum transcript length (in characters) accepted for processing.
	MaxLength = 50000
)

// Finding is a single validation complaint about a submitted transcript.
type Finding struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate checks the transcript against all submission rules and returns
// every finding. All rules are evaluated independently so the caller gets
// the complete list, not just the first failure. An empty result means the
// transcript is submittable.
func Validate(text string) []Finding {
	findings := []Finding{}

	trimmed := strings.TrimSpace(text)
	length := utf8.RuneCountInString(trimmed)

	if trimmed == "" {
		findings = append(findings, Finding{
			Field:   "transcript",
			Message: "Transcript is required",
		})
	}

	if trimmed != "" && length < MinLength {
		findings = append(findings, Finding{
			Field:   "transcript",
			Message: fmt.Sprintf("Transcript must be at least %d characters long", MinLength),
		})
	}

	if length > MaxLength {
		findings = append(findings, Finding{
			Field:   "transcript",
			Message: fmt.Sprintf("Transcript must be less than %d characters", MaxLength),
		})
	}

	return findings
}
