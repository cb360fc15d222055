package transcript

import (
	"regexp"
	"strings"
)

// timestampPattern matches lines that start with HH:MM:SS or MM:SS markers,
// e.g. "00:02:10   problem description   ...".
var timestampPattern = regexp.MustCompile(`^\s*\d{1,2}:\d{2}(:\d{2})?\s+`)

// Normalize trims the transcript, collapses whitespace runs inside each line
// and drops empty lines. The result is what gets sent to the model.
func Normalize(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	normalized := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			normalized = append(normalized, line)
		}
	}

	return strings.Join(normalized, "\n")
}

// CountTimestampLines reports how many lines carry a timestamp marker.
// Fewer than 2 usually means the transcript is not properly timestamped;
// callers log a warning but do not reject the input.
func CountTimestampLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if timestampPattern.MatchString(line) {
			count++
		}
	}
	return count
}
