package questions

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MaxQuestions caps how many questions one generation call may yield.
const MaxQuestions = 5

// ErrEmptyResult indicates the upstream response contained nothing parseable.
var ErrEmptyResult = errors.New("no questions could be extracted from response")

var (
	numberedPattern = regexp.MustCompile(`\d+\.\s+`)
	labeledPattern  = regexp.MustCompile(`Q\d+:\s+`)
)

// ParseQuestions extracts discrete questions from free-text model output.
// It tries, in order: a numbered list ("1. ", "2. ", ...), a "Q<n>: " list,
// then newline splitting keeping only lines longer than 10 characters.
func ParseQuestions(text string) ([]string, error) {
	var parts []string
	switch {
	case strings.Contains(text, "1."):
		parts = numberedPattern.Split(text, -1)
	case strings.Contains(text, "Q1:"):
		parts = labeledPattern.Split(text, -1)
	default:
		for _, line := range strings.Split(text, "\n") {
			if len(strings.TrimSpace(line)) > 10 {
				parts = append(parts, line)
			}
		}
	}

	questions := make([]string, 0, MaxQuestions)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		questions = append(questions, p)
		if len(questions) == MaxQuestions {
			break
		}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyResult, text)
	}
	return questions, nil
}
