// Package scoring grades submitted interview answers: a per-question
// qualitative rating, a numeric aggregate score, and an overall narrative.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/interview-prep/internal/db"
	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/prompts"
)

// MaxScore caps the aggregate score. The scheme never reports 100, to avoid
// implying a perfect or complete evaluation.
const MaxScore = 95

const pointsPerQuestion = 20

// idealAnswerFallback substitutes for a model answer when generation fails.
// Enrichment degrades silently; it must never fail a submission.
const idealAnswerFallback = "A strong answer to this question should address the main requirements of the role, follow a clear structure, and back claims with concrete examples from your own experience."

// Result holds everything the scorer produces for one submission.
type Result struct {
	Feedback        []string `json:"feedback"`
	IdealAnswers    []string `json:"ideal_answers"`
	OverallFeedback string   `json:"overall_feedback"`
	Score           *int     `json:"score,omitempty"` // absent for presence-only video scoring
}

// Scorer grades answers and enriches them with model answers.
type Scorer struct {
	llm llm.Client
	log *zap.Logger
}

// New creates a Scorer. The llm client may be nil, in which case every ideal
// answer uses the fallback text.
func New(client llm.Client, log *zap.Logger) *Scorer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scorer{llm: client, log: log}
}

// Score grades answers against questions. Answers align positionally with
// questions; missing trailing answers count as empty. Extra answers beyond the
// question count are ignored.
func (s *Scorer) Score(ctx context.Context, questions, answers []string, mode db.Mode) (Result, error) {
	n := len(questions)
	if n == 0 {
		// Guard the aggregate division; callers normally reject this earlier.
		return Result{OverallFeedback: narrativeFor(0), Score: intPtr(0)}, nil
	}

	if mode == db.ModeVideo {
		return s.scoreVideo(ctx, questions, answers), nil
	}

	feedback := make([]string, n)
	total := 0
	for i := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		pts, label := rate(answer)
		total += pts
		feedback[i] = fmt.Sprintf("Q%d: %s", i+1, label)
	}

	score := int(math.Round(float64(total) / float64(n*pointsPerQuestion) * 100))
	if score > MaxScore {
		score = MaxScore
	}

	return Result{
		Feedback:        feedback,
		IdealAnswers:    s.idealAnswers(ctx, questions),
		OverallFeedback: narrativeFor(score),
		Score:           intPtr(score),
	}, nil
}

// scoreVideo is the presence-only variant: media content length cannot be
// measured here, so no numeric score is computed.
func (s *Scorer) scoreVideo(ctx context.Context, questions, answers []string) Result {
	feedback := make([]string, len(questions))
	for i := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		if strings.TrimSpace(answer) != "" {
			feedback[i] = fmt.Sprintf("Good video answer for Q%d. Eye contact and clarity are important!", i+1)
		} else {
			feedback[i] = fmt.Sprintf("No video answer provided for Q%d.", i+1)
		}
	}

	return Result{
		Feedback:        feedback,
		IdealAnswers:    s.idealAnswers(ctx, questions),
		OverallFeedback: "Great presence! Work on body language and confidence.",
	}
}

// rate maps a trimmed answer length to points and a qualitative label.
func rate(answer string) (int, string) {
	l := len(strings.TrimSpace(answer))
	switch {
	case l == 0:
		return 0, "Poor: no answer"
	case l < 10:
		return 5, "Poor: very brief"
	case l < 30:
		return 10, "Average: needs more detail"
	case l < 60:
		return 15, "Moderate: decent, could be expanded"
	case l < 120:
		return 18, "Good: clear and relevant"
	default:
		return 20, "Perfect: comprehensive and well-structured"
	}
}

// narrativeFor selects the overall narrative by score band. Bands are
// monotonic: a higher score never yields a less positive narrative.
func narrativeFor(score int) string {
	switch {
	case score == 100:
		// Unreachable under the MaxScore cap; kept for band compatibility.
		return "Perfect! Outstanding answers across the board."
	case score >= 80:
		return "Great job! Your answers were clear, detailed, and well-structured."
	case score >= 60:
		return "Good effort. Solid answers overall, with room to go deeper in places."
	case score >= 40:
		return "Moderate performance. Several answers need more depth and detail."
	case score > 0:
		return "Needs improvement. Try to give fuller answers with concrete examples."
	default:
		return "No answers provided. Complete the questions to receive feedback."
	}
}

// idealAnswers requests a model answer per question, substituting the fallback
// text on any failure.
func (s *Scorer) idealAnswers(ctx context.Context, questions []string) []string {
	ideals := make([]string, len(questions))
	for i, q := range questions {
		ideals[i] = s.idealAnswer(ctx, q)
	}
	return ideals
}

func (s *Scorer) idealAnswer(ctx context.Context, question string) string {
	if s.llm == nil {
		return idealAnswerFallback
	}

	template, err := prompts.Get("interview.json", "ideal_answer")
	if err != nil {
		s.log.Warn("ideal answer prompt missing", zap.Error(err))
		return idealAnswerFallback
	}
	prompt := prompts.Format(template, map[string]string{"Question": question})

	text, err := s.llm.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil || strings.TrimSpace(text) == "" {
		s.log.Warn("ideal answer generation failed, using fallback", zap.Error(err))
		return idealAnswerFallback
	}
	return strings.TrimSpace(text)
}

func intPtr(v int) *int { return &v }
