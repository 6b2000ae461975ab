package questions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/interview-prep/internal/llm"
	"github.com/jonathan/interview-prep/internal/logger"
	"github.com/jonathan/interview-prep/internal/prompts"
)

const (
	defaultMaxRetries  = 3
	defaultRetryDelay  = 2 * time.Second
	defaultCallTimeout = 60 * time.Second
)

// Generator produces interview questions for a job specification.
type Generator struct {
	llm      llm.Client
	throttle *Throttle
	log      *zap.Logger

	maxRetries  int
	retryDelay  time.Duration
	callTimeout time.Duration
	sleep       func(context.Context, time.Duration) error
}

// NewGenerator creates a Generator. The throttle is owned by the caller so a
// single instance can gate every outbound generation call in the process.
func NewGenerator(client llm.Client, throttle *Throttle, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{
		llm:         client,
		throttle:    throttle,
		log:         log,
		maxRetries:  defaultMaxRetries,
		retryDelay:  defaultRetryDelay,
		callTimeout: defaultCallTimeout,
		sleep:       sleepContext,
	}
}

// GenerateQuestions asks the model for 1-5 questions tailored to the role.
// Rate-limited upstream responses are retried with linearly increasing
// backoff before the failure surfaces.
func (g *Generator) GenerateQuestions(ctx context.Context, role, industry, experience, jobDescription, resumeText string) ([]string, error) {
	prompt, err := buildPrompt(role, industry, experience, jobDescription, resumeText)
	if err != nil {
		return nil, err
	}
	g.log.Debug("question generation prompt built", zap.String("prompt", logger.Truncate(prompt, 300)))

	var text string
	for attempt := 0; ; attempt++ {
		if err := g.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		text, err = g.generate(ctx, prompt)
		if err == nil {
			break
		}
		if !isRateLimited(err) || attempt >= g.maxRetries {
			return nil, fmt.Errorf("question generation failed: %w", err)
		}

		wait := time.Duration(attempt+1) * g.retryDelay
		g.log.Warn("upstream rate limited, retrying",
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", g.maxRetries),
			zap.Duration("wait", wait))
		if err := g.sleep(ctx, wait); err != nil {
			return nil, err
		}
	}

	qs, err := ParseQuestions(strings.TrimSpace(text))
	if err != nil {
		g.log.Warn("unparseable generation response", zap.String("raw", logger.Truncate(text, 300)))
		return nil, err
	}
	g.log.Info("questions generated", zap.Int("count", len(qs)))
	return qs, nil
}

func (g *Generator) generate(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.callTimeout)
	defer cancel()
	return g.llm.GenerateContent(callCtx, prompt, llm.TierStandard)
}

// buildPrompt assembles the generation prompt from the embedded templates,
// condensing the resume and job description to their extracted keywords.
func buildPrompt(role, industry, experience, jobDescription, resumeText string) (string, error) {
	system, err := prompts.Get("interview.json", "system")
	if err != nil {
		return "", err
	}
	base, err := prompts.Get("interview.json", "questions_base")
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(system)
	sb.WriteString("\n\n")
	sb.WriteString(prompts.Format(base, map[string]string{
		"Experience": experience,
		"Role":       role,
	}))

	if industry != "" {
		tmpl, err := prompts.Get("interview.json", "questions_industry")
		if err != nil {
			return "", err
		}
		sb.WriteString(prompts.Format(tmpl, map[string]string{"Industry": industry}))
	} else {
		sb.WriteString(".")
	}

	if reqs := CondenseJobDescription(jobDescription); reqs != "" {
		tmpl, err := prompts.Get("interview.json", "questions_requirements")
		if err != nil {
			return "", err
		}
		sb.WriteString(prompts.Format(tmpl, map[string]string{"Requirements": reqs}))
	}

	if bg := CondenseResume(resumeText); bg != "" {
		tmpl, err := prompts.Get("interview.json", "questions_background")
		if err != nil {
			return "", err
		}
		sb.WriteString(prompts.Format(tmpl, map[string]string{"Background": bg}))
	}

	return sb.String(), nil
}

// isRateLimited reports whether err looks like an upstream rate-limiting
// response worth retrying.
func isRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
