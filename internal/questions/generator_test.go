package questions

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"

	"github.com/jonathan/interview-prep/internal/llm"
)

// fakeLLM returns queued responses/errors in order.
type fakeLLM struct {
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeLLM) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	i := len(f.prompts) - 1
	var err error
	if i < len(f.errs) {
		err = f.errs[i]
	}
	resp := ""
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	return resp, err
}

func (f *fakeLLM) Close() error { return nil }

func newTestGenerator(client llm.Client) (*Generator, *[]time.Duration) {
	th, _ := newTestThrottle(0)
	g := NewGenerator(client, th, nil)
	waits := &[]time.Duration{}
	g.sleep = func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
	return g, waits
}

func TestGenerateQuestions_Success(t *testing.T) {
	fake := &fakeLLM{responses: []string{"1. First question here\n2. Second question here"}}
	g, _ := newTestGenerator(fake)

	qs, err := g.GenerateQuestions(context.Background(), "Backend Engineer", "Fintech", "3 years", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"First question here", "Second question here"}, qs)

	require.Len(t, fake.prompts, 1)
	assert.Contains(t, fake.prompts[0], "3 years Backend Engineer")
	assert.Contains(t, fake.prompts[0], "Fintech industry")
}

func TestGenerateQuestions_PromptIncludesCondensedContext(t *testing.T) {
	fake := &fakeLLM{responses: []string{"1. A long enough question"}}
	g, _ := newTestGenerator(fake)

	_, err := g.GenerateQuestions(context.Background(), "Backend Engineer", "", "3 years",
		"Looking for Go and Docker skills", "Candidate with 4 years of Python")
	require.NoError(t, err)

	prompt := fake.prompts[0]
	assert.Contains(t, prompt, "Required skills:")
	assert.Contains(t, prompt, "Candidate Background:")
	assert.Contains(t, prompt, "Experience: 4 years")
	// Raw resume text never reaches the prompt, only the condensed form.
	assert.NotContains(t, prompt, "Candidate with 4 years of Python")
}

func TestGenerateQuestions_RetriesOnRateLimit(t *testing.T) {
	rateLimited := &googleapi.Error{Code: http.StatusTooManyRequests, Message: "quota"}
	fake := &fakeLLM{
		errs:      []error{rateLimited, rateLimited, nil},
		responses: []string{"", "", "1. Question after retries"},
	}
	g, waits := newTestGenerator(fake)

	qs, err := g.GenerateQuestions(context.Background(), "SRE", "", "5 years", "", "")
	require.NoError(t, err)
	assert.Len(t, qs, 1)

	// Linear backoff: attempt N waits N * retryDelay.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *waits)
}

func TestGenerateQuestions_GivesUpAfterMaxRetries(t *testing.T) {
	rateLimited := &googleapi.Error{Code: http.StatusTooManyRequests}
	fake := &fakeLLM{errs: []error{rateLimited, rateLimited, rateLimited, rateLimited}}
	g, waits := newTestGenerator(fake)

	_, err := g.GenerateQuestions(context.Background(), "SRE", "", "5 years", "", "")
	require.Error(t, err)
	assert.Len(t, *waits, 3)
	assert.Len(t, fake.prompts, 4)
}

func TestGenerateQuestions_NonRateLimitErrorNotRetried(t *testing.T) {
	fake := &fakeLLM{errs: []error{errors.New("boom")}}
	g, waits := newTestGenerator(fake)

	_, err := g.GenerateQuestions(context.Background(), "SRE", "", "5 years", "", "")
	require.Error(t, err)
	assert.Empty(t, *waits)
	assert.Len(t, fake.prompts, 1)
}

func TestGenerateQuestions_EmptyResponse(t *testing.T) {
	fake := &fakeLLM{responses: []string{"short"}}
	g, _ := newTestGenerator(fake)

	_, err := g.GenerateQuestions(context.Background(), "SRE", "", "5 years", "", "")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestIsRateLimited(t *testing.T) {
	assert.True(t, isRateLimited(&googleapi.Error{Code: http.StatusTooManyRequests}))
	assert.True(t, isRateLimited(errors.New("server returned 429")))
	assert.True(t, isRateLimited(errors.New("RESOURCE_EXHAUSTED: quota")))
	assert.False(t, isRateLimited(errors.New("connection refused")))
	assert.False(t, isRateLimited(&googleapi.Error{Code: http.StatusInternalServerError}))
}
