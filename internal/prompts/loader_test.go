package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownKey(t *testing.T) {
	prompt, err := Get("interview.json", "questions_base")
	require.NoError(t, err)
	assert.Contains(t, prompt, "{{.Role}}")
	assert.Contains(t, prompt, "{{.Experience}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("interview.json", "does_not_exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "system")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	out := Format("Generate questions for a {{.Experience}} {{.Role}}", map[string]string{
		"Experience": "3 years",
		"Role":       "Backend Engineer",
	})
	assert.Equal(t, "Generate questions for a 3 years Backend Engineer", out)
}

func TestFormat_MissingKeyLeftIntact(t *testing.T) {
	out := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", out)
}
