package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractKeywords_SkillsAndExperience(t *testing.T) {
	text := "Senior engineer with 5 years of Go and Kubernetes, some Python."
	got := ExtractKeywords(text)

	assert.Contains(t, got, "Experience: 5 years")
	assert.Contains(t, got, "Key skills:")
	assert.Contains(t, got, "Go")
	assert.Contains(t, got, "Kubernetes")
	assert.Contains(t, got, "Python")
}

func TestExtractKeywords_Empty(t *testing.T) {
	assert.Equal(t, "", ExtractKeywords(""))
	assert.Equal(t, "", ExtractKeywords("   "))
}

func TestExtractKeywords_NoMatches(t *testing.T) {
	assert.Equal(t, "", ExtractKeywords("gardening and watercolor painting"))
}

func TestExtractKeywords_Dedupes(t *testing.T) {
	got := ExtractKeywords("Go Go Go")
	assert.Equal(t, "Key skills: Go", got)
}

func TestCondenseResume_WithExperience(t *testing.T) {
	got := CondenseResume("Backend developer, 3 years building REST API services in Go and PostgreSQL with Docker")

	assert.Contains(t, got, "Experience: 3 years")
	assert.Contains(t, got, "Main skill:")
}

func TestCondenseResume_SkillsOnly(t *testing.T) {
	got := CondenseResume("Built dashboards with React, Vue and CSS")

	assert.Contains(t, got, "Main skills:")
	assert.Contains(t, got, "React")
	// Top three skills only.
	assert.NotContains(t, got, "Experience")
}

func TestCondenseResume_NoKeywords(t *testing.T) {
	got := CondenseResume("I enjoy hiking long trails every weekend in summer")
	assert.Equal(t, "I enjoy hiking long...", got)
}

func TestCondenseResume_Empty(t *testing.T) {
	assert.Equal(t, "", CondenseResume(""))
}

func TestCondenseJobDescription(t *testing.T) {
	got := CondenseJobDescription("We need Python, Django, AWS, Docker and Kubernetes experience")

	assert.Contains(t, got, "Required skills:")
	assert.Contains(t, got, "Python")
	// Capped at four skills.
	assert.NotContains(t, got, "Kubernetes")
}

func TestCondenseJobDescription_Empty(t *testing.T) {
	assert.Equal(t, "", CondenseJobDescription(" "))
}
