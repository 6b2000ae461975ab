// Package questions generates interview questions from job metadata through
// the language-model client, with keyword condensation, a process-wide
// outbound throttle, and bounded retry on upstream rate limiting.
package questions

import (
	"regexp"
	"strings"
)

// keywordPatterns match the skills worth carrying into a prompt. Resume and
// job-description text is condensed to these rather than sent wholesale.
var keywordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:JavaScript|Python|Java|C\+\+|Ruby|PHP|Swift|Kotlin|Go|Rust|SQL|HTML|CSS)\b`),
	regexp.MustCompile(`(?i)\b(?:React|Angular|Vue|Node\.js|Express|Django|Flask|Spring|Laravel|AWS|Azure|GCP)\b`),
	regexp.MustCompile(`(?i)\b(?:Docker|Kubernetes|Jenkins|Git|CI/CD|DevOps|Agile|Scrum)\b`),
	regexp.MustCompile(`(?i)\b(?:Machine Learning|AI|Data Science|Cloud Computing|Microservices|REST API|GraphQL)\b`),
	regexp.MustCompile(`(?i)\b(?:MongoDB|PostgreSQL|MySQL|Redis|ElasticSearch|Firebase)\b`),
	regexp.MustCompile(`(?i)\b(?:Team Lead|Project Manager|Senior|Junior|Full Stack|Backend|Frontend|DevOps|SRE)\b`),
}

var experiencePattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:year|yr)s?\b`)

// ExtractKeywords pulls experience spans and known skill keywords out of
// free text, formatted as a compact "Experience: ... Key skills: ..." string.
// Returns "" when nothing recognizable is found.
func ExtractKeywords(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	var keywords []string
	seen := make(map[string]bool)
	for _, pattern := range keywordPatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if !seen[match] {
				seen[match] = true
				keywords = append(keywords, match)
			}
		}
	}

	experienceSpans := experiencePattern.FindAllString(text, -1)

	var sb strings.Builder
	if len(experienceSpans) > 0 {
		sb.WriteString("Experience: " + strings.Join(experienceSpans, ", ") + ". ")
	}
	if len(keywords) > 0 {
		sb.WriteString("Key skills: " + strings.Join(keywords, ", "))
	}
	return strings.TrimSpace(sb.String())
}

// CondenseResume reduces resume text to a short prompt fragment: the
// experience span plus the top skills.
func CondenseResume(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	keyInfo := ExtractKeywords(text)
	if keyInfo == "" {
		return firstWords(text, 4) + "..."
	}

	experience, skills := splitKeyInfo(keyInfo)
	topSkills := topN(skills, 3)

	if strings.Contains(experience, "Experience") {
		main := ""
		if len(topSkills) > 0 {
			main = topSkills[0]
		}
		return strings.TrimSpace(experience + " Main skill: " + main)
	}
	return "Main skills: " + strings.Join(topSkills, ", ")
}

// CondenseJobDescription reduces a job description to its required skills.
func CondenseJobDescription(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	keyInfo := ExtractKeywords(text)
	if keyInfo == "" {
		return firstWords(text, 4) + "..."
	}

	_, skills := splitKeyInfo(keyInfo)
	return "Required skills: " + strings.Join(topN(skills, 4), ", ")
}

func splitKeyInfo(keyInfo string) (experience, skills string) {
	parts := strings.SplitN(keyInfo, "Key skills:", 2)
	experience = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		skills = strings.TrimSpace(parts[1])
	}
	return experience, skills
}

func topN(commaList string, n int) []string {
	var out []string
	for _, s := range strings.Split(commaList, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == n {
			break
		}
	}
	return out
}

func firstWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
