package candidate

import (
	_ "embed"
	"strings"
)

const (
	// DefaultRole is the position candidates are evaluated for.
	DefaultRole = "Machine Learning Engineer"

	detailsPlaceholder = "{{CANDIDATE_DETAILS}}"
	rolePlaceholder    = "{{ROLE}}"
)

var (
	//go:embed prompts/experience.md
	experiencePrompt string

	//go:embed prompts/skills.md
	skillsPrompt string

	//go:embed prompts/summary.md
	summaryPrompt string
)

func buildPrompt(template, details, role string) string {
	prompt := strings.ReplaceAll(template, rolePlaceholder, role)
	return strings.ReplaceAll(prompt, detailsPlaceholder, details)
}
