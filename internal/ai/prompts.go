package ai

import (
	"strings"

	_ "embed"

	"github.com/careerdev/jobagent/internal/jobboard"
)

//go:embed prompts/cv_extraction.md
var cvExtractionTemplate string

//go:embed prompts/job_extraction.md
var jobExtractionTemplate string

//go:embed prompts/match_scoring.md
var matchScoringTemplate string

//go:embed prompts/skill_recommendations.md
var skillRecommendationsTemplate string

func buildCVExtractionPrompt(cvText string) string {
	return strings.ReplaceAll(cvExtractionTemplate, "{{CV_TEXT}}", cvText)
}

func buildJobExtractionPrompt(listing *jobboard.Listing) string {
	prompt := strings.ReplaceAll(jobExtractionTemplate, "{{TITLE}}", listing.Title)
	prompt = strings.ReplaceAll(prompt, "{{COMPANY}}", listing.Company)
	prompt = strings.ReplaceAll(prompt, "{{LOCATION}}", listing.Location)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", listing.Description)
	return prompt
}

func buildMatchScoringPrompt(cvJSON, jobJSON string) string {
	prompt := strings.ReplaceAll(matchScoringTemplate, "{{CV_JSON}}", cvJSON)
	prompt = strings.ReplaceAll(prompt, "{{JOB_JSON}}", jobJSON)
	return prompt
}

func buildSkillRecommendationsPrompt(profileJSON, matchesJSON string) string {
	prompt := strings.ReplaceAll(skillRecommendationsTemplate, "{{PROFILE_JSON}}", profileJSON)
	prompt = strings.ReplaceAll(prompt, "{{MATCHES_JSON}}", matchesJSON)
	return prompt
}
