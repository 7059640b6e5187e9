package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/jobboard"
)

type stubCompleter struct {
	response   string
	err        error
	lastSystem string
	lastPrompt string
	calls      int
}

func (s *stubCompleter) Complete(_ context.Context, system, prompt string) (string, error) {
	s.calls++
	s.lastSystem = system
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestAnalyzeCV(t *testing.T) {
	stub := &stubCompleter{response: "Here is the analysis:\n" +
		`{"profile": {"name": "Jane Doe", "experience_years": 6}, ` +
		`"skills": [{"name": "Go", "level": 4, "category": "Technical"}], ` +
		`"analysis": {"experience_level": "Senior", "market_readiness_score": 82}}`}
	service := NewService(stub, zap.NewNop(), 0)

	analysis, err := service.AnalyzeCV(context.Background(), "Jane Doe. Go developer since 2019.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Profile.Name != "Jane Doe" {
		t.Fatalf("unexpected profile name: %q", analysis.Profile.Name)
	}

	if analysis.Analysis.MarketReadinessScore != 82 {
		t.Fatalf("unexpected readiness score: %d", analysis.Analysis.MarketReadinessScore)
	}

	if len(analysis.Skills) != 1 || analysis.Skills[0].Name != "Go" {
		t.Fatalf("unexpected skills: %+v", analysis.Skills)
	}

	if !strings.Contains(stub.lastPrompt, "Jane Doe. Go developer since 2019.") {
		t.Fatalf("cv text missing from prompt: %s", stub.lastPrompt)
	}

	if stub.lastSystem == "" {
		t.Fatalf("expected system prompt to be sent")
	}
}

func TestAnalyzeCVProviderError(t *testing.T) {
	stub := &stubCompleter{err: errors.New("quota exceeded")}
	service := NewService(stub, zap.NewNop(), 0)

	if _, err := service.AnalyzeCV(context.Background(), "some cv"); err == nil {
		t.Fatalf("expected provider error to propagate")
	}
}

func TestAnalyzeCVUnparsableResponse(t *testing.T) {
	stub := &stubCompleter{response: "I could not produce structured output, sorry."}
	service := NewService(stub, zap.NewNop(), 0)

	_, err := service.AnalyzeCV(context.Background(), "some cv")
	if err == nil {
		t.Fatalf("expected parse error")
	}

	if !strings.Contains(err.Error(), "no JSON found") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAnalyzeJobDescription(t *testing.T) {
	stub := &stubCompleter{response: `{"title": "Backend Engineer", "remote": true, ` +
		`"required_skills": [{"name": "Go", "level": 4, "importance": "Critical"}], ` +
		`"analysis": {"difficulty_level": "Medium", "required_experience_years": 3}}`}
	service := NewService(stub, zap.NewNop(), 0)

	listing := &jobboard.Listing{
		Title:       "Backend Engineer",
		Company:     "Acme",
		Location:    "Berlin",
		Description: "Build Go services.",
	}

	analysis, err := service.AnalyzeJobDescription(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Title != "Backend Engineer" {
		t.Fatalf("unexpected title: %q", analysis.Title)
	}

	if !analysis.Remote {
		t.Fatalf("expected remote to be true")
	}

	for _, fragment := range []string{"Backend Engineer", "Acme", "Berlin", "Build Go services."} {
		if !strings.Contains(stub.lastPrompt, fragment) {
			t.Fatalf("expected prompt to contain %q: %s", fragment, stub.lastPrompt)
		}
	}
}

func TestAnalyzeJobDescriptionRequiresListing(t *testing.T) {
	stub := &stubCompleter{}
	service := NewService(stub, zap.NewNop(), 0)

	if _, err := service.AnalyzeJobDescription(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil listing")
	}

	if stub.calls != 0 {
		t.Fatalf("expected no provider call, got %d", stub.calls)
	}
}

func TestCalculateMatchScore(t *testing.T) {
	stub := &stubCompleter{response: `{"overall_score": 78.5, "skill_match_score": 80, ` +
		`"skill_analysis": [{"skill": "Go", "cv_level": 4, "required_level": 4, "match_score": 100, "gap": "Exact Match"}], ` +
		`"fit_assessment": {"level": "Good", "confidence": "High"}}`}
	service := NewService(stub, zap.NewNop(), 0)

	cv := &CVAnalysis{Profile: Profile{Name: "Jane Doe"}}
	job := &JobAnalysis{Title: "Backend Engineer"}

	score, err := service.CalculateMatchScore(context.Background(), cv, job)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score.OverallScore != 78.5 {
		t.Fatalf("unexpected overall score: %v", score.OverallScore)
	}

	if score.FitAssessment.Level != "Good" {
		t.Fatalf("unexpected fit level: %q", score.FitAssessment.Level)
	}

	if !strings.Contains(stub.lastPrompt, `"name": "Jane Doe"`) {
		t.Fatalf("cv payload missing from prompt: %s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastPrompt, `"title": "Backend Engineer"`) {
		t.Fatalf("job payload missing from prompt: %s", stub.lastPrompt)
	}
}

func TestCalculateMatchScoreRequiresInputs(t *testing.T) {
	stub := &stubCompleter{}
	service := NewService(stub, zap.NewNop(), 0)

	if _, err := service.CalculateMatchScore(context.Background(), nil, &JobAnalysis{}); err == nil {
		t.Fatalf("expected error for nil cv analysis")
	}

	if _, err := service.CalculateMatchScore(context.Background(), &CVAnalysis{}, nil); err == nil {
		t.Fatalf("expected error for nil job analysis")
	}

	if stub.calls != 0 {
		t.Fatalf("expected no provider call, got %d", stub.calls)
	}
}

func TestGenerateSkillRecommendations(t *testing.T) {
	stub := &stubCompleter{response: `{"recommendations": [` +
		`{"skill": "Kubernetes", "category": "Technical", "priority": 5, "current_level": 2, "target_level": 4}, ` +
		`{"skill": "Public Speaking", "category": "Soft", "priority": 2}]}`}
	service := NewService(stub, zap.NewNop(), 0)

	profile := &CVAnalysis{Profile: Profile{Name: "Jane Doe"}}
	matches := []JobMatch{{JobID: "job-1", MatchScore: 71}}

	recommendations, err := service.GenerateSkillRecommendations(context.Background(), profile, matches)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recommendations) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recommendations))
	}

	if recommendations[0].Skill != "Kubernetes" || recommendations[0].Priority != 5 {
		t.Fatalf("unexpected first recommendation: %+v", recommendations[0])
	}

	if !strings.Contains(stub.lastPrompt, `"job_id": "job-1"`) {
		t.Fatalf("match payload missing from prompt: %s", stub.lastPrompt)
	}
}

func TestGenerateSkillRecommendationsCapsResult(t *testing.T) {
	var entries []string
	for i := 0; i < maxRecommendations+3; i++ {
		entries = append(entries, fmt.Sprintf(`{"skill": "Skill %d", "priority": 3}`, i))
	}
	stub := &stubCompleter{response: `{"recommendations": [` + strings.Join(entries, ", ") + `]}`}
	service := NewService(stub, zap.NewNop(), 0)

	recommendations, err := service.GenerateSkillRecommendations(context.Background(), &CVAnalysis{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(recommendations) != maxRecommendations {
		t.Fatalf("expected %d recommendations, got %d", maxRecommendations, len(recommendations))
	}
}

func TestGenerateSkillRecommendationsParseError(t *testing.T) {
	stub := &stubCompleter{response: "nothing structured"}
	service := NewService(stub, zap.NewNop(), 0)

	if _, err := service.GenerateSkillRecommendations(context.Background(), &CVAnalysis{}, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
