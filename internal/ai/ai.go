package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/jobboard"
	"github.com/careerdev/jobagent/internal/utils"
)

// Completer is the completion contract implemented by AI providers.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

const systemPrompt = "You are an expert in CV analysis, recruitment and career development. " +
	"Provide detailed, objective and practical analysis."

const (
	defaultMaxLogLength = 200
	maxRecommendations  = 8
)

// Service owns the prompt contracts of the four completion operations and the
// decoding of provider responses into typed results.
type Service struct {
	completer Completer
	logger    *zap.Logger
	maxLogLen int
}

func NewService(completer Completer, logger *zap.Logger, maxLogLength int) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Service{
		completer: completer,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// AnalyzeCV extracts a structured analysis from raw CV text.
func (s *Service) AnalyzeCV(ctx context.Context, cvText string) (*CVAnalysis, error) {
	raw, err := s.complete(ctx, "cv_extraction", buildCVExtractionPrompt(cvText))
	if err != nil {
		return nil, err
	}

	return decodeResponse[CVAnalysis](raw)
}

// AnalyzeJobDescription extracts a structured analysis from a job listing.
func (s *Service) AnalyzeJobDescription(ctx context.Context, listing *jobboard.Listing) (*JobAnalysis, error) {
	if listing == nil {
		return nil, fmt.Errorf("listing is required")
	}

	raw, err := s.complete(ctx, "job_extraction", buildJobExtractionPrompt(listing))
	if err != nil {
		return nil, err
	}

	return decodeResponse[JobAnalysis](raw)
}

// CalculateMatchScore scores a CV analysis against a job analysis.
func (s *Service) CalculateMatchScore(ctx context.Context, cv *CVAnalysis, job *JobAnalysis) (*MatchScore, error) {
	if cv == nil {
		return nil, fmt.Errorf("cv analysis is required")
	}
	if job == nil {
		return nil, fmt.Errorf("job analysis is required")
	}

	cvJSON, err := json.MarshalIndent(cv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal cv payload: %w", err)
	}

	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal job payload: %w", err)
	}

	raw, err := s.complete(ctx, "match_scoring", buildMatchScoringPrompt(string(cvJSON), string(jobJSON)))
	if err != nil {
		return nil, err
	}

	return decodeResponse[MatchScore](raw)
}

// GenerateSkillRecommendations recommends skills to develop from a profile and
// its match results. At most eight recommendations are returned.
func (s *Service) GenerateSkillRecommendations(ctx context.Context, profile *CVAnalysis, matches []JobMatch) ([]SkillRecommendation, error) {
	profileJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile payload: %w", err)
	}

	matchesJSON, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal matches payload: %w", err)
	}

	raw, err := s.complete(ctx, "skill_recommendations", buildSkillRecommendationsPrompt(string(profileJSON), string(matchesJSON)))
	if err != nil {
		return nil, err
	}

	parsed, err := decodeResponse[recommendationList](raw)
	if err != nil {
		return nil, err
	}

	recommendations := parsed.Recommendations
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}

	return recommendations, nil
}

type recommendationList struct {
	Recommendations []SkillRecommendation `json:"recommendations"`
}

func (s *Service) complete(ctx context.Context, operation, prompt string) (string, error) {
	s.logger.Debug("ai completion request",
		zap.String("operation", operation),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("ai completion response",
		zap.String("operation", operation),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, s.maxLogLen)),
	)

	return raw, nil
}
