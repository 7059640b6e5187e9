package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/jobboard"
)

// Steps never return errors and never panic on collaborator failures: a
// failure is written into the state and surfaces in the final envelope.

func (e *Engine) validateInput(_ context.Context, s *State) {
	switch s.TaskType {
	case TaskCVAnalysis:
		if !hasInput(s, "cv_id") {
			s.Err = "CV ID is required for CV analysis"
		}
	case TaskJobSearch:
		if !hasInput(s, "keywords") {
			s.Err = "Keywords are required for job search"
		}
	case TaskMatching:
		if !hasInput(s, "cv_id") || !hasInput(s, "job_ids") {
			s.Err = "CV ID and Job IDs are required for matching"
		}
	case TaskRecommendations:
		if !hasInput(s, "user_id") {
			s.Err = "User ID is required for recommendations"
		}
	case TaskExternalTool:
		if !hasInput(s, "tool_name") || !hasInput(s, "parameters") {
			s.Err = "Tool name and parameters are required for external tool execution"
		}
	}
}

func hasInput(s *State, key string) bool {
	_, ok := s.Input[key]
	return ok
}

// analyzeCV loads the stored resume and extracts a structured analysis. An AI
// failure degrades to the fixed fallback analysis instead of failing the run;
// only a missing resume fails it.
func (e *Engine) analyzeCV(ctx context.Context, s *State) {
	cvID, _ := s.Input["cv_id"].(string)

	cv, err := e.deps.Store.GetCV(cvID)
	if err != nil {
		s.Err = fmt.Sprintf("CV analysis failed: %s", err)
		return
	}
	if cv == nil {
		s.Err = fmt.Sprintf("CV analysis failed: cv %q not found", cvID)
		return
	}

	analysis, err := e.deps.AI.AnalyzeCV(ctx, cv.RawText)
	if err != nil {
		e.logger.Warn("cv analysis degraded to fallback",
			zap.String("cv_id", cvID),
			zap.Error(err),
		)
		analysis = ai.FallbackCVAnalysis()
	}

	s.CVResult = analysis
	s.AnalysisReport = &AnalysisReport{
		CVAnalysis: analysis,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

func (e *Engine) searchJobs(ctx context.Context, s *State) {
	query := jobboard.QueryFromParams(s.Input)
	if query.Limit <= 0 {
		query.Limit = jobboard.DefaultLimit
	}

	result, err := e.deps.Searcher.Search(ctx, query)
	if err != nil {
		s.Err = fmt.Sprintf("Job search failed: %s", err)
		return
	}

	s.Jobs = result.Jobs
	s.SearchReport = result
}

// analyzeJobs extracts a structured analysis for every found listing, in
// input order. There is no partial success here: one failed listing aborts
// the whole step.
func (e *Engine) analyzeJobs(ctx context.Context, s *State) {
	if s.Err != "" {
		return
	}

	analyzed := make([]AnalyzedJob, 0, s.Jobs.Len())
	for _, listing := range s.Jobs {
		analysis, err := e.deps.AI.AnalyzeJobDescription(ctx, listing)
		if err != nil {
			s.Err = fmt.Sprintf("Job analysis failed: %s", err)
			return
		}
		analyzed = append(analyzed, AnalyzedJob{Listing: listing, Analysis: analysis})
	}

	s.AnalyzedJobs = analyzed
	s.AnalysisReport = &AnalysisReport{
		JobAnalysis: analyzed,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// calculateMatches scores the CV against every requested job. When the chain
// has not already produced the inputs they are loaded through the persistence
// collaborator.
func (e *Engine) calculateMatches(ctx context.Context, s *State) {
	cvID, _ := s.Input["cv_id"].(string)
	jobIDs := stringSlice(s.Input["job_ids"])

	cvAnalysis := s.CVResult
	if cvAnalysis == nil {
		loaded, err := e.loadCVAnalysis(ctx, cvID)
		if err != nil {
			s.Err = fmt.Sprintf("Matching calculation failed: %s", err)
			return
		}
		cvAnalysis = loaded
	}

	jobs := s.AnalyzedJobs
	if len(jobs) == 0 {
		loaded, err := e.loadAnalyzedJobs(ctx, jobIDs)
		if err != nil {
			s.Err = fmt.Sprintf("Matching calculation failed: %s", err)
			return
		}
		jobs = loaded
	}

	matches := make([]ai.JobMatch, 0, len(jobs))
	for _, job := range jobs {
		score, err := e.deps.AI.CalculateMatchScore(ctx, cvAnalysis, job.Analysis)
		if err != nil {
			s.Err = fmt.Sprintf("Matching calculation failed: %s", err)
			return
		}
		matches = append(matches, ai.JobMatch{
			JobID:      job.ID,
			MatchScore: score.OverallScore,
			Analysis:   score,
		})
	}

	// Descending by score; the stable sort keeps input order for ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})

	s.MatchResults = &MatchResults{
		Matches:   matches,
		CVID:      cvID,
		JobIDs:    jobIDs,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (e *Engine) loadCVAnalysis(ctx context.Context, cvID string) (*ai.CVAnalysis, error) {
	cv, err := e.deps.Store.GetCV(cvID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, fmt.Errorf("cv %q not found", cvID)
	}
	if cv.Analysis != nil {
		return cv.Analysis, nil
	}
	return e.deps.AI.AnalyzeCV(ctx, cv.RawText)
}

func (e *Engine) loadAnalyzedJobs(ctx context.Context, jobIDs []string) ([]AnalyzedJob, error) {
	listings, err := e.deps.Store.ListingsByIDs(jobIDs)
	if err != nil {
		return nil, err
	}
	if listings.Len() == 0 {
		return nil, errors.New("no job listings found")
	}

	analyzed := make([]AnalyzedJob, 0, listings.Len())
	for _, listing := range listings {
		analysis, err := e.deps.AI.AnalyzeJobDescription(ctx, listing)
		if err != nil {
			return nil, err
		}
		analyzed = append(analyzed, AnalyzedJob{Listing: listing, Analysis: analysis})
	}

	return analyzed, nil
}

// generateRecommendations never fails the run: an unavailable AI collaborator
// degrades to the fixed fallback list.
func (e *Engine) generateRecommendations(ctx context.Context, s *State) {
	if s.Err != "" {
		return
	}

	profile := s.CVResult
	if profile == nil {
		if cv, err := e.deps.Store.LatestCVForUser(s.UserID); err == nil && cv != nil {
			profile = cv.Analysis
		}
	}
	if profile == nil {
		profile = &ai.CVAnalysis{}
	}

	var matches []ai.JobMatch
	if s.MatchResults != nil {
		matches = s.MatchResults.Matches
	}

	recommendations, err := e.deps.AI.GenerateSkillRecommendations(ctx, profile, matches)
	if err != nil {
		e.logger.Warn("skill recommendations degraded to fallback", zap.Error(err))
		recommendations = ai.FallbackRecommendations()
	}

	s.Recommendations = recommendations
}

// integrateTool passes the call through to the tool registry. Tool-level
// failures stay inside the returned envelope; only a transport failure fails
// the run.
func (e *Engine) integrateTool(ctx context.Context, s *State) {
	toolName, ok := s.Input["tool_name"].(string)
	if !ok {
		s.Err = "Tool integration failed: tool_name must be a string"
		return
	}

	params, ok := s.Input["parameters"].(map[string]any)
	if !ok {
		s.Err = "Tool integration failed: parameters must be an object"
		return
	}

	result, err := e.deps.Tools.Execute(ctx, toolName, params)
	if err != nil {
		s.Err = fmt.Sprintf("Tool integration failed: %s", err)
		return
	}

	s.ToolResult = result
}

// formatOutput builds the final envelope. An error carried into this step is
// reflected as a failed status with the task payload frozen at its partial
// value.
func (e *Engine) formatOutput(_ context.Context, s *State) {
	status := StatusCompleted
	if s.Err != "" {
		status = StatusFailed
	}

	envelope := &Envelope{
		TaskType:  s.TaskType,
		UserID:    s.UserID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     s.Err,
	}

	switch s.TaskType {
	case TaskCVAnalysis:
		envelope.CVAnalysis = s.CVResult
		envelope.Analysis = s.AnalysisReport
	case TaskJobSearch:
		jobs := s.AnalyzedJobs
		if jobs == nil {
			for _, listing := range s.Jobs {
				jobs = append(jobs, AnalyzedJob{Listing: listing})
			}
		}
		envelope.Jobs = jobs
		envelope.SearchResults = s.SearchReport
	case TaskMatching:
		envelope.Matches = s.MatchResults
	case TaskRecommendations:
		envelope.Recommendations = s.Recommendations
	case TaskExternalTool:
		envelope.ToolResults = s.ToolResult
	}

	s.FinalOutput = envelope
}

// handleError is the terminal step for runs the router rejected. It never
// fails and always produces an output.
func (e *Engine) handleError(_ context.Context, s *State) {
	s.FinalOutput = failedEnvelope(s, s.Err)
}

func stringSlice(value any) []string {
	switch vals := value.(type) {
	case []string:
		return vals
	case []any:
		out := make([]string, 0, len(vals))
		for _, item := range vals {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
