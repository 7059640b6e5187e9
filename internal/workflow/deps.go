package workflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/jobboard"
	"github.com/careerdev/jobagent/internal/store"
	"github.com/careerdev/jobagent/internal/tools"
)

// AIService is the completion-backed analysis collaborator.
type AIService interface {
	AnalyzeCV(ctx context.Context, cvText string) (*ai.CVAnalysis, error)
	AnalyzeJobDescription(ctx context.Context, listing *jobboard.Listing) (*ai.JobAnalysis, error)
	CalculateMatchScore(ctx context.Context, cv *ai.CVAnalysis, job *ai.JobAnalysis) (*ai.MatchScore, error)
	GenerateSkillRecommendations(ctx context.Context, profile *ai.CVAnalysis, matches []ai.JobMatch) ([]ai.SkillRecommendation, error)
}

// JobSearcher fans a query out across the configured job boards.
type JobSearcher interface {
	Search(ctx context.Context, query *jobboard.Query) (*jobboard.Result, error)
}

// ToolExecutor runs a named tool and reports through the uniform envelope.
type ToolExecutor interface {
	Execute(ctx context.Context, name string, params map[string]any) (*tools.Result, error)
}

// Storage is the persistence collaborator.
type Storage interface {
	GetCV(id string) (*store.CV, error)
	LatestCVForUser(userID string) (*store.CV, error)
	ListingsByIDs(ids []string) (jobboard.Listings, error)
}

// Deps carries the collaborators injected into the engine.
type Deps struct {
	AI       AIService
	Searcher JobSearcher
	Tools    ToolExecutor
	Store    Storage
	Logger   *zap.Logger
}
