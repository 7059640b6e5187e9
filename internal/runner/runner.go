// Package runner holds the maintenance jobs built on top of the workflow
// engine and the store.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/jobboard"
	"github.com/careerdev/jobagent/internal/store"
	"github.com/careerdev/jobagent/internal/workflow"
)

// cvRetention is how long inactive CVs are kept before cleanup removes them.
const cvRetention = 90 * 24 * time.Hour

// refreshKeywords is the fixed popular-search set fetched by the listing
// refresh job.
var refreshKeywords = []string{
	"software developer",
	"data scientist",
	"product manager",
	"designer",
	"marketing",
}

// refreshLimit caps the merged listings fetched per refresh keyword.
const refreshLimit = 50

// Runner executes workflows on behalf of maintenance jobs and persists their
// results. The refresh job talks to the searcher directly since it has no use
// for the analysis chain.
type Runner struct {
	engine   *workflow.Engine
	searcher workflow.JobSearcher
	store    *store.Store
	logger   *zap.Logger
}

func New(engine *workflow.Engine, searcher workflow.JobSearcher, st *store.Store, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Runner{
		engine:   engine,
		searcher: searcher,
		store:    st,
		logger:   logger,
	}
}

// run executes one workflow and converts a failed envelope into an ordinary
// error carrying the envelope's message.
func (r *Runner) run(ctx context.Context, userID string, taskType workflow.TaskType, input map[string]any) (*workflow.Envelope, error) {
	out := r.engine.Run(ctx, userID, taskType, input)
	if out.Status == workflow.StatusFailed {
		return nil, errors.New(out.Error)
	}
	return out, nil
}

// ProcessCV runs CV analysis and persists the extracted analysis onto the
// stored CV row.
func (r *Runner) ProcessCV(ctx context.Context, userID, cvID string) (*ai.CVAnalysis, error) {
	out, err := r.run(ctx, userID, workflow.TaskCVAnalysis, map[string]any{"cv_id": cvID})
	if err != nil {
		return nil, err
	}

	cv, err := r.store.GetCV(cvID)
	if err != nil {
		return nil, err
	}
	if cv == nil {
		return nil, fmt.Errorf("cv %q not found", cvID)
	}

	cv.Analysis = out.CVAnalysis
	if err := r.store.SaveCV(cv); err != nil {
		return nil, err
	}

	r.logger.Info("cv processed",
		zap.String("user_id", userID),
		zap.String("cv_id", cvID),
	)

	return out.CVAnalysis, nil
}

// SearchAndStoreJobs runs a job search and upserts every returned listing.
// Returns the number of listings written.
func (r *Runner) SearchAndStoreJobs(ctx context.Context, userID, keywords, location string, limit int) (int64, error) {
	input := map[string]any{"keywords": keywords}
	if location != "" {
		input["location"] = location
	}
	if limit > 0 {
		input["limit"] = limit
	}

	out, err := r.run(ctx, userID, workflow.TaskJobSearch, input)
	if err != nil {
		return 0, err
	}

	listings := make(jobboard.Listings, 0, len(out.Jobs))
	for _, job := range out.Jobs {
		listings = append(listings, job.Listing)
	}

	saved, err := r.store.UpsertListings(listings)
	if err != nil {
		return saved, err
	}

	r.logger.Info("job search stored",
		zap.String("user_id", userID),
		zap.Int("found", len(out.Jobs)),
		zap.Int64("saved", saved),
	)

	return saved, nil
}

// MatchAndStore runs matching for the CV against the given jobs and upserts
// every match.
func (r *Runner) MatchAndStore(ctx context.Context, userID, cvID string, jobIDs []string) (*workflow.MatchResults, error) {
	out, err := r.run(ctx, userID, workflow.TaskMatching, map[string]any{
		"cv_id":   cvID,
		"job_ids": jobIDs,
	})
	if err != nil {
		return nil, err
	}

	results := out.Matches
	if results == nil {
		return nil, errors.New("matching produced no results")
	}

	for _, match := range results.Matches {
		err := r.store.SaveMatch(&store.Match{
			UserID:   userID,
			CVID:     cvID,
			JobID:    match.JobID,
			Score:    match.MatchScore,
			Analysis: match.Analysis,
		})
		if err != nil {
			return results, err
		}
	}

	r.logger.Info("matches stored",
		zap.String("user_id", userID),
		zap.String("cv_id", cvID),
		zap.Int("matches", len(results.Matches)),
	)

	return results, nil
}

// SyncRecommendations regenerates a user's skill recommendations and upserts
// them, keyed by skill name. Returns the number of rows written.
func (r *Runner) SyncRecommendations(ctx context.Context, userID string) (int64, error) {
	out, err := r.run(ctx, userID, workflow.TaskRecommendations, map[string]any{"user_id": userID})
	if err != nil {
		return 0, err
	}

	written, err := r.store.SaveRecommendations(userID, out.Recommendations)
	if err != nil {
		return written, err
	}

	r.logger.Info("recommendations synced",
		zap.String("user_id", userID),
		zap.Int64("written", written),
	)

	return written, nil
}

// CleanupOldCVs removes inactive CVs past the retention window. Returns the
// number removed.
func (r *Runner) CleanupOldCVs() (int64, error) {
	removed, err := r.store.CleanupOldCVs(cvRetention)
	if err != nil {
		return 0, err
	}

	r.logger.Info("old cvs removed", zap.Int64("removed", removed))

	return removed, nil
}

// RefreshListings fetches the popular keyword set from all boards and upserts
// the results. A failed keyword is logged and skipped; only context
// cancellation aborts the refresh.
func (r *Runner) RefreshListings(ctx context.Context) (int64, error) {
	var saved int64
	for _, keyword := range refreshKeywords {
		result, err := r.searcher.Search(ctx, &jobboard.Query{
			Keywords: []string{keyword},
			Limit:    refreshLimit,
		})
		if err != nil {
			if ctx.Err() != nil {
				return saved, ctx.Err()
			}
			r.logger.Warn("listing refresh keyword failed",
				zap.String("keyword", keyword),
				zap.Error(err),
			)
			continue
		}

		written, err := r.store.UpsertListings(result.Jobs)
		if err != nil {
			return saved, err
		}
		saved += written

		r.logger.Debug("refreshed keyword",
			zap.String("keyword", keyword),
			zap.Int64("saved", written),
		)
	}

	r.logger.Info("listings refreshed", zap.Int64("saved", saved))

	return saved, nil
}
