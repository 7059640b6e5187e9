package tools

import (
	"context"
	"fmt"

	"github.com/careerdev/jobagent/internal/jobboard"
)

type searchJobsTool struct {
	provider jobboard.Provider
}

// NewSearchJobsTool exposes one board as a <board>_jobs tool.
func NewSearchJobsTool(provider jobboard.Provider) Tool {
	return &searchJobsTool{provider: provider}
}

func (t *searchJobsTool) Name() string {
	return fmt.Sprintf("%s_jobs", t.provider.Name())
}

func (t *searchJobsTool) Description() string {
	return fmt.Sprintf("Search %s for job listings", t.provider.Name())
}

func (t *searchJobsTool) Required() []string {
	return []string{"keywords"}
}

func (t *searchJobsTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	listings, err := t.provider.Search(ctx, jobboard.QueryFromParams(params))
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"jobs":   listings,
		"total":  listings.Len(),
		"source": t.provider.Name(),
	}, nil
}

type aggregateJobsTool struct {
	aggregator *jobboard.Aggregator
}

// NewAggregateJobsTool exposes the fan-out search across all boards.
func NewAggregateJobsTool(aggregator *jobboard.Aggregator) Tool {
	return &aggregateJobsTool{aggregator: aggregator}
}

func (t *aggregateJobsTool) Name() string {
	return "aggregate_jobs"
}

func (t *aggregateJobsTool) Description() string {
	return "Search all configured job boards and merge the results"
}

func (t *aggregateJobsTool) Required() []string {
	return []string{"keywords"}
}

func (t *aggregateJobsTool) Execute(ctx context.Context, params map[string]any) (any, error) {
	return t.aggregator.Search(ctx, jobboard.QueryFromParams(params))
}
