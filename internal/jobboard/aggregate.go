package jobboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// DefaultLimit caps the merged result set when the query does not set one.
const DefaultLimit = 20

// Result reports the outcome of a fan-out search across boards. A board
// failure lands in Errors instead of failing the whole search.
type Result struct {
	Jobs              Listings `json:"jobs"`
	Total             int      `json:"total"`
	Sources           []string `json:"sources"`
	SuccessfulSources []string `json:"successful_sources"`
	Errors            []string `json:"errors,omitempty"`
}

// Aggregator fans a query out to all configured boards and merges the results.
type Aggregator struct {
	providers []Provider
	logger    *zap.Logger
}

func NewAggregator(providers []Provider, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Aggregator{
		providers: providers,
		logger:    logger,
	}
}

// Provider returns the named board, matched case-insensitively.
func (a *Aggregator) Provider(name string) (Provider, bool) {
	for _, p := range a.providers {
		if strings.EqualFold(p.Name(), name) {
			return p, true
		}
	}
	return nil, false
}

// Sources lists the configured board names in registration order.
func (a *Aggregator) Sources() []string {
	names := make([]string, 0, len(a.providers))
	for _, p := range a.providers {
		names = append(names, p.Name())
	}
	return names
}

// Search queries the requested boards concurrently and merges the listings,
// newest first, capped at the query limit. Board failures are recorded in the
// result; only context cancellation fails the search itself.
func (a *Aggregator) Search(ctx context.Context, query *Query) (*Result, error) {
	if len(a.providers) == 0 {
		return nil, errors.New("no job board providers configured")
	}

	if query == nil {
		query = &Query{}
	}

	limit := query.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	result := &Result{}

	providers := a.providers
	if len(query.Sources) > 0 {
		providers = make([]Provider, 0, len(query.Sources))
		for _, source := range query.Sources {
			p, ok := a.Provider(source)
			if !ok {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: unknown source", source))
				continue
			}
			providers = append(providers, p)
		}
	}

	type outcome struct {
		listings Listings
		err      error
	}

	outcomes := make([]outcome, len(providers))

	var wg sync.WaitGroup
	for i, provider := range providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			listings, err := p.Search(ctx, query)
			outcomes[i] = outcome{listings: listings, err: err}
		}(i, provider)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, provider := range providers {
		result.Sources = append(result.Sources, provider.Name())

		out := outcomes[i]
		if out.err != nil {
			a.logger.Warn("job board search failed",
				zap.String("source", provider.Name()),
				zap.Error(out.err),
			)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", provider.Name(), out.err))
			continue
		}

		result.SuccessfulSources = append(result.SuccessfulSources, provider.Name())
		result.Jobs = append(result.Jobs, out.listings...)
	}

	result.Jobs.SortByPostedDesc()
	result.Jobs = result.Jobs.Truncate(limit)
	result.Total = result.Jobs.Len()

	a.logger.Info("aggregated job search",
		zap.Int("jobs", result.Total),
		zap.Strings("successful_sources", result.SuccessfulSources),
		zap.Int("failed_sources", len(result.Errors)),
	)

	return result, nil
}
