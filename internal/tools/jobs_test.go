package tools

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/jobboard"
)

type stubProvider struct {
	name      string
	listings  jobboard.Listings
	err       error
	lastQuery *jobboard.Query
}

func (s *stubProvider) Name() string {
	return s.name
}

func (s *stubProvider) Search(_ context.Context, query *jobboard.Query) (jobboard.Listings, error) {
	s.lastQuery = query
	if s.err != nil {
		return nil, s.err
	}
	return s.listings, nil
}

func TestSearchJobsTool(t *testing.T) {
	provider := &stubProvider{name: "linkedin", listings: jobboard.Listings{
		{ID: "li_001", Title: "Backend Engineer"},
	}}

	tool := NewSearchJobsTool(provider)
	if tool.Name() != "linkedin_jobs" {
		t.Fatalf("unexpected tool name: %q", tool.Name())
	}

	output, err := tool.Execute(context.Background(), map[string]any{
		"keywords": []any{"go", "backend"},
		"location": "Berlin",
		"remote":   true,
		"limit":    float64(10),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	query := provider.lastQuery
	if len(query.Keywords) != 2 || query.Keywords[0] != "go" {
		t.Fatalf("unexpected keywords: %v", query.Keywords)
	}
	if query.Location != "Berlin" || !query.Remote || query.Limit != 10 {
		t.Fatalf("unexpected query: %+v", query)
	}

	payload, ok := output.(map[string]any)
	if !ok {
		t.Fatalf("unexpected output type: %T", output)
	}

	if payload["total"] != 1 || payload["source"] != "linkedin" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestSearchJobsToolKeywordString(t *testing.T) {
	provider := &stubProvider{name: "indeed"}
	tool := NewSearchJobsTool(provider)

	if _, err := tool.Execute(context.Background(), map[string]any{"keywords": "data engineer"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(provider.lastQuery.Keywords) != 2 || provider.lastQuery.Keywords[1] != "engineer" {
		t.Fatalf("unexpected keywords: %v", provider.lastQuery.Keywords)
	}
}

func TestSearchJobsToolProviderError(t *testing.T) {
	provider := &stubProvider{name: "glassdoor", err: errors.New("rate limited")}
	tool := NewSearchJobsTool(provider)

	if _, err := tool.Execute(context.Background(), map[string]any{"keywords": []any{"go"}}); err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

func TestAggregateJobsTool(t *testing.T) {
	aggregator := jobboard.NewAggregator([]jobboard.Provider{
		&stubProvider{name: "linkedin", listings: jobboard.Listings{{ID: "li_001", PostedAt: "2024-03-10"}}},
		&stubProvider{name: "indeed", err: errors.New("connection refused")},
	}, zap.NewNop())

	tool := NewAggregateJobsTool(aggregator)

	output, err := tool.Execute(context.Background(), map[string]any{"keywords": []any{"go"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, ok := output.(*jobboard.Result)
	if !ok {
		t.Fatalf("unexpected output type: %T", output)
	}

	if result.Total != 1 || len(result.Errors) != 1 {
		t.Fatalf("unexpected aggregate result: %+v", result)
	}
}
