package workflow

import (
	"encoding/json"
	"testing"

	"github.com/careerdev/jobagent/internal/ai"
	"github.com/careerdev/jobagent/internal/jobboard"
)

func TestAnalyzedJobFlattensListing(t *testing.T) {
	data, err := json.Marshal(AnalyzedJob{
		Listing:  &jobboard.Listing{ID: "li_001", Title: "Backend Engineer"},
		Analysis: &ai.JobAnalysis{Title: "Backend Engineer"},
	})
	if err != nil {
		t.Fatalf("marshal analyzed job: %s", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal analyzed job: %s", err)
	}

	if decoded["id"] != "li_001" || decoded["title"] != "Backend Engineer" {
		t.Fatalf("expected listing fields at the top level, got %s", data)
	}
	if _, ok := decoded["analysis"]; !ok {
		t.Fatalf("expected an analysis key, got %s", data)
	}
	if _, ok := decoded["listing"]; ok {
		t.Fatalf("expected no nested listing key, got %s", data)
	}
}

func TestNewStateDefaultsInput(t *testing.T) {
	s := newState("user-1", TaskJobSearch, nil)
	if s.Input == nil {
		t.Fatal("expected an empty input map")
	}
}
