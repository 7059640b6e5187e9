package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/careerdev/jobagent/internal/research"
)

func TestResearchCompanyTool(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(research.CompanyProfile{
			CompanyName: r.URL.Query().Get("name"),
			Domain:      r.URL.Query().Get("domain"),
		})
	}))
	defer server.Close()

	tool := NewResearchCompanyTool(research.NewClient(server.URL, "careerdev/jobagent", zap.NewNop()))
	if tool.Name() != "research_company" {
		t.Fatalf("unexpected tool name: %q", tool.Name())
	}

	output, err := tool.Execute(context.Background(), map[string]any{
		"company_name": "Tech Corp",
		"domain":       "techcorp.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	profile, ok := output.(*research.CompanyProfile)
	if !ok {
		t.Fatalf("unexpected output type: %T", output)
	}

	if profile.CompanyName != "Tech Corp" || profile.Domain != "techcorp.com" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestResearchCompanyToolRejectsNonString(t *testing.T) {
	tool := NewResearchCompanyTool(nil)

	if _, err := tool.Execute(context.Background(), map[string]any{"company_name": 42}); err == nil {
		t.Fatal("expected error for non-string company name")
	}
}
