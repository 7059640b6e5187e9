package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLookup(t *testing.T) {
	var gotName, gotDomain, gotAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotName = r.URL.Query().Get("name")
		gotDomain = r.URL.Query().Get("domain")
		gotAgent = r.Header.Get("User-Agent")

		json.NewEncoder(w).Encode(CompanyProfile{
			CompanyName: "Tech Corp",
			Domain:      "techcorp.com",
			Overview: Overview{
				Industry:     "Technology",
				Founded:      2010,
				Size:         "1000-5000 employees",
				Headquarters: "Madrid, Spain",
			},
			Culture: Culture{
				Rating:  4.2,
				Reviews: 156,
				Pros:    []string{"Remote work", "Health insurance"},
			},
			Careers: Careers{
				OpenPositions: 12,
				HiringTrend:   "Growing",
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "careerdev/jobagent", zap.NewNop())

	profile, err := client.Lookup(context.Background(), "Tech Corp", "techcorp.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotName != "Tech Corp" || gotDomain != "techcorp.com" {
		t.Fatalf("unexpected query params: name=%q domain=%q", gotName, gotDomain)
	}

	if gotAgent != "careerdev/jobagent" {
		t.Fatalf("unexpected user agent: %q", gotAgent)
	}

	if profile.Overview.Industry != "Technology" || profile.Overview.Founded != 2010 {
		t.Fatalf("unexpected overview: %+v", profile.Overview)
	}

	if profile.Culture.Rating != 4.2 || profile.Culture.Reviews != 156 {
		t.Fatalf("unexpected culture fields: %+v", profile.Culture)
	}

	if profile.Careers.OpenPositions != 12 {
		t.Fatalf("unexpected careers fields: %+v", profile.Careers)
	}
}

func TestLookupOmitsEmptyDomain(t *testing.T) {
	var hasDomain bool

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hasDomain = r.URL.Query().Has("domain")
		json.NewEncoder(w).Encode(CompanyProfile{CompanyName: "Tech Corp"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "careerdev/jobagent", zap.NewNop())

	if _, err := client.Lookup(context.Background(), "Tech Corp", "  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hasDomain {
		t.Fatal("expected blank domain to be dropped from the query")
	}
}

func TestLookupRequiresName(t *testing.T) {
	client := NewClient("http://localhost", "careerdev/jobagent", zap.NewNop())

	if _, err := client.Lookup(context.Background(), "   ", ""); err == nil {
		t.Fatal("expected error for empty company name")
	}
}

func TestLookupBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL, "careerdev/jobagent", zap.NewNop())

	_, err := client.Lookup(context.Background(), "Ghost Inc", "")
	if err == nil {
		t.Fatal("expected error for bad status")
	}

	if !strings.Contains(err.Error(), "bad status") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLookupEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("null"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "careerdev/jobagent", zap.NewNop())

	if _, err := client.Lookup(context.Background(), "Tech Corp", ""); err == nil {
		t.Fatal("expected error for missing profile")
	}
}
