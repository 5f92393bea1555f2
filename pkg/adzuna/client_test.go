package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient(Config{AppID: "id"}); err == nil {
		t.Fatalf("expected error without app key")
	}
}

func TestBuildSearchURL(t *testing.T) {
	c, err := NewClient(Config{AppID: "id", AppKey: "key", Country: "GB", BaseURL: "https://example.test/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	remote := true
	raw, err := c.buildSearchURL("devops engineer", SearchParams{
		Location:       "London",
		Remote:         &remote,
		ContractTime:   "full_time",
		ContractType:   "contract",
		ResultsPerPage: 500,
	})
	if err != nil {
		t.Fatalf("buildSearchURL: %v", err)
	}

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if u.Path != "/v1/api/jobs/gb/search/1" {
		t.Fatalf("unexpected path %s", u.Path)
	}

	q := u.Query()
	checks := map[string]string{
		"what":             "devops engineer",
		"where":            "London",
		"what_and":         "remote",
		"full_time":        "1",
		"contract":         "1",
		"results_per_page": "50",
	}
	for k, want := range checks {
		if got := q.Get(k); got != want {
			t.Fatalf("%s = %q, want %q", k, got, want)
		}
	}

	if _, err := c.buildSearchURL("  ", SearchParams{}); err == nil {
		t.Fatalf("expected error for blank query")
	}
}

func TestSearchJobsMapsPostings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"count": 2,
			"results": [
				{
					"id": "4242",
					"title": "Platform Engineer (Remote)",
					"company": {"display_name": "Acme"},
					"location": {"display_name": "Leeds"},
					"description": "Kubernetes and Go",
					"created": "2025-07-16T09:00:00Z",
					"redirect_url": "https://adzuna.example/4242",
					"contract_time": "full_time",
					"salary_min": 60000,
					"salary_max": 75000
				},
				{
					"title": "Support Analyst",
					"company": {"display_name": "Beta"},
					"location": {"display_name": "York"}
				}
			]
		}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	jobs, err := c.SearchJobs(context.Background(), "platform", SearchParams{})
	if err != nil {
		t.Fatalf("SearchJobs: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}

	first := jobs[0]
	if first.ID != "4242" || first.CompanyName != "Acme" || !first.Remote || first.SalaryMax != 75000 {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.PostedAt.IsZero() {
		t.Fatalf("expected posted date to be parsed")
	}
	if jobs[1].ID == "" || jobs[1].Remote {
		t.Fatalf("unexpected second job: %+v", jobs[1])
	}
}

func TestSearchJobsSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid app key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	_, err := c.SearchJobs(context.Background(), "platform", SearchParams{})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected API error with status, got %v", err)
	}
}
