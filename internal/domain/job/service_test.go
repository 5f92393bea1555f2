package job_test

import (
	"context"
	"errors"
	"testing"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job"
	"github.com/honeycarbs/jobapply-gateway/internal/storage/memory"
)

type stubSource struct {
	jobs      []domain.JobSummary
	fields    domain.DetailFields
	searchErr error
	detailErr error
	criteria  domain.SearchCriteria
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) SearchJobs(_ context.Context, c domain.SearchCriteria) ([]domain.JobSummary, error) {
	s.criteria = c
	return s.jobs, s.searchErr
}

func (s *stubSource) FetchDetails(context.Context, domain.JobSummary) (domain.DetailFields, error) {
	return s.fields, s.detailErr
}

func (s *stubSource) SubmitApplication(context.Context, domain.JobSummary, string, string) (domain.ApplicationReceipt, error) {
	return domain.ApplicationReceipt{}, nil
}

func newService(t *testing.T, src job.Source, prefs job.Preferences) (*job.Service, *memory.JobCache) {
	t.Helper()
	cache := memory.NewJobCache()
	svc, err := job.NewServiceWithDeps(cache, src, prefs)
	if err != nil {
		t.Fatalf("NewServiceWithDeps: %v", err)
	}
	return svc, cache
}

func TestNewServiceRequiresRepository(t *testing.T) {
	if _, err := job.NewService(); err == nil {
		t.Fatalf("expected error without repository")
	}
}

func TestSearchWithoutSource(t *testing.T) {
	svc, _ := newService(t, nil, job.Preferences{})
	_, err := svc.Search(context.Background(), domain.SearchCriteria{Title: "sre"})
	if !errors.Is(err, job.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

func TestSearchCachesAllAndTruncates(t *testing.T) {
	src := &stubSource{jobs: []domain.JobSummary{
		{JobID: "1", Title: "first"},
		{JobID: "2", Title: "second"},
		{JobID: "1", Title: "first again"},
		{JobID: "3", Title: "third"},
	}}
	svc, cache := newService(t, src, job.Preferences{})

	got, err := svc.Search(context.Background(), domain.SearchCriteria{Title: " devops ", Limit: 2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(got))
	}
	if got[0].JobID != "1" || got[0].Title != "first again" || got[1].JobID != "2" {
		t.Fatalf("unexpected order or duplicate handling: %+v", got)
	}
	if src.criteria.Title != "devops" {
		t.Fatalf("title not trimmed: %q", src.criteria.Title)
	}
	if cache.Len() != 3 {
		t.Fatalf("expected every unique job cached, got %d", cache.Len())
	}
}

func TestSearchNonPositiveLimitReturnsNoJobs(t *testing.T) {
	src := &stubSource{jobs: []domain.JobSummary{{JobID: "1", Title: "first"}}}
	svc, cache := newService(t, src, job.Preferences{})

	for _, limit := range []int{0, -4} {
		got, err := svc.Search(context.Background(), domain.SearchCriteria{Title: "sre", Limit: limit})
		if err != nil {
			t.Fatalf("Search(limit=%d): %v", limit, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("limit %d: expected empty non-nil slice, got %v", limit, got)
		}
	}
	if src.criteria.Title != "" || cache.Len() != 0 {
		t.Fatalf("source must not be queried for an empty page")
	}
}

func TestSearchPreferences(t *testing.T) {
	src := &stubSource{}
	svc, _ := newService(t, src, job.Preferences{
		Locations:       []string{"London", "Remote"},
		ExperienceLevel: domain.ExperienceMidSenior,
		RemoteOnly:      true,
	})

	onsite := false
	if _, err := svc.Search(context.Background(), domain.SearchCriteria{Title: "sre", Limit: 10, Remote: &onsite}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	c := src.criteria
	if c.Limit != 10 {
		t.Fatalf("limit = %d, want 10", c.Limit)
	}
	if c.Location != "London" || c.ExperienceLevel != domain.ExperienceMidSenior {
		t.Fatalf("preferences not applied: %+v", c)
	}
	if c.Remote == nil || *c.Remote {
		t.Fatalf("explicit remote=false must not be overridden")
	}
}

func TestSearchUpstreamError(t *testing.T) {
	src := &stubSource{searchErr: errors.New("boom")}
	svc, _ := newService(t, src, job.Preferences{})

	_, err := svc.Search(context.Background(), domain.SearchCriteria{Title: "sre", Limit: 10})
	var upstream *job.UpstreamError
	if !errors.As(err, &upstream) || upstream.Op != "search" {
		t.Fatalf("expected upstream search error, got %v", err)
	}
}

func TestDetailsMergesIntoCache(t *testing.T) {
	src := &stubSource{
		jobs:   []domain.JobSummary{{JobID: "1", Title: "SRE"}},
		fields: domain.DetailFields{FullDescription: "full", SkillsRequired: []string{"Go"}, SalaryRange: "£1"},
	}
	svc, cache := newService(t, src, job.Preferences{})

	if _, err := svc.Search(context.Background(), domain.SearchCriteria{Title: "sre", Limit: 10}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	detail, err := svc.Details(context.Background(), "1")
	if err != nil {
		t.Fatalf("Details: %v", err)
	}
	if detail.Title != "SRE" || detail.FullDescription != "full" {
		t.Fatalf("unexpected detail %+v", detail)
	}

	cached, _ := cache.Get("1")
	if !cached.Enriched() {
		t.Fatalf("detail fields were not written back to the cache")
	}
}

func TestDetailsUnknownJob(t *testing.T) {
	svc, _ := newService(t, &stubSource{}, job.Preferences{})
	if _, err := svc.Details(context.Background(), "nope"); !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDetailsUpstreamErrorLeavesCache(t *testing.T) {
	src := &stubSource{jobs: []domain.JobSummary{{JobID: "1"}}, detailErr: errors.New("down")}
	svc, cache := newService(t, src, job.Preferences{})
	svc.Search(context.Background(), domain.SearchCriteria{Title: "x", Limit: 10})

	_, err := svc.Details(context.Background(), "1")
	var upstream *job.UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if cached, _ := cache.Get("1"); cached.Enriched() {
		t.Fatalf("failed fetch modified cache")
	}
}
