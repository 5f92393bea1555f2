package job

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

// Preferences fill search filters the caller left empty
type Preferences struct {
	Locations       []string
	ExperienceLevel domain.ExperienceLevel
	JobType         domain.JobType
	RemoteOnly      bool
}

// Option configures Service
type Option func(*config)

type config struct {
	source Source
	repo   Repository
	prefs  Preferences
}

// WithSource sets the external job source; nil leaves the service uninitialized
func WithSource(source Source) Option {
	return func(c *config) {
		c.source = source
	}
}

// WithRepository sets the job cache
func WithRepository(repo Repository) Option {
	return func(c *config) {
		c.repo = repo
	}
}

// WithPreferences sets the default search filters
func WithPreferences(prefs Preferences) Option {
	return func(c *config) {
		c.prefs = prefs
	}
}

// NewService builds Service from options
func NewService(opts ...Option) (*Service, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.repo == nil {
		return nil, fmt.Errorf("job.Service: repository is required")
	}

	return &Service{
		source: cfg.source,
		repo:   cfg.repo,
		prefs:  cfg.prefs,
	}, nil
}

// NewServiceWithDeps creates a Service with direct dependencies (Wire-compatible)
func NewServiceWithDeps(repo Repository, source Source, prefs Preferences) (*Service, error) {
	return NewService(WithRepository(repo), WithSource(source), WithPreferences(prefs))
}

// Service searches the external source and keeps the job cache current
type Service struct {
	source Source
	repo   Repository
	prefs  Preferences
}

// Source returns the configured source, or nil when uninitialized
func (s *Service) Source() Source {
	return s.source
}

// Search queries the source, caches every returned job and returns at most criteria.Limit of them.
// A limit of zero or less returns no jobs without querying the source.
func (s *Service) Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.JobSummary, error) {
	if s.source == nil {
		return nil, ErrSourceUnavailable
	}

	criteria.Title = strings.TrimSpace(criteria.Title)
	if criteria.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if criteria.Limit <= 0 {
		return []domain.JobSummary{}, nil
	}
	criteria = s.applyPreferences(criteria)

	jobs, err := s.source.SearchJobs(ctx, criteria)
	if err != nil {
		return nil, &UpstreamError{Source: s.source.Name(), Op: "search", Err: err}
	}

	// last occurrence of an id wins, first-seen order is kept
	index := make(map[domain.JobID]int, len(jobs))
	unique := make([]domain.JobSummary, 0, len(jobs))
	for _, j := range jobs {
		if j.JobID == "" {
			continue
		}
		if i, ok := index[j.JobID]; ok {
			unique[i] = j
			continue
		}
		index[j.JobID] = len(unique)
		unique = append(unique, j)
	}

	s.repo.Upsert(unique...)

	if len(unique) > criteria.Limit {
		unique = unique[:criteria.Limit]
	}
	return unique, nil
}

// Lookup returns the cached record for id
func (s *Service) Lookup(id domain.JobID) (domain.JobDetail, error) {
	job, ok := s.repo.Get(id)
	if !ok {
		return domain.JobDetail{}, ErrNotFound
	}
	return job, nil
}

// Details fetches detail fields for a cached job and merges them into the cache
func (s *Service) Details(ctx context.Context, id domain.JobID) (domain.JobDetail, error) {
	cached, err := s.Lookup(id)
	if err != nil {
		return domain.JobDetail{}, err
	}
	if s.source == nil {
		return domain.JobDetail{}, ErrSourceUnavailable
	}

	fields, err := s.source.FetchDetails(ctx, cached.JobSummary)
	if err != nil {
		return domain.JobDetail{}, &UpstreamError{Source: s.source.Name(), Op: "fetch details", Err: err}
	}

	merged, ok := s.repo.Merge(id, fields)
	if !ok {
		return domain.JobDetail{}, ErrNotFound
	}
	return merged, nil
}

func (s *Service) applyPreferences(c domain.SearchCriteria) domain.SearchCriteria {
	if c.Location == "" && len(s.prefs.Locations) > 0 {
		c.Location = s.prefs.Locations[0]
	}
	if c.ExperienceLevel == "" && s.prefs.ExperienceLevel.Valid() {
		c.ExperienceLevel = s.prefs.ExperienceLevel
	}
	if c.JobType == "" && s.prefs.JobType.Valid() {
		c.JobType = s.prefs.JobType
	}
	if c.Remote == nil && s.prefs.RemoteOnly {
		remote := true
		c.Remote = &remote
	}
	return c
}
