package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp"
)

// SearchJobsParams defines the arguments for the search_jobs tool
type SearchJobsParams struct {
	Title           string                 `json:"title"`
	Location        string                 `json:"location,omitempty"`
	ExperienceLevel domain.ExperienceLevel `json:"experience_level,omitempty"`
	JobType         domain.JobType         `json:"job_type,omitempty"`
	Remote          *bool                  `json:"remote,omitempty"`
	Limit           *int                   `json:"limit,omitempty"`
}

// SearchJobsResult is returned by search_jobs
type SearchJobsResult struct {
	Jobs  []domain.JobSummary `json:"jobs"`
	Count int                 `json:"count"`
}

type SearchJobs struct {
	jobs JobService
}

func NewSearchJobs(jobs JobService) *SearchJobs {
	return &SearchJobs{jobs: jobs}
}

func (t *SearchJobs) Name() string {
	return "search_jobs"
}

func (t *SearchJobs) Description() string {
	return "Search for jobs based on criteria"
}

func (t *SearchJobs) Parameters() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"title":            stringProp("Job title to search for (e.g., 'DevOps Engineer')"),
			"location":         stringProp("Location to search in (e.g., 'London, United Kingdom')"),
			"experience_level": enumProp("Experience level (Entry, Mid-Senior, Director+)", domain.ExperienceLevels),
			"job_type":         enumProp("Job type (Full-time, Part-time, Contract, etc.)", domain.JobTypes),
			"remote":           {Type: "boolean", Description: "Whether to search for remote jobs only"},
			"limit":            limitProp("Maximum number of jobs to return"),
		},
		Required: []string{"title"},
	}
}

func (t *SearchJobs) Execute(ctx context.Context, raw json.RawMessage) (any, error) {
	var p SearchJobsParams
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Title) == "" {
		return nil, mcp.MissingParameter("title")
	}

	limit := defaultLimit
	if p.Limit != nil {
		limit = *p.Limit
	}

	jobs, err := t.jobs.Search(ctx, domain.SearchCriteria{
		Title:           p.Title,
		Location:        p.Location,
		ExperienceLevel: p.ExperienceLevel,
		JobType:         p.JobType,
		Remote:          p.Remote,
		Limit:           limit,
	})
	if err != nil {
		return nil, classify(err, "")
	}

	if jobs == nil {
		jobs = []domain.JobSummary{}
	}
	return SearchJobsResult{Jobs: jobs, Count: len(jobs)}, nil
}
