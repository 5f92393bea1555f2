package tools

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp"
)

// JobDetailsParams defines the arguments for the get_job_details tool
type JobDetailsParams struct {
	JobID string `json:"job_id"`
}

// JobDetailsResult is returned by get_job_details
type JobDetailsResult struct {
	Job domain.JobDetail `json:"job"`
}

type JobDetails struct {
	jobs JobService
}

func NewJobDetails(jobs JobService) *JobDetails {
	return &JobDetails{jobs: jobs}
}

func (t *JobDetails) Name() string {
	return "get_job_details"
}

func (t *JobDetails) Description() string {
	return "Get detailed information about a specific job"
}

func (t *JobDetails) Parameters() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"job_id": stringProp("Job ID returned by search_jobs"),
		},
		Required: []string{"job_id"},
	}
}

func (t *JobDetails) Execute(ctx context.Context, raw json.RawMessage) (any, error) {
	var p JobDetailsParams
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.JobID == "" {
		return nil, mcp.MissingParameter("job_id")
	}

	detail, err := t.jobs.Details(ctx, p.JobID)
	if err != nil {
		return nil, classify(err, p.JobID)
	}
	return JobDetailsResult{Job: detail}, nil
}
