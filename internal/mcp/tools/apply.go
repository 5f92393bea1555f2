package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp"
)

// ApplyToJobParams defines the arguments for the apply_to_job tool.
// Nil pointers fall back to the profile defaults; an explicit "" is kept.
type ApplyToJobParams struct {
	JobID       string  `json:"job_id"`
	CoverLetter *string `json:"cover_letter,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

// ApplyToJobResult is returned by apply_to_job
type ApplyToJobResult struct {
	Application domain.ApplicationRecord `json:"application"`
	Message     string                   `json:"message"`
}

type ApplyToJob struct {
	apps ApplicationService
}

func NewApplyToJob(apps ApplicationService) *ApplyToJob {
	return &ApplyToJob{apps: apps}
}

func (t *ApplyToJob) Name() string {
	return "apply_to_job"
}

func (t *ApplyToJob) Description() string {
	return "Apply to a specific job with your profile"
}

func (t *ApplyToJob) Parameters() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"job_id":       stringProp("Job ID returned by search_jobs"),
			"cover_letter": stringProp("Custom cover letter for this application (optional)"),
			"phone_number": stringProp("Phone number to use for this application (optional)"),
		},
		Required: []string{"job_id"},
	}
}

func (t *ApplyToJob) Execute(ctx context.Context, raw json.RawMessage) (any, error) {
	var p ApplyToJobParams
	if err := decode(raw, &p); err != nil {
		return nil, err
	}
	if p.JobID == "" {
		return nil, mcp.MissingParameter("job_id")
	}

	rec, target, err := t.apps.Apply(ctx, application.Request{
		JobID:       p.JobID,
		CoverLetter: p.CoverLetter,
		PhoneNumber: p.PhoneNumber,
	})
	if err != nil {
		return nil, classify(err, p.JobID)
	}

	return ApplyToJobResult{
		Application: rec,
		Message:     fmt.Sprintf("Successfully applied to %s at %s", target.Title, target.Company),
	}, nil
}
