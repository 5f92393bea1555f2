package tools

import (
	"context"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp"
)

// Registrar describes the subset of the router needed to register tools.
type Registrar interface {
	Register(mcp.Tool) error
}

// JobService is the job side of the domain used by search and detail tools
type JobService interface {
	Search(ctx context.Context, criteria domain.SearchCriteria) ([]domain.JobSummary, error)
	Details(ctx context.Context, id domain.JobID) (domain.JobDetail, error)
}

// ApplicationService is the application side of the domain used by apply and history tools
type ApplicationService interface {
	Apply(ctx context.Context, req application.Request) (domain.ApplicationRecord, domain.JobDetail, error)
	History(limit int) ([]domain.ApplicationRecord, int)
}

// RegisterAll installs every tool into the provided registrar.
func RegisterAll(r Registrar, jobs JobService, apps ApplicationService) error {
	all := []mcp.Tool{
		NewSearchJobs(jobs),
		NewJobDetails(jobs),
		NewApplyToJob(apps),
		NewApplicationHistory(apps),
	}

	for _, tool := range all {
		if err := r.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
