package job

import (
	"context"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

// Source is an external job board the gateway delegates to (LinkedIn fixture, Adzuna, ...)
type Source interface {
	// e.g. "linkedin" or "adzuna"
	Name() string

	// SearchJobs returns postings matching criteria; it may return more than criteria.Limit
	SearchJobs(ctx context.Context, criteria domain.SearchCriteria) ([]domain.JobSummary, error)

	// FetchDetails returns enrichment fields for a posting previously returned by SearchJobs
	FetchDetails(ctx context.Context, job domain.JobSummary) (domain.DetailFields, error)

	// SubmitApplication sends an application for the posting
	SubmitApplication(ctx context.Context, job domain.JobSummary, coverLetter, phone string) (domain.ApplicationReceipt, error)
}
