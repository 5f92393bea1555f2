package job

import (
	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

// Repository holds the last-seen version of every job returned by a search
type Repository interface {
	// Upsert stores jobs keyed by JobID; later writes replace earlier ones
	Upsert(jobs ...domain.JobSummary)

	// Get returns a copy of the cached record
	Get(id domain.JobID) (domain.JobDetail, bool)

	// Merge applies detail fields to the cached record and returns the stored result
	Merge(id domain.JobID, fields domain.DetailFields) (domain.JobDetail, bool)
}
