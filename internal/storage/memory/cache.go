package memory

import (
	"sync"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job"
)

var _ job.Repository = (*JobCache)(nil)

// JobCache keeps the last-seen record per job id for the lifetime of the process
type JobCache struct {
	mu   sync.RWMutex
	jobs map[domain.JobID]domain.JobDetail
}

func NewJobCache() *JobCache {
	return &JobCache{jobs: make(map[domain.JobID]domain.JobDetail)}
}

// Upsert replaces any existing record, including previously merged detail fields
func (c *JobCache) Upsert(jobs ...domain.JobSummary) {
	if len(jobs) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, j := range jobs {
		c.jobs[j.JobID] = domain.JobDetail{JobSummary: j}
	}
}

func (c *JobCache) Get(id domain.JobID) (domain.JobDetail, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	j, ok := c.jobs[id]
	if !ok {
		return domain.JobDetail{}, false
	}
	return j.Clone(), true
}

func (c *JobCache) Merge(id domain.JobID, fields domain.DetailFields) (domain.JobDetail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.jobs[id]
	if !ok {
		return domain.JobDetail{}, false
	}

	merged := current.Merge(fields)
	c.jobs[id] = merged
	return merged.Clone(), true
}

func (c *JobCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.jobs)
}
