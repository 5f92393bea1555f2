package neo4j

import (
	"context"
	"strings"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
)

var _ application.Tracker = (*ApplicationTracker)(nil)

// writer is the subset of the Neo4j client used by the tracker
type writer interface {
	Write(ctx context.Context, query string, params map[string]any) error
}

// ApplicationTracker mirrors applications into a graph:
// (:Application)-[:FOR]->(:Job)-[:POSTED_BY]->(:Company), (:Job)-[:REQUIRES]->(:Skill)
type ApplicationTracker struct {
	client writer
	source string
}

// NewApplicationTracker creates a tracker; source labels the jobs it writes
func NewApplicationTracker(client writer, source string) *ApplicationTracker {
	return &ApplicationTracker{client: client, source: source}
}

func (t *ApplicationTracker) Name() string {
	return "neo4j"
}

const trackApplicationQuery = `
	MERGE (j:Job {source: $job.source, externalId: $job.externalId})
	SET j.title = $job.title,
	    j.location = $job.location,
	    j.remote = $job.remote,
	    j.url = $job.url,
	    j.salaryRange = $job.salaryRange
	MERGE (c:Company {name: $job.company})
	MERGE (j)-[:POSTED_BY]->(c)
	WITH j
	FOREACH (skill IN $job.skills |
		MERGE (s:Skill {id: toLower(skill)})
		ON CREATE SET s.name = skill
		MERGE (j)-[:REQUIRES]->(s)
	)
	MERGE (a:Application {id: $app.id})
	SET a.appliedAt = datetime({epochMillis: $app.appliedAt}),
	    a.status = $app.status,
	    a.confirmationId = $app.confirmationId
	MERGE (a)-[:FOR]->(j)
`

// Track upserts the job graph and records the application node
func (t *ApplicationTracker) Track(ctx context.Context, rec domain.ApplicationRecord, job domain.JobDetail) error {
	skills := make([]any, 0, len(job.SkillsRequired))
	for _, s := range job.SkillsRequired {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	return t.client.Write(ctx, trackApplicationQuery, map[string]any{
		"job": map[string]any{
			"source":      t.source,
			"externalId":  job.JobID,
			"title":       job.Title,
			"company":     job.Company,
			"location":    job.Location,
			"remote":      job.Remote,
			"url":         job.URL,
			"salaryRange": job.SalaryRange,
			"skills":      skills,
		},
		"app": map[string]any{
			"id":             rec.ApplicationID.String(),
			"appliedAt":      rec.AppliedAt.UnixMilli(),
			"status":         string(rec.Status),
			"confirmationId": rec.ConfirmationID,
		},
	})
}
