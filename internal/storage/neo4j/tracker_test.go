package neo4j

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

type recordingWriter struct {
	query  string
	params map[string]any
}

func (w *recordingWriter) Write(_ context.Context, query string, params map[string]any) error {
	w.query = query
	w.params = params
	return nil
}

func TestTrackWritesApplicationGraph(t *testing.T) {
	w := &recordingWriter{}
	tracker := NewApplicationTracker(w, "linkedin")

	appliedAt := time.Date(2025, 7, 21, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	err := tracker.Track(context.Background(),
		domain.ApplicationRecord{ApplicationID: id, AppliedAt: appliedAt, Status: domain.StatusApplied},
		domain.JobDetail{
			JobSummary:     domain.JobSummary{JobID: "42", Title: "SRE", Company: "Acme"},
			SkillsRequired: []string{"Go", " ", "AWS"},
		},
	)
	if err != nil {
		t.Fatalf("Track: %v", err)
	}

	if !strings.Contains(w.query, "(a)-[:FOR]->(j)") || !strings.Contains(w.query, "(j)-[:POSTED_BY]->(c)") {
		t.Fatalf("unexpected query %s", w.query)
	}

	job := w.params["job"].(map[string]any)
	app := w.params["app"].(map[string]any)
	if job["source"] != "linkedin" || job["externalId"] != "42" || len(job["skills"].([]any)) != 2 {
		t.Fatalf("unexpected job params %v", job)
	}
	if app["id"] != id.String() || app["appliedAt"] != appliedAt.UnixMilli() || app["status"] != "applied" {
		t.Fatalf("unexpected application params %v", app)
	}
}
