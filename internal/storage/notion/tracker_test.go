package notion

import (
	"context"
	"testing"
	"time"

	gnt "github.com/dstotijn/go-notion"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

type fakeCreator struct {
	props gnt.DatabasePageProperties
}

func (f *fakeCreator) CreateRow(_ context.Context, props gnt.DatabasePageProperties) (string, error) {
	f.props = props
	return "page-1", nil
}

func TestTrackBuildsPage(t *testing.T) {
	client := &fakeCreator{}
	tracker := NewApplicationTracker(client)

	rec := domain.ApplicationRecord{JobTitle: "SRE", Company: "Acme", AppliedAt: time.Date(2025, 7, 21, 10, 0, 0, 0, time.UTC)}
	job := domain.JobDetail{JobSummary: domain.JobSummary{URL: "https://example.test/42", Remote: true}}

	if err := tracker.Track(context.Background(), rec, job); err != nil {
		t.Fatalf("Track: %v", err)
	}

	p := client.props
	if p["Position"].Title[0].Text.Content != "SRE" {
		t.Fatalf("title not set: %+v", p["Position"])
	}
	if p["Work Mode"].Select.Name != "Remote" || p["Stage"].Select.Name != "Applied" {
		t.Fatalf("selects not set: %+v", p)
	}
	if *p["Job Posting"].URL != "https://example.test/42" {
		t.Fatalf("url not set")
	}
	if _, ok := p["Salary"]; ok {
		t.Fatalf("empty salary should be omitted")
	}
	if _, ok := p["Location"]; ok {
		t.Fatalf("empty location should be omitted")
	}

	job.Location = "Leeds"
	if err := tracker.Track(context.Background(), rec, job); err != nil {
		t.Fatalf("Track: %v", err)
	}
	loc, ok := client.props["Location"]
	if !ok || loc.RichText[0].Text.Content != "Leeds" {
		t.Fatalf("location not set: %+v", client.props)
	}
}
