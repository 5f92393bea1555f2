package notion

import (
	"context"

	gnt "github.com/dstotijn/go-notion"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
)

var _ application.Tracker = (*ApplicationTracker)(nil)

type rowCreator interface {
	CreateRow(ctx context.Context, props gnt.DatabasePageProperties) (string, error)
}

// ApplicationTracker creates one Notion database page per application
type ApplicationTracker struct {
	client rowCreator
}

func NewApplicationTracker(client rowCreator) *ApplicationTracker {
	return &ApplicationTracker{client: client}
}

func (t *ApplicationTracker) Name() string {
	return "notion"
}

func (t *ApplicationTracker) Track(ctx context.Context, rec domain.ApplicationRecord, job domain.JobDetail) error {
	_, err := t.client.CreateRow(ctx, pageProperties(rec, job))
	return err
}

// richText builds a valid Notion rich_text slice from a plain string
func richText(s string) []gnt.RichText {
	if s == "" {
		return nil
	}
	return []gnt.RichText{
		{
			Text: &gnt.Text{
				Content: s,
			},
		},
	}
}

func pageProperties(rec domain.ApplicationRecord, job domain.JobDetail) gnt.DatabasePageProperties {
	props := gnt.DatabasePageProperties{}

	// Position is the database title property
	props["Position"] = gnt.DatabasePageProperty{
		Title: richText(rec.JobTitle),
	}

	if rec.Company != "" {
		props["Company"] = gnt.DatabasePageProperty{
			RichText: richText(rec.Company),
		}
	}

	if job.URL != "" {
		url := job.URL
		props["Job Posting"] = gnt.DatabasePageProperty{
			URL: &url,
		}
	}

	workMode := "On-site"
	if job.Remote {
		workMode = "Remote"
	}
	props["Work Mode"] = gnt.DatabasePageProperty{
		Select: &gnt.SelectOptions{Name: workMode},
	}

	if job.Location != "" {
		props["Location"] = gnt.DatabasePageProperty{
			RichText: richText(job.Location),
		}
	}

	if job.SalaryRange != "" {
		props["Salary"] = gnt.DatabasePageProperty{
			RichText: richText(job.SalaryRange),
		}
	}

	props["Stage"] = gnt.DatabasePageProperty{
		Select: &gnt.SelectOptions{Name: "Applied"},
	}

	applied := gnt.NewDateTime(rec.AppliedAt, true)
	props["Applied"] = gnt.DatabasePageProperty{
		Date: &gnt.Date{Start: applied},
	}

	return props
}
