package sheets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
)

var _ application.Tracker = (*ApplicationTracker)(nil)

type appender interface {
	AppendValues(ctx context.Context, spreadsheetID, rng string, values [][]any) error
}

// Header lists the columns written for each application
var Header = []string{"Applied At", "Job ID", "Title", "Company", "Location", "URL", "Status", "Confirmation", "Application ID"}

// ApplicationTracker appends one spreadsheet row per application
type ApplicationTracker struct {
	client        appender
	spreadsheetID string
	tab           string
}

func NewApplicationTracker(client appender, spreadsheetID, tab string) *ApplicationTracker {
	if tab == "" {
		tab = "Sheet1"
	}
	return &ApplicationTracker{client: client, spreadsheetID: spreadsheetID, tab: tab}
}

func (t *ApplicationTracker) Name() string {
	return "sheets"
}

func (t *ApplicationTracker) Track(ctx context.Context, rec domain.ApplicationRecord, job domain.JobDetail) error {
	return t.client.AppendValues(ctx, t.spreadsheetID, t.rng(), [][]any{row(rec, job)})
}

func (t *ApplicationTracker) rng() string {
	tab := t.tab
	if strings.ContainsAny(tab, " !'") {
		tab = "'" + strings.ReplaceAll(tab, "'", "''") + "'"
	}
	return fmt.Sprintf("%s!A1", tab)
}

func row(rec domain.ApplicationRecord, job domain.JobDetail) []any {
	return []any{
		rec.AppliedAt.UTC().Format(time.RFC3339),
		rec.JobID,
		rec.JobTitle,
		rec.Company,
		job.Location,
		job.URL,
		string(rec.Status),
		rec.ConfirmationID,
		rec.ApplicationID.String(),
	}
}
