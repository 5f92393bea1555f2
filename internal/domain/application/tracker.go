package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
)

// Tracker mirrors a submitted application into an external bookkeeping system
type Tracker interface {
	Name() string
	Track(ctx context.Context, rec domain.ApplicationRecord, job domain.JobDetail) error
}

// Fanout notifies every tracker and joins their errors
type Fanout []Tracker

func (f Fanout) Name() string {
	return "fanout"
}

func (f Fanout) Track(ctx context.Context, rec domain.ApplicationRecord, job domain.JobDetail) error {
	var errs []error
	for _, t := range f {
		if t == nil {
			continue
		}
		if err := t.Track(ctx, rec, job); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", t.Name(), err))
		}
	}
	return errors.Join(errs...)
}
