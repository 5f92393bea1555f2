package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job"
	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
)

// DefaultHistoryLimit is used when a history query does not specify a limit
const DefaultHistoryLimit = 10

const defaultTrackerTimeout = 5 * time.Second

// Cover letter template placeholders filled in at apply time
const (
	PlaceholderJobTitle = "[JOB_TITLE]"
	PlaceholderCompany  = "[COMPANY_NAME]"
	PlaceholderName     = "[YOUR_NAME]"
)

// Profile carries the applicant defaults from the persisted configuration
type Profile struct {
	Name               string
	PhoneNumber        string
	DefaultCoverLetter string
}

// JobLookup resolves cached jobs and exposes the job source
type JobLookup interface {
	Lookup(id domain.JobID) (domain.JobDetail, error)
	Source() job.Source
}

// Request describes one apply call; nil pointers mean "use the profile default"
type Request struct {
	JobID       domain.JobID
	CoverLetter *string
	PhoneNumber *string
}

// Option configures Service
type Option func(*Service)

func WithTrackers(trackers ...Tracker) Option {
	return func(s *Service) {
		for _, t := range trackers {
			if t != nil {
				s.trackers = append(s.trackers, t)
			}
		}
	}
}

func WithProfile(p Profile) Option {
	return func(s *Service) {
		s.profile = p
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

func WithTrackerTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.trackerTimeout = d
		}
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service records applications against cached jobs
type Service struct {
	jobs           JobLookup
	ledger         Ledger
	trackers       Fanout
	profile        Profile
	clock          func() time.Time
	newID          func() uuid.UUID
	trackerTimeout time.Duration
	logger         *logging.Logger
}

func NewService(jobs JobLookup, ledger Ledger, opts ...Option) (*Service, error) {
	if jobs == nil {
		return nil, fmt.Errorf("application.Service: job lookup is required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("application.Service: ledger is required")
	}

	s := &Service{
		jobs:           jobs,
		ledger:         ledger,
		clock:          time.Now,
		newID:          uuid.New,
		trackerTimeout: defaultTrackerTimeout,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Apply submits an application for a cached job and appends it to the ledger.
// Repeated calls for the same job produce separate records.
func (s *Service) Apply(ctx context.Context, req Request) (domain.ApplicationRecord, domain.JobDetail, error) {
	target, err := s.jobs.Lookup(req.JobID)
	if err != nil {
		return domain.ApplicationRecord{}, domain.JobDetail{}, err
	}

	source := s.jobs.Source()
	if source == nil {
		return domain.ApplicationRecord{}, domain.JobDetail{}, job.ErrSourceUnavailable
	}

	coverLetter := s.renderCoverLetter(target.JobSummary)
	if req.CoverLetter != nil {
		coverLetter = *req.CoverLetter
	}
	phone := s.profile.PhoneNumber
	if req.PhoneNumber != nil {
		phone = *req.PhoneNumber
	}

	receipt, err := source.SubmitApplication(ctx, target.JobSummary, coverLetter, phone)
	if err != nil {
		return domain.ApplicationRecord{}, domain.JobDetail{}, &job.UpstreamError{Source: source.Name(), Op: "submit application", Err: err}
	}

	appliedAt := receipt.SubmittedAt
	if appliedAt.IsZero() {
		appliedAt = s.clock()
	}

	rec := domain.ApplicationRecord{
		ApplicationID:  s.newID(),
		JobID:          target.JobID,
		JobTitle:       target.Title,
		Company:        target.Company,
		AppliedAt:      appliedAt,
		Status:         domain.StatusApplied,
		CoverLetter:    domain.PreviewCoverLetter(coverLetter),
		PhoneNumber:    phone,
		ConfirmationID: receipt.ConfirmationID,
	}

	s.ledger.Append(rec)
	s.track(ctx, rec, target)

	return rec, target, nil
}

// History returns up to limit of the earliest applications and the ledger size
func (s *Service) History(limit int) ([]domain.ApplicationRecord, int) {
	return s.ledger.Head(limit)
}

func (s *Service) track(ctx context.Context, rec domain.ApplicationRecord, target domain.JobDetail) {
	if len(s.trackers) == 0 {
		return
	}

	// trackers outlive a cancelled request; the application is already recorded
	tctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.trackerTimeout)
	defer cancel()

	if err := s.trackers.Track(tctx, rec, target); err != nil {
		s.logger.Warn("application tracker failed",
			"application_id", rec.ApplicationID.String(),
			"job_id", rec.JobID,
			"err", err,
		)
	}
}

func (s *Service) renderCoverLetter(j domain.JobSummary) string {
	if s.profile.DefaultCoverLetter == "" {
		return ""
	}
	return strings.NewReplacer(
		PlaceholderJobTitle, j.Title,
		PlaceholderCompany, j.Company,
		PlaceholderName, s.profile.Name,
	).Replace(strings.TrimSpace(s.profile.DefaultCoverLetter))
}
