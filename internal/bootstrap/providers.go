package bootstrap

import (
	"context"
	"fmt"

	"github.com/honeycarbs/jobapply-gateway/internal/config"
	"github.com/honeycarbs/jobapply-gateway/internal/domain"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job"
	adzunaProvider "github.com/honeycarbs/jobapply-gateway/internal/domain/job/providers/adzuna"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job/providers/linkedin"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp/tools"
	"github.com/honeycarbs/jobapply-gateway/internal/metrics"
	neo4jstore "github.com/honeycarbs/jobapply-gateway/internal/storage/neo4j"
	notionstore "github.com/honeycarbs/jobapply-gateway/internal/storage/notion"
	sheetsstore "github.com/honeycarbs/jobapply-gateway/internal/storage/sheets"
	"github.com/honeycarbs/jobapply-gateway/pkg/adzuna"
	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
	n4j "github.com/honeycarbs/jobapply-gateway/pkg/neo4j"
	"github.com/honeycarbs/jobapply-gateway/pkg/notion"
	sheetsclient "github.com/honeycarbs/jobapply-gateway/pkg/sheets"
	"github.com/honeycarbs/jobapply-gateway/pkg/shutdown"
)

// App is the fully wired gateway
type App struct {
	Server *mcp.Server
}

func newApp(server *mcp.Server) *App {
	return &App{Server: server}
}

// Targets lists what has to be stopped on shutdown, in order
func (a *App) Targets(cleanup func()) []shutdown.Stoppable {
	return []shutdown.Stoppable{
		a.Server,
		shutdown.StopFunc(func(context.Context) error {
			cleanup()
			return nil
		}),
	}
}

// Run serves until the server is shut down, then blocks until stopped is
// closed so the remaining shutdown targets can finish.
func (a *App) Run(stopped <-chan struct{}) error {
	if err := a.Server.Run(); err != nil {
		return err
	}
	<-stopped
	return nil
}

// provideJobSource builds the configured source. A missing or freshly generated
// profile leaves the source nil so job tools report "not initialized".
func provideJobSource(cfg config.Config, logger *logging.Logger) job.Source {
	if cfg.Generated {
		logger.Warn("created default configuration file, edit it with your details", "path", cfg.Path)
		return nil
	}

	p := cfg.Profile
	var (
		source job.Source
		err    error
	)
	switch p.Source {
	case config.SourceAdzuna:
		source, err = newAdzunaSource(p.Adzuna)
	default:
		source, err = linkedin.NewProvider(linkedin.Credentials{
			Username: p.LinkedIn.Username,
			Password: p.LinkedIn.Password,
		})
	}
	if err != nil {
		logger.Error("failed to initialize job source", "source", p.Source, "err", err)
		return nil
	}

	logger.Info("job source initialized", "source", source.Name())
	return source
}

func newAdzunaSource(cfg config.Adzuna) (job.Source, error) {
	client, err := adzuna.NewClient(adzuna.Config{
		AppID:   cfg.AppID,
		AppKey:  cfg.AppKey,
		Country: cfg.Country,
	})
	if err != nil {
		return nil, err
	}
	return adzunaProvider.NewProvider(client)
}

func providePreferences(cfg config.Config) job.Preferences {
	prefs := cfg.Profile.JobPreferences
	return job.Preferences{
		Locations:       prefs.Locations,
		ExperienceLevel: domain.ExperienceLevel(prefs.ExperienceLevel),
		JobType:         domain.JobType(prefs.JobType),
		RemoteOnly:      prefs.RemoteOnly,
	}
}

// provideTrackers connects every enabled tracker. A tracker that cannot be
// reached is logged and skipped; the gateway still serves requests.
func provideTrackers(ctx context.Context, cfg config.Config, logger *logging.Logger) ([]application.Tracker, func()) {
	var (
		trackers []application.Tracker
		closers  []func()
	)
	t := cfg.Profile.Trackers

	if t.Neo4j.Enabled() {
		client, err := n4j.NewClient(ctx, n4j.Config{
			URI:      t.Neo4j.URI,
			Username: t.Neo4j.Username,
			Password: t.Neo4j.Password,
		})
		if err != nil {
			logger.Warn("neo4j tracker disabled", "err", err)
		} else {
			trackers = append(trackers, neo4jstore.NewApplicationTracker(client, cfg.Profile.Source))
			closers = append(closers, func() { _ = client.Close(context.Background()) })
			logger.Info("Neo4j client initialized", "uri", t.Neo4j.URI)
		}
	}

	if t.Sheets.Enabled() {
		client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: t.Sheets.CredentialsPath})
		if err != nil {
			logger.Warn("sheets tracker disabled", "err", err)
		} else {
			trackers = append(trackers, sheetsstore.NewApplicationTracker(client, t.Sheets.SpreadsheetID, t.Sheets.Tab))
			logger.Info("Google Sheets tracker initialized", "spreadsheet_id", t.Sheets.SpreadsheetID)
		}
	}

	if t.Notion.Enabled() {
		client := notion.New(t.Notion.Token, t.Notion.DatabaseID)
		if err := client.Ping(ctx); err != nil {
			logger.Warn("notion tracker disabled", "err", err)
		} else {
			trackers = append(trackers, notionstore.NewApplicationTracker(client))
			logger.Info("Notion tracker initialized", "database_id", t.Notion.DatabaseID)
		}
	}

	cleanup := func() {
		for _, c := range closers {
			c()
		}
	}
	return trackers, cleanup
}

func provideApplicationService(
	jobs application.JobLookup,
	ledger application.Ledger,
	trackers []application.Tracker,
	cfg config.Config,
	logger *logging.Logger,
) (*application.Service, error) {
	p := cfg.Profile
	return application.NewService(jobs, ledger,
		application.WithProfile(application.Profile{
			Name:               p.PersonalInfo.Name,
			PhoneNumber:        p.Phone(),
			DefaultCoverLetter: p.DefaultCoverLetter,
		}),
		application.WithTrackers(trackers...),
		application.WithTrackerTimeout(cfg.TrackerTimeout),
		application.WithLogger(logger.Named("application")),
	)
}

func provideRouter(
	logger *logging.Logger,
	reg *metrics.Registry,
	jobs tools.JobService,
	apps tools.ApplicationService,
) (*mcp.Router, error) {
	router := mcp.NewRouter(
		mcp.WithLogger(logger.Named("router")),
		mcp.WithRecorder(reg),
	)
	if err := tools.RegisterAll(router, jobs, apps); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}
	return router, nil
}

func provideServer(logger *logging.Logger, cfg config.Config, router *mcp.Router, reg *metrics.Registry) *mcp.Server {
	return mcp.NewServer(logger.Named("http"), cfg.HTTP, router, reg)
}
