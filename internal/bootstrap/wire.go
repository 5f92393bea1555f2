//go:build wireinject
// +build wireinject

package bootstrap

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/jobapply-gateway/internal/config"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/application"
	"github.com/honeycarbs/jobapply-gateway/internal/domain/job"
	"github.com/honeycarbs/jobapply-gateway/internal/mcp/tools"
	"github.com/honeycarbs/jobapply-gateway/internal/metrics"
	"github.com/honeycarbs/jobapply-gateway/internal/storage/memory"
	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
)

// InitializeApp creates the App with all components wired up
func InitializeApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, func(), error) {
	wire.Build(
		// Job source and cache
		provideJobSource,
		providePreferences,
		memory.NewJobCache,
		wire.Bind(new(job.Repository), new(*memory.JobCache)),
		job.NewServiceWithDeps,

		// Applications
		memory.NewLedger,
		wire.Bind(new(application.Ledger), new(*memory.Ledger)),
		wire.Bind(new(application.JobLookup), new(*job.Service)),
		provideTrackers,
		provideApplicationService,

		// Tools and transport
		wire.Bind(new(tools.JobService), new(*job.Service)),
		wire.Bind(new(tools.ApplicationService), new(*application.Service)),
		metrics.NewRegistry,
		provideRouter,
		provideServer,
		newApp,
	)

	return nil, nil, nil
}
