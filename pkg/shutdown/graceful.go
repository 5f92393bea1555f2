package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// Graceful waits in the background for one of signals, then stops every target
// in order sharing a single timeout budget. The returned channel is closed once
// all targets have been stopped.
func Graceful(signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) <-chan struct{} {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer stop()

		<-sigCtx.Done()
		log.Info("shutdown signal received")

		Stop(timeout, log, targets...)
	}()

	return done
}

// Stop shuts targets down without waiting for a signal
func Stop(timeout time.Duration, log *logging.Logger, targets ...Stoppable) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := 0
	for i, s := range targets {
		if s == nil {
			continue
		}
		if err := s.Shutdown(ctx); err != nil {
			failed++
			log.Warn("shutdown target returned error", "index", i, "err", err)
		}
	}

	if failed > 0 {
		log.Warn("graceful shutdown completed with errors", "failed", failed)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}
