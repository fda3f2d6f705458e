package worker

import (
	"context"
	"time"

	"github.com/cadencehq/cadence/pkg/usecase"
	"github.com/cadencehq/cadence/pkg/utils/logging"
)

// NudgeWorker periodically scans every user's leads for stalled
// conversations and posts channel-escalation nudges.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type NudgeWorker struct {
	nudge    *usecase.NudgeUseCase
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewNudgeWorker creates a worker running the stall scan at the given interval
func NewNudgeWorker(nudge *usecase.NudgeUseCase, interval time.Duration) *NudgeWorker {
	return &NudgeWorker{
		nudge:    nudge,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background scan loop. The initial scan and periodic
// rescans run in a goroutine; server startup is not blocked.
func (w *NudgeWorker) Start(ctx context.Context) error {
	logging.Default().Info("nudge worker starting", "interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *NudgeWorker) Stop() {
	logging.Default().Info("nudge worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("nudge worker stopped")
}

func (w *NudgeWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.scan(ctx); err != nil {
		logging.Default().Error("initial stall scan failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.scan(ctx); err != nil {
				logging.Default().Error("stall scan failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			logging.Default().Info("nudge worker received stop signal")
			return

		case <-ctx.Done():
			logging.Default().Info("nudge worker context cancelled")
			return
		}
	}
}

func (w *NudgeWorker) scan(ctx context.Context) error {
	start := time.Now()

	if err := w.nudge.EvaluateAllUsers(ctx); err != nil {
		return err
	}

	logging.Default().Info("stall scan completed", "duration", time.Since(start).String())
	return nil
}
