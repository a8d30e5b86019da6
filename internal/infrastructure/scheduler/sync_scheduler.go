// Package scheduler runs recurring background jobs.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/application/contentsync"
)

// SyncRunner executes one catalog sync pass
type SyncRunner interface {
	Run(ctx context.Context) (*contentsync.SyncResult, error)
}

// SyncSchedulerConfig holds configuration for the sync scheduler
type SyncSchedulerConfig struct {
	// Interval is how often a sync pass runs
	Interval time.Duration
	// RunOnStart triggers a pass immediately instead of waiting a full
	// interval first
	RunOnStart bool
}

// DefaultSyncSchedulerConfig returns the default scheduler configuration
func DefaultSyncSchedulerConfig() SyncSchedulerConfig {
	return SyncSchedulerConfig{
		Interval:   time.Hour,
		RunOnStart: false,
	}
}

// SyncScheduler triggers catalog sync runs on a fixed interval.
// Failures are logged and swallowed; the next tick always fires.
type SyncScheduler struct {
	config SyncSchedulerConfig
	runner SyncRunner
	logger *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(config SyncSchedulerConfig, runner SyncRunner, logger *zap.Logger) *SyncScheduler {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &SyncScheduler{
		config: config,
		runner: runner,
		logger: logger,
	}
}

// Start starts the scheduler loop
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("interval", s.config.Interval),
		zap.Bool("run_on_start", s.config.RunOnStart),
	)

	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runLoop fires a sync pass every interval
func (s *SyncScheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.runOnce(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

// runOnce executes a single sync pass, logging instead of propagating errors
func (s *SyncScheduler) runOnce(ctx context.Context) {
	start := time.Now()
	result, err := s.runner.Run(ctx)
	if err != nil {
		s.logger.Error("scheduled catalog sync failed",
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	if result.Skipped {
		s.logger.Debug("scheduled catalog sync skipped")
		return
	}
	s.logger.Info("scheduled catalog sync finished",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
	)
}
