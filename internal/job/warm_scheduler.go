// Package job provides background job schedulers.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"vending-content-service/internal/app/service"
	"vending-content-service/internal/domain"
	"vending-content-service/pkg/locker"
)

// WarmScheduler periodically pre-populates the list caches so site traffic
// rarely pays the CMS round trip. Distributed locking ensures only one
// instance warms at a time.
type WarmScheduler struct {
	catalogService *service.CatalogService
	interval       time.Duration
	timeout        time.Duration
	logger         *zap.Logger
	locker         locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WarmConfig holds warm scheduler configuration.
type WarmConfig struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewWarmScheduler creates a new WarmScheduler with distributed locking support.
func NewWarmScheduler(
	catalogSvc *service.CatalogService,
	cfg WarmConfig,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *WarmScheduler {
	return &WarmScheduler{
		catalogService: catalogSvc,
		interval:       cfg.Interval,
		timeout:        cfg.Timeout,
		logger:         logger,
		locker:         locker,
	}
}

// Start begins the background warm job.
func (s *WarmScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting warm scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler.
func (s *WarmScheduler) Stop() {
	s.logger.Info("stopping warm scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("warm scheduler stopped")
}

// run is the main loop of the scheduler.
func (s *WarmScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	// Run immediately if configured
	if runOnStartup {
		s.executeWarm()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeWarm()
		}
	}
}

// executeWarm warms every list cache under a distributed lock.
//
// Locking behavior:
//   - Lock TTL = interval duration (cooldown model, not timeout)
//   - Success: Lock held for full interval to prevent duplicate warms
//   - Failure: Lock released immediately to allow retry by another instance
func (s *WarmScheduler) executeWarm() {
	const lockKey = "warm:scheduler:lock"

	// Try to acquire lock with interval-based TTL (cooldown model)
	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance is warming caches, skipping execution")

		return
	}

	// Lock acquired - warm with timeout
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	filters := domain.ListFilters{}
	warms := []struct {
		kind domain.Kind
		run  func(context.Context) (int, error)
	}{
		{domain.KindProductType, func(ctx context.Context) (int, error) {
			items, err := s.catalogService.GetProductTypes(ctx, filters)

			return len(items), err
		}},
		{domain.KindBusinessGoal, func(ctx context.Context) (int, error) {
			items, err := s.catalogService.GetBusinessGoals(ctx, filters)

			return len(items), err
		}},
		{domain.KindMachine, func(ctx context.Context) (int, error) {
			items, err := s.catalogService.GetMachines(ctx, filters)

			return len(items), err
		}},
		{domain.KindTechnology, func(ctx context.Context) (int, error) {
			items, err := s.catalogService.GetTechnologies(ctx, filters)

			return len(items), err
		}},
		{domain.KindCaseStudy, func(ctx context.Context) (int, error) {
			items, err := s.catalogService.GetCaseStudies(ctx, filters)

			return len(items), err
		}},
	}

	totalWarmed := 0
	totalErrors := 0

	for _, w := range warms {
		count, err := w.run(ctx)
		if err != nil {
			totalErrors++
			s.logger.Warn("cache warm failed",
				zap.String("kind", string(w.kind)),
				zap.Error(err),
			)

			continue
		}
		totalWarmed += count
	}

	// Handle success vs error scenarios
	if totalErrors > 0 {
		// Release lock immediately on error (allow immediate retry)
		if err := s.locker.Release(s.ctx, lockKey); err != nil {
			s.logger.Error("failed to release lock after warm error", zap.Error(err))
		}
		s.logger.Info("warm completed with errors, lock released for retry",
			zap.Int("entries_warmed", totalWarmed),
			zap.Int("kinds_failed", totalErrors),
		)
	} else {
		// Lock will expire naturally after interval (cooldown period)
		s.logger.Info("warm completed successfully, lock held for cooldown",
			zap.Int("entries_warmed", totalWarmed),
			zap.Duration("cooldown", s.interval),
		)
	}
}
