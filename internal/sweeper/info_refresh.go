package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/yoshitoke/nft141d/internal/adapter"
	"github.com/yoshitoke/nft141d/internal/domain"
	"github.com/yoshitoke/nft141d/internal/logger"
	"github.com/yoshitoke/nft141d/internal/registry"
)

// InfoRefreshSweeperConfig holds configuration for the info refresh sweeper
type InfoRefreshSweeperConfig struct {
	Interval       time.Duration // Time to sleep between refresh cycles
	WorkerPoolSize int           // Concurrent info calls per cycle
	MaxRetries     uint64        // Retries per vault for transient outcomes
	MaxElapsedTime time.Duration // Backoff budget per vault
}

// infoRefreshSweeper keeps the registry's vault info cache warm by polling
// every vault on a fixed interval. Each vault is refreshed independently on a
// worker pool; transient failures and unresolved calls retry with backoff
// inside the cycle.
type infoRefreshSweeper struct {
	config    *InfoRefreshSweeperConfig
	registry  *registry.Registry
	pool      pond.Pool
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewInfoRefreshSweeper creates a new info refresh sweeper
func NewInfoRefreshSweeper(config *InfoRefreshSweeperConfig, r *registry.Registry, clock adapter.Clock) Sweeper {
	return &infoRefreshSweeper{
		config:    config,
		registry:  r,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *infoRefreshSweeper) Name() string {
	return "info-refresh-sweeper"
}

// Start begins the sweeper's main loop
func (s *infoRefreshSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting info refresh sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Info refresh sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Info refresh sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runRefreshCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
			if !s.sleep(ctx, s.config.Interval) {
				s.cleanup()
				return nil
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *infoRefreshSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *infoRefreshSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping info refresh sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Info refresh sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Info refresh sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runRefreshCycle polls every committed vault once
func (s *infoRefreshSweeper) runRefreshCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	count, err := s.registry.VaultCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count vaults: %w", err)
	}
	if count == 0 {
		return nil
	}

	logger.InfoCtx(ctx, "Starting info refresh cycle", zap.Uint64("vault_count", count))

	var refreshed, failed atomic.Int32
	for index := uint64(0); index < count; index++ {
		s.pool.Submit(func() {
			if err := s.refreshOne(ctx, index); err != nil {
				failed.Add(1)
				logger.WarnCtx(ctx, "vault info refresh failed",
					zap.Uint64("index", index), zap.Error(err))
				return
			}
			refreshed.Add(1)
		})
	}

	// Wait for all refreshes to complete, then recreate the pool for the
	// next cycle
	s.pool.StopAndWait()
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithContext(ctx),
	)

	logger.InfoCtx(ctx, "Info refresh cycle complete",
		zap.Int32("refreshed", refreshed.Load()),
		zap.Int32("failed", failed.Load()),
		zap.Duration("duration", s.clock.Since(startTime)),
	)
	return nil
}

// refreshOne polls a single vault, retrying transient outcomes with backoff
func (s *infoRefreshSweeper) refreshOne(ctx context.Context, index uint64) error {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = s.config.MaxElapsedTime

	operation := func() error {
		_, err := s.registry.VaultInfoByIndex(ctx, index)
		if err == nil {
			return nil
		}
		// A missing vault will not appear by retrying
		if errors.Is(err, domain.ErrVaultNotFound) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, s.config.MaxRetries), ctx))
}

// sleep waits for d, returning false when interrupted by shutdown
func (s *infoRefreshSweeper) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-s.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
