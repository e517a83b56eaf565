/*
scheduler.go - Holiday calendar prefetch scheduler

PURPOSE:
  Periodically resolves the holiday calendars that wage calculations are
  most likely to ask for, so requests hit a warm cache instead of waiting
  on the external holiday provider.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Warms calendar(Y), calendar(Y+1) and fiscal(Y) for the current year Y
  - Failures are logged and retried on the next tick; the resolver falls
    back to the static table on its own
  - Records the time of the last completed run for the health endpoint

CONFIGURATION:
  - Interval: How often to prefetch (default: 24 hours)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewPrefetchScheduler(resolver, logger)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - holiday/resolver.go: Resolver and its cache
  - handlers.go: ClearHolidayCache endpoint
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/warp/wage-engine/holiday"
	"go.uber.org/zap"
)

// prefetchTimeout bounds one prefetch run.
const prefetchTimeout = 30 * time.Second

// PrefetchScheduler keeps upcoming holiday calendars resolved.
type PrefetchScheduler struct {
	Resolver *holiday.Resolver
	Interval time.Duration
	Enabled  bool

	now    func() time.Time
	logger *zap.Logger

	ticker  *time.Ticker
	stop    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	lastRun time.Time
}

// NewPrefetchScheduler creates a new scheduler.
func NewPrefetchScheduler(resolver *holiday.Resolver, logger *zap.Logger) *PrefetchScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrefetchScheduler{
		Resolver: resolver,
		Interval: 24 * time.Hour,
		Enabled:  true,
		now:      time.Now,
		logger:   logger.Named("prefetch"),
	}
}

// Start begins the scheduler.
func (ps *PrefetchScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled || ps.Interval <= 0 {
		ps.logger.Info("disabled, not starting")
		return
	}
	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.Interval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)

	go ps.run(ps.ticker, ps.stop)

	ps.logger.Info("started", zap.Duration("interval", ps.Interval))
}

// Stop stops the scheduler and waits for a running prefetch to finish.
func (ps *PrefetchScheduler) Stop() {
	ps.mu.Lock()
	if ps.ticker == nil {
		ps.mu.Unlock()
		return
	}
	ps.ticker.Stop()
	close(ps.stop)
	ps.ticker = nil
	ps.mu.Unlock()

	ps.wg.Wait()
	ps.logger.Info("stopped")
}

func (ps *PrefetchScheduler) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer ps.wg.Done()

	// Run immediately on start
	ps.RunNow()

	for {
		select {
		case <-ticker.C:
			ps.RunNow()
		case <-stop:
			return
		}
	}
}

// PrefetchTarget is one calendar kept warm by the scheduler.
type PrefetchTarget struct {
	Year int
	Mode holiday.Mode
}

// Targets returns the calendars warmed for the given instant.
func Targets(now time.Time) []PrefetchTarget {
	y := now.Year()
	return []PrefetchTarget{
		{Year: y, Mode: holiday.ModeCalendar},
		{Year: y + 1, Mode: holiday.ModeCalendar},
		{Year: y, Mode: holiday.ModeFiscal},
	}
}

// RunNow prefetches immediately and returns how many calendars resolved.
func (ps *PrefetchScheduler) RunNow() int {
	ctx, cancel := context.WithTimeout(context.Background(), prefetchTimeout)
	defer cancel()

	warmed := 0
	for _, t := range Targets(ps.now()) {
		if _, err := ps.Resolver.Resolve(ctx, t.Year, t.Mode); err != nil {
			ps.logger.Warn("prefetch failed",
				zap.Int("year", t.Year), zap.String("mode", string(t.Mode)), zap.Error(err))
			continue
		}
		warmed++
	}

	ps.mu.Lock()
	ps.lastRun = ps.now()
	ps.mu.Unlock()

	ps.logger.Debug("prefetch completed", zap.Int("warmed", warmed))
	return warmed
}

// LastRun returns when the last prefetch completed, zero if never.
func (ps *PrefetchScheduler) LastRun() time.Time {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.lastRun
}

// GetNextRunTime returns when the next scheduled prefetch will occur.
func (ps *PrefetchScheduler) GetNextRunTime() time.Time {
	return ps.LastRun().Add(ps.Interval)
}
