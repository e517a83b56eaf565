/*
resolver.go - Holiday calendar resolution

PURPOSE:
  Turns (year, mode) into a Calendar: the period boundaries, the public
  holidays inside it and their aggregated Count.

FISCAL MODE:
  A fiscal year Y runs Apr 1 Y - Mar 31 Y+1. It is never fetched directly:
  the resolver resolves calendar(Y) and calendar(Y+1), keeps months >= April
  from the first and months < April from the second, and concatenates them.
  Both calendar years go through the cache, so a fiscal lookup warms them.

FALLBACK:
  Provider errors are logged at warn level and the static table is tried.
  If the static table has no entry either, ErrNoHolidayData is returned and
  the caller decides how to degrade (the wage calculator falls back to its
  static formula).

CACHING:
  Results are cached per "year-mode" in the resolver's Cache for its whole
  lifetime; ClearCache is the only invalidation.
*/
package holiday

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	minYear = 1900
	maxYear = 2200
)

// Resolver resolves holiday calendars through a provider chain and a cache.
type Resolver struct {
	Provider Provider
	Fallback Provider

	cache  *Cache
	logger *zap.Logger
}

// NewResolver creates a resolver. A nil cache creates a private one; the
// fallback defaults to the embedded static table.
func NewResolver(provider Provider, cache *Cache, logger *zap.Logger) *Resolver {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if provider == nil {
		provider = NewStaticProvider()
	}
	return &Resolver{
		Provider: provider,
		Fallback: NewStaticProvider(),
		cache:    cache,
		logger:   logger,
	}
}

// Resolve returns the calendar for (year, mode).
func (r *Resolver) Resolve(ctx context.Context, year int, mode Mode) (*Calendar, error) {
	if year < minYear || year > maxYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}
	if mode != ModeCalendar && mode != ModeFiscal {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	key := CacheKey(year, mode)
	if cal, ok := r.cache.Get(key); ok {
		return cal, nil
	}

	var (
		cal *Calendar
		err error
	)
	if mode == ModeFiscal {
		cal, err = r.resolveFiscal(ctx, year)
	} else {
		cal, err = r.resolveCalendar(ctx, year)
	}
	if err != nil {
		return nil, err
	}

	r.cache.Put(key, cal)
	return cal, nil
}

// Count returns the aggregated holiday count for (year, mode).
func (r *Resolver) Count(ctx context.Context, year int, mode Mode) (Count, error) {
	cal, err := r.Resolve(ctx, year, mode)
	if err != nil {
		return Count{}, err
	}
	return cal.Count, nil
}

// Holidays returns the public holidays of (year, mode) sorted ascending.
func (r *Resolver) Holidays(ctx context.Context, year int, mode Mode) ([]Holiday, error) {
	cal, err := r.Resolve(ctx, year, mode)
	if err != nil {
		return nil, err
	}
	out := make([]Holiday, len(cal.Holidays))
	copy(out, cal.Holidays)
	return out, nil
}

// ClearCache drops every resolved calendar.
func (r *Resolver) ClearCache() {
	r.cache.Clear()
}

// CacheSize returns the number of cached calendars.
func (r *Resolver) CacheSize() int {
	return r.cache.Len()
}

func (r *Resolver) resolveCalendar(ctx context.Context, year int) (*Calendar, error) {
	fetched, err := r.fetch(ctx, year)
	if err != nil {
		return nil, err
	}

	// Providers may return other years or unsorted dates.
	period := PeriodFor(year, ModeCalendar)
	holidays := make([]Holiday, 0, len(fetched))
	for _, h := range fetched {
		if period.Contains(h.Date) {
			holidays = append(holidays, h)
		}
	}
	sortHolidays(holidays)

	return newCalendar(year, ModeCalendar, period, holidays), nil
}

func (r *Resolver) resolveFiscal(ctx context.Context, year int) (*Calendar, error) {
	first, err := r.Resolve(ctx, year, ModeCalendar)
	if err != nil {
		return nil, err
	}
	second, err := r.Resolve(ctx, year+1, ModeCalendar)
	if err != nil {
		return nil, err
	}

	var holidays []Holiday
	for _, h := range first.Holidays {
		if h.Date.Month() >= FiscalYearStartMonth {
			holidays = append(holidays, h)
		}
	}
	for _, h := range second.Holidays {
		if h.Date.Month() < FiscalYearStartMonth {
			holidays = append(holidays, h)
		}
	}
	sortHolidays(holidays)

	return newCalendar(year, ModeFiscal, PeriodFor(year, ModeFiscal), holidays), nil
}

// fetch asks the primary provider, then the fallback.
func (r *Resolver) fetch(ctx context.Context, year int) ([]Holiday, error) {
	holidays, err := r.Provider.Holidays(ctx, year)
	if err == nil {
		return holidays, nil
	}
	if errors.Is(err, context.Canceled) {
		return nil, err
	}

	r.logger.Warn("holiday provider failed, using static table",
		zap.Int("year", year),
		zap.Error(err),
	)

	if r.Fallback == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoHolidayData, year)
	}
	holidays, ferr := r.Fallback.Holidays(ctx, year)
	if ferr != nil {
		return nil, ferr
	}
	return holidays, nil
}
