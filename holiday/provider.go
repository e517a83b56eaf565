package holiday

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// =============================================================================
// PROVIDER - Source of raw public holidays
// =============================================================================

// Provider enumerates the public holidays of a calendar year. The resolver
// performs its own calendar/fiscal slicing, so providers only deal in whole
// calendar years.
type Provider interface {
	Holidays(ctx context.Context, year int) ([]Holiday, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context, year int) ([]Holiday, error)

func (f ProviderFunc) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	return f(ctx, year)
}

// =============================================================================
// API PROVIDER - holidays-jp compatible HTTP endpoint
// =============================================================================

// DefaultAPIBaseURL serves /{year}/date.json documents of the form
// {"2025-01-01": "元日", ...}.
const DefaultAPIBaseURL = "https://holidays-jp.github.io/api/v1"

// APIConfig configures an APIProvider.
type APIConfig struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

// APIProvider fetches holidays over HTTP.
type APIProvider struct {
	client *resty.Client
	logger *zap.Logger
}

// NewAPIProvider creates a provider for the given endpoint.
func NewAPIProvider(cfg APIConfig, logger *zap.Logger) *APIProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultAPIBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json")

	return &APIProvider{client: client, logger: logger}
}

// Holidays fetches the holidays of year.
func (p *APIProvider) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	var body map[string]string
	resp, err := p.client.R().
		SetContext(ctx).
		SetPathParam("year", strconv.Itoa(year)).
		SetResult(&body).
		Get("/{year}/date.json")
	if err != nil {
		return nil, &ProviderError{Year: year, Err: err}
	}
	if resp.IsError() {
		return nil, &ProviderError{Year: year, StatusCode: resp.StatusCode()}
	}

	holidays, err := parseDateMap(year, body)
	if err != nil {
		return nil, &ProviderError{Year: year, Err: err}
	}

	p.logger.Debug("fetched holidays",
		zap.Int("year", year),
		zap.Int("count", len(holidays)),
	)
	return holidays, nil
}

// parseDateMap converts a date->name document into a sorted holiday list,
// dropping entries outside year.
func parseDateMap(year int, m map[string]string) ([]Holiday, error) {
	holidays := make([]Holiday, 0, len(m))
	for date, name := range m {
		t, err := time.Parse("2006-01-02", date)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", date, err)
		}
		if t.Year() != year {
			continue
		}
		holidays = append(holidays, Holiday{Date: truncate(t), Name: name})
	}
	sortHolidays(holidays)
	return holidays, nil
}

func sortHolidays(hs []Holiday) {
	sort.Slice(hs, func(i, j int) bool { return hs[i].Date.Before(hs[j].Date) })
}
