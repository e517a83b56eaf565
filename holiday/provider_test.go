package holiday_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/wage-engine/holiday"
)

func TestAPIProvider_ParsesDateDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2025/date.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"2025-05-05":"こどもの日","2025-01-01":"元日","2025-11-24":"休日 振替休日","2026-01-01":"元日"}`))
	}))
	defer srv.Close()

	p := holiday.NewAPIProvider(holiday.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)

	got, err := p.Holidays(context.Background(), 2025)
	require.NoError(t, err)
	require.Len(t, got, 3, "entries outside the year are dropped")

	assert.Equal(t, holiday.Date(2025, time.January, 1), got[0].Date)
	assert.Equal(t, holiday.Date(2025, time.May, 5), got[1].Date)
	assert.True(t, got[2].IsSubstitute())
}

func TestAPIProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := holiday.NewAPIProvider(holiday.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)

	_, err := p.Holidays(context.Background(), 2099)
	require.Error(t, err)
	assert.ErrorIs(t, err, holiday.ErrProviderUnavailable)

	var perr *holiday.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusNotFound, perr.StatusCode)
}

func TestAPIProvider_FeedsResolverFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	api := holiday.NewAPIProvider(holiday.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	r := holiday.NewResolver(api, nil, nil)

	count, err := r.Count(context.Background(), 2026, holiday.ModeCalendar)
	require.NoError(t, err)
	assert.Equal(t, 121, count.Total)
}

func TestStaticProvider_Years(t *testing.T) {
	years := holiday.StaticYears()
	assert.GreaterOrEqual(t, len(years), 2)
	assert.Contains(t, years, 2025)
	assert.Contains(t, years, 2026)
}

func TestRedisCachedProvider_CachesYears(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	counting := &countingProvider{next: holiday.NewStaticProvider()}
	p := holiday.NewRedisCachedProvider(counting, rdb, time.Hour, nil)
	ctx := context.Background()

	first, err := p.Holidays(ctx, 2025)
	require.NoError(t, err)
	second, err := p.Holidays(ctx, 2025)
	require.NoError(t, err)

	assert.Equal(t, int32(1), counting.calls.Load())
	assert.Equal(t, len(first), len(second))
	assert.True(t, first[0].Date.Equal(second[0].Date))
	assert.True(t, mr.Exists("wage-engine:holidays:2025"))
	assert.Equal(t, time.Hour, mr.TTL("wage-engine:holidays:2025"))
}

func TestRedisCachedProvider_RedisDownFallsThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	counting := &countingProvider{next: holiday.NewStaticProvider()}
	p := holiday.NewRedisCachedProvider(counting, rdb, 0, nil)

	got, err := p.Holidays(context.Background(), 2025)
	require.NoError(t, err)
	assert.Len(t, got, 19)
}

func TestRedisCachedProvider_PropagatesProviderError(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	p := holiday.NewRedisCachedProvider(holiday.NewStaticProvider(), rdb, 0, nil)

	_, err := p.Holidays(context.Background(), 1999)
	assert.ErrorIs(t, err, holiday.ErrNoHolidayData)
	assert.False(t, mr.Exists("wage-engine:holidays:1999"))
}
