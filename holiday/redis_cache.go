package holiday

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DefaultRedisTTL keeps fetched years for a week; published holiday tables
// change rarely.
const DefaultRedisTTL = 7 * 24 * time.Hour

const redisKeyPrefix = "wage-engine:holidays:"

// RedisCachedProvider wraps a Provider with a shared Redis cache so that
// several processes do not hit the upstream API for the same year.
// Redis failures are logged and bypassed.
type RedisCachedProvider struct {
	next   Provider
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisCachedProvider wraps next. A non-positive ttl uses DefaultRedisTTL.
func NewRedisCachedProvider(next Provider, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCachedProvider {
	if ttl <= 0 {
		ttl = DefaultRedisTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCachedProvider{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

// Holidays returns the cached holidays of year, fetching them on a miss.
func (p *RedisCachedProvider) Holidays(ctx context.Context, year int) ([]Holiday, error) {
	key := redisKeyPrefix + strconv.Itoa(year)

	raw, err := p.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []Holiday
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		p.logger.Warn("discarding corrupt holiday cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		p.logger.Warn("holiday cache read failed", zap.String("key", key), zap.Error(err))
	}

	holidays, err := p.next.Holidays(ctx, year)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(holidays); err == nil {
		if err := p.rdb.Set(ctx, key, data, p.ttl).Err(); err != nil {
			p.logger.Warn("holiday cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return holidays, nil
}
