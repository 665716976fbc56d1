package oddsService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisCacheKey     = "black_ledger:odds_cache"
	redisCacheTimeKey = "black_ledger:odds_cache:updated_at"
)

// RedisBackend keeps the cache object and its write time in two keys so a
// single timestamp still governs every entry.
type RedisBackend struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{
		client: client,
		now:    time.Now,
	}
}

func (r *RedisBackend) Load(ctx context.Context) (CacheEntries, time.Time, error) {
	values, err := r.client.MGet(ctx, redisCacheKey, redisCacheTimeKey).Result()
	if err != nil {
		return nil, time.Time{}, err
	}

	raw, ok := values[0].(string)
	if !ok {
		return CacheEntries{}, time.Time{}, nil
	}
	entries := CacheEntries{}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, time.Time{}, fmt.Errorf("error parsing odds cache: %w", err)
	}

	stamp, ok := values[1].(string)
	if !ok {
		return entries, time.Time{}, nil
	}
	nanos, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return entries, time.Time{}, nil
	}
	return entries, time.Unix(0, nanos), nil
}

func (r *RedisBackend) Save(ctx context.Context, entries CacheEntries) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, redisCacheKey, raw, 0)
	pipe.Set(ctx, redisCacheTimeKey, strconv.FormatInt(r.now().UnixNano(), 10), 0)
	_, err = pipe.Exec(ctx)
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
