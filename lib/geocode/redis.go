package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis"
	"github.com/rs/zerolog/log"
)

type RedisConfig struct {
	Host string
	Port int
	TTL  time.Duration
}

const cacheKeyPrefix = "geocode:"

// NewCachedClient wraps inner with a redis read-through cache keyed by query
// string. Repeated names across a corpus hit the backend once, and repeat
// runs see the same responses, which keeps output reproducible and the
// request rate within backend usage policies.
func NewCachedClient(inner Client, conf RedisConfig) Client {
	return &cached{
		inner: inner,
		store: &redisStore{
			client: redis.NewClient(&redis.Options{
				Addr: fmt.Sprintf("%s:%d", conf.Host, conf.Port)}),
		},
		ttl: conf.TTL,
	}
}

// store isolates the redis commands the cache needs, so tests can swap in an
// in-memory fake.
type store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, data []byte, ttl time.Duration) error
	Ready() bool
}

type redisStore struct {
	client *redis.Client
}

func (r *redisStore) Get(key string) ([]byte, bool, error) {
	b, err := r.client.Get(key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	} else if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *redisStore) Set(key string, data []byte, ttl time.Duration) error {
	return r.client.Set(key, data, ttl).Err()
}

func (r *redisStore) Ready() bool {
	return r.client.Ping().Err() == nil
}

type cached struct {
	inner Client
	store store
	ttl   time.Duration
}

func (c *cached) Lookup(ctx context.Context, query string) ([]Result, error) {
	key := cacheKeyPrefix + query

	b, found, err := c.store.Get(key)
	if err != nil {
		// a broken cache degrades to a straight lookup
		log.Warn().Err(err).Str("query", query).Msg("geocode cache read failed")
	} else if found {
		var results []Result
		if err := json.Unmarshal(b, &results); err == nil {
			return results, nil
		}
		log.Warn().Str("query", query).Msg("corrupt geocode cache entry ignored")
	}

	results, err := c.inner.Lookup(ctx, query)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(results); err == nil {
		if err := c.store.Set(key, b, c.ttl); err != nil {
			log.Warn().Err(err).Str("query", query).Msg("geocode cache write failed")
		}
	}

	return results, nil
}

func (c *cached) Ready() bool {
	return c.store.Ready() && c.inner.Ready()
}
