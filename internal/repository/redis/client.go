package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/AlexisMrz/Connect-4-AI-Agent/internal/service/bot"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const decisionKeyPrefix = "c4:decision:"

// Connect opens a client and pings it. An empty addr means the cache is
// disabled and (nil, nil) is returned; an unreachable server is reported so
// the caller can decide to run without a cache.
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		log.Info().Str("component", "redis").Msg("no REDIS_URL, decision cache disabled")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "could not connect to redis at %s", addr)
	}

	log.Info().Str("component", "redis").Str("addr", addr).Msg("connected")
	return client, nil
}

// DecisionCache stores engine decisions as JSON under a position key.
type DecisionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDecisionCache(client *redis.Client, ttl time.Duration) *DecisionCache {
	return &DecisionCache{client: client, ttl: ttl}
}

// Get returns the cached decision for key. A miss is (zero, false, nil).
func (r *DecisionCache) Get(ctx context.Context, key string) (bot.Decision, bool, error) {
	raw, err := r.client.Get(ctx, decisionKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return bot.Decision{}, false, nil
	}
	if err != nil {
		return bot.Decision{}, false, errors.Wrap(err, "redis get")
	}

	var d bot.Decision
	if err := json.Unmarshal(raw, &d); err != nil {
		// a corrupt entry is a miss
		if err := r.Del(ctx, key); err != nil {
			log.Warn().Err(err).Str("component", "redis").Str("key", key).Msg("could not drop corrupt decision")
		}
		return bot.Decision{}, false, nil
	}
	return d, true, nil
}

// Set stores d under key with the cache's expiration.
func (r *DecisionCache) Set(ctx context.Context, key string, d bot.Decision) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return errors.Wrap(err, "encode decision")
	}
	return errors.Wrap(r.client.Set(ctx, decisionKeyPrefix+key, raw, r.ttl).Err(), "redis set")
}

// Del removes cached decisions.
func (r *DecisionCache) Del(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = decisionKeyPrefix + k
	}
	return errors.Wrap(r.client.Del(ctx, full...).Err(), "redis del")
}
