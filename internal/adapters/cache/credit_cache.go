package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"user-admission/internal/core/domain"
	"user-admission/internal/core/services"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultCreditTTL is how long a fetched credit limit stays cached
const DefaultCreditTTL = 10 * time.Minute

const dateLayout = "2006-01-02"

// CreditScoreCache is a read-through redis cache in front of a
// CreditScoreProvider. Provider errors are never cached; redis failures
// fall back to the provider.
type CreditScoreCache struct {
	next  services.CreditScoreProvider
	redis *redis.Client
	ttl   time.Duration
	log   *zap.Logger
}

// NewCreditScoreCache wraps next with a redis cache
func NewCreditScoreCache(next services.CreditScoreProvider, rdb *redis.Client, ttl time.Duration, log *zap.Logger) *CreditScoreCache {
	if ttl <= 0 {
		ttl = DefaultCreditTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CreditScoreCache{next: next, redis: rdb, ttl: ttl, log: log}
}

// CreditKey returns the cache key for an identity. Spellings of a last name
// that differ only in case or surrounding space share one key
func CreditKey(lastName string, dateOfBirth time.Time) string {
	return "credit:" + domain.CreditIdentityName(lastName) + ":" + dateOfBirth.Format(dateLayout)
}

// GetCreditLimit implements services.CreditScoreProvider
func (c *CreditScoreCache) GetCreditLimit(ctx context.Context, lastName string, dateOfBirth time.Time) (int, error) {
	key := CreditKey(lastName, dateOfBirth)

	val, err := c.redis.Get(ctx, key).Result()
	switch {
	case err == nil:
		if limit, convErr := strconv.Atoi(val); convErr == nil {
			return limit, nil
		}
		c.log.Warn("discarding malformed cached credit limit", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("credit cache read failed", zap.String("key", key), zap.Error(err))
	}

	limit, err := c.next.GetCreditLimit(ctx, lastName, dateOfBirth)
	if err != nil {
		return 0, err
	}

	if err := c.redis.Set(ctx, key, strconv.Itoa(limit), c.ttl).Err(); err != nil {
		c.log.Warn("credit cache write failed", zap.String("key", key), zap.Error(err))
	}
	return limit, nil
}

// Invalidate drops the cached limit for an identity
func (c *CreditScoreCache) Invalidate(ctx context.Context, lastName string, dateOfBirth time.Time) error {
	return c.redis.Del(ctx, CreditKey(lastName, dateOfBirth)).Err()
}
