package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"immigration-engine/internal/common/logger"
)

// CachedStore fronts a Store with a Redis cache of resolved entries. Cache
// failures degrade to the inner store; a cold or broken cache never fails an
// assessment.
type CachedStore struct {
	inner  Store
	redis  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore(inner Store, rdb *redis.Client, ttl time.Duration, log logger.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		redis:  rdb,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-cache"}),
	}
}

func cacheKey(program, country string, versionDate time.Time) string {
	return fmt.Sprintf("catalog:%s:%s:%s", country, program, versionDate.Format("2006-01-02"))
}

func (s *CachedStore) Get(ctx context.Context, program, country string, versionDate time.Time) (*RuleCatalogEntry, error) {
	key := cacheKey(program, country, versionDate)

	if val, err := s.redis.Get(ctx, key).Result(); err == nil {
		var entry RuleCatalogEntry
		if err := json.Unmarshal([]byte(val), &entry); err == nil {
			return &entry, nil
		}
		s.logger.Warn("discarding unreadable cache entry", map[string]interface{}{
			"key": key,
		})
	}

	entry, err := s.inner.Get(ctx, program, country, versionDate)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(entry); err == nil {
		if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
			s.logger.Warn("failed to cache catalog entry", map[string]interface{}{
				"key":   key,
				"error": err,
			})
		}
	}

	return entry, nil
}
