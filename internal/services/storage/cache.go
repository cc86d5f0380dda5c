package storage

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"

	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const CacheKeyPrefix = "enlarge_cache:"

// GetFromCache looks in the local cache first, then redis. A miss returns
// (nil, nil).
func (s *StorageService) GetFromCache(ctx context.Context, cacheKey string) ([]byte, error) {
	if data, ok := s.localCache.Get(cacheKey); ok {
		s.metrics.CacheHit("local")
		return data, nil
	}

	if s.redisClient == nil {
		return nil, nil
	}

	data, err := s.redisClient.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	s.metrics.CacheHit("redis")
	s.setLocal(cacheKey, data)
	return data, nil
}

// SetCache stores data in both tiers. A redis failure is returned but the
// local tier is still populated.
func (s *StorageService) SetCache(ctx context.Context, cacheKey string, data []byte) error {
	s.setLocal(cacheKey, data)

	if s.redisClient == nil {
		return nil
	}
	return s.redisClient.Set(ctx, cacheKey, data, s.cacheDuration).Err()
}

func (s *StorageService) setLocal(key string, data []byte) {
	if !s.localCache.SetWithTTL(key, data, int64(len(data)), s.cacheDuration) {
		s.logger.Debug("Local cache rejected entry", zap.String("cache_key", key))
		return
	}
	s.localCache.Wait()
}

// GenerateCacheKey derives a key from the image content and the enlarge
// parameters, so re-uploads of the same file under another name still hit.
func (s *StorageService) GenerateCacheKey(data []byte, req *models.EnlargeRequest) string {
	hash := sha256.New()
	hash.Write(data)
	hash.Write([]byte("|" + req.Algorithm + "|" + strconv.FormatFloat(req.ScaleFactor, 'g', -1, 64)))
	return fmt.Sprintf("%s%x", CacheKeyPrefix, hash.Sum(nil))
}

func (s *StorageService) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	local := s.localCache.Metrics
	stats := map[string]interface{}{
		"local": map[string]interface{}{
			"hits":      local.Hits(),
			"misses":    local.Misses(),
			"ratio":     local.Ratio(),
			"cost_used": local.CostAdded() - local.CostEvicted(),
		},
	}

	if s.redisClient == nil {
		stats["redis"] = "not configured"
		return stats, nil
	}

	dbSize, err := s.redisClient.DBSize(ctx).Result()
	if err != nil {
		return stats, fmt.Errorf("failed to read redis stats: %w", err)
	}
	stats["redis"] = map[string]interface{}{
		"db_keys": dbSize,
	}

	return stats, nil
}
