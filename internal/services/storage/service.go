package storage

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/phambaophuc/image-enlarge/internal/config"
	"github.com/phambaophuc/image-enlarge/internal/metrics"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type StorageService struct {
	objects       ObjectStore
	redisClient   *redis.Client
	localCache    *ristretto.Cache[string, []byte]
	resultsDir    string
	cacheDuration time.Duration
	logger        *zap.Logger
	metrics       *metrics.Metrics
}

func NewStorageService(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*StorageService, error) {
	objects, err := newObjectStore(cfg)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	maxCost := cfg.Cache.LocalMaxBytes
	if maxCost <= 0 {
		maxCost = 64 << 20
	}
	localCache, err := ristretto.NewCache(&ristretto.Config[string, []byte]{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create local cache: %w", err)
	}

	cacheDuration := cfg.Cache.Duration
	if cacheDuration <= 0 {
		cacheDuration = 24 * time.Hour
	}

	return &StorageService{
		objects:       objects,
		redisClient:   redisClient,
		localCache:    localCache,
		resultsDir:    cfg.Storage.ResultsDir,
		cacheDuration: cacheDuration,
		logger:        logger,
		metrics:       m,
	}, nil
}

// Close releases the cache and redis connections.
func (s *StorageService) Close() error {
	s.localCache.Close()
	if s.redisClient != nil {
		return s.redisClient.Close()
	}
	return nil
}

// Backend names the configured object store, or "none".
func (s *StorageService) Backend() string {
	if s.objects == nil {
		return "none"
	}
	return s.objects.Name()
}
