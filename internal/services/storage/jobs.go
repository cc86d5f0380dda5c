package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/redis/go-redis/v9"
)

const JobKeyPrefix = "job:"

// SaveJob records the current state of an async job. Job state is shared
// between replicas, so it lives only in redis when redis is configured.
func (s *StorageService) SaveJob(ctx context.Context, job *models.ProcessingJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	return s.setRemote(ctx, JobKeyPrefix+job.ID, data)
}

// GetJob returns the stored job, or nil when it is unknown or expired.
func (s *StorageService) GetJob(ctx context.Context, id string) (*models.ProcessingJob, error) {
	data, err := s.getRemote(ctx, JobKeyPrefix+id)
	if err != nil || data == nil {
		return nil, err
	}

	var job models.ProcessingJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return &job, nil
}

// setRemote writes to redis only. Without redis it falls back to the local
// cache.
func (s *StorageService) setRemote(ctx context.Context, key string, data []byte) error {
	if s.redisClient == nil {
		s.setLocal(key, data)
		return nil
	}
	if err := s.redisClient.Set(ctx, key, data, s.cacheDuration).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}
	return nil
}

func (s *StorageService) getRemote(ctx context.Context, key string) ([]byte, error) {
	if s.redisClient == nil {
		data, _ := s.localCache.Get(key)
		return data, nil
	}

	data, err := s.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get error: %w", err)
	}
	return data, nil
}
