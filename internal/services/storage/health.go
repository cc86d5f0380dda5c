package storage

import (
	"context"
)

// HealthCheck checks Redis and the object store.
func (s *StorageService) HealthCheck(ctx context.Context) map[string]string {
	status := make(map[string]string)

	if s.redisClient == nil {
		status["redis"] = "not configured"
	} else if err := s.redisClient.Ping(ctx).Err(); err != nil {
		status["redis"] = "unhealthy: " + err.Error()
	} else {
		status["redis"] = "healthy"
	}

	if s.objects == nil {
		status["object_store"] = "not configured"
	} else if err := s.objects.Health(ctx); err != nil {
		status[s.objects.Name()] = "unhealthy: " + err.Error()
	} else {
		status[s.objects.Name()] = "healthy"
	}

	return status
}
