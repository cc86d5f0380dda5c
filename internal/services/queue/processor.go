package queue

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/phambaophuc/image-enlarge/internal/services/processor"
	"github.com/phambaophuc/image-enlarge/pkg/utils"
	"go.uber.org/zap"
)

func (q *QueueService) processJob(ctx context.Context, job *models.ProcessingJob) (*models.EnlargedImage, error) {
	imageData, _, err := utils.DownloadImage(ctx, job.ImageURL, q.maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}

	res, err := q.enlargeCached(ctx, job, imageData)
	if err != nil {
		return nil, err
	}

	result := &models.EnlargedImage{
		ID:           job.ID,
		OriginalName: job.ImageURL,
		Algorithm:    job.Request.Algorithm,
		ScaleFactor:  job.Request.ScaleFactor,
		OriginalSize: res.OriginalSize,
		Size:         res.Size,
		FileSize:     int64(res.Buffer.Len()),
		ProcessedAt:  time.Now(),
	}

	path, err := q.storage.SaveLocal(res.Buffer.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to save enlarged image: %w", err)
	}
	result.LocalPath = path

	if q.storage.Backend() != "none" {
		url, err := q.storage.Upload(ctx, res.Buffer.Bytes(), utils.GenerateFilename(job.ID), models.ContentTypePNG)
		if err != nil {
			return nil, fmt.Errorf("failed to upload enlarged image: %w", err)
		}
		result.URL = url
	}

	return result, nil
}

// enlargeCached shares the PNG cache with the synchronous endpoints, so a
// job for an already enlarged image skips the resampling.
func (q *QueueService) enlargeCached(ctx context.Context, job *models.ProcessingJob, imageData []byte) (*processor.Result, error) {
	cacheKey := q.storage.GenerateCacheKey(imageData, &job.Request)

	cached, err := q.storage.GetFromCache(ctx, cacheKey)
	if err != nil {
		q.logger.Warn("Cache lookup failed", zap.String("job_id", job.ID), zap.Error(err))
	}
	if cached != nil {
		original, errOrig := processor.ImageDimensions(imageData)
		size, errSize := processor.ImageDimensions(cached)
		if errOrig == nil && errSize == nil {
			q.logger.Info("Cache hit", zap.String("job_id", job.ID))
			return &processor.Result{
				Buffer:       bytes.NewBuffer(cached),
				OriginalSize: original,
				Size:         size,
			}, nil
		}
		q.logger.Warn("Ignoring unreadable cache entry", zap.String("job_id", job.ID))
	}

	res, err := q.processor.EnlargeImage(bytes.NewReader(imageData), &job.Request)
	if err != nil {
		return nil, fmt.Errorf("failed to enlarge image: %w", err)
	}

	if err := q.storage.SetCache(ctx, cacheKey, res.Buffer.Bytes()); err != nil {
		q.logger.Warn("Failed to cache result", zap.String("job_id", job.ID), zap.Error(err))
	}

	return res, nil
}
