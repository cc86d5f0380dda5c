package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// NewJob builds a pending job for req.
func NewJob(req *models.JobRequest) *models.ProcessingJob {
	now := time.Now()
	return &models.ProcessingJob{
		ID:       uuid.New().String(),
		ImageURL: req.ImageURL,
		Request: models.EnlargeRequest{
			Algorithm:   req.Algorithm,
			ScaleFactor: req.ScaleFactor,
		},
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (q *QueueService) PublishJob(ctx context.Context, job *models.ProcessingJob) error {
	jobBytes, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.storage.SaveJob(ctx, job); err != nil {
		q.logger.Warn("Failed to record pending job", zap.String("job_id", job.ID), zap.Error(err))
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    job.ID,
			Body:         jobBytes,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish job: %w", err)
	}

	q.logger.Info("Job published to queue", zap.String("job_id", job.ID))
	return nil
}
