package models

import "time"

type JobRequest struct {
	ImageURL    string  `json:"image_url" binding:"required,url"`
	Algorithm   string  `json:"algorithm" binding:"required"`
	ScaleFactor float64 `json:"scale_factor" binding:"required,gt=0"`
}

type ProcessingJob struct {
	ID        string         `json:"id"`
	ImageURL  string         `json:"image_url"`
	Request   EnlargeRequest `json:"request"`
	Status    string         `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Result    *EnlargedImage `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
}

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
