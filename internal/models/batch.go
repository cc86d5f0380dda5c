package models

import (
	"bytes"
	"time"
)

// BatchImage is the in-memory result of one batch item.
type BatchImage struct {
	Buffer       *bytes.Buffer
	FileSize     int64
	OriginalSize Dimensions
	Size         Dimensions
	Error        string
}

type BatchResponse struct {
	Images      []EnlargedImage `json:"images"`
	Failed      []BatchFailure  `json:"failed,omitempty"`
	ProcessedAt time.Time       `json:"processed_at"`
}

type BatchFailure struct {
	OriginalName string `json:"original_name"`
	Error        string `json:"error"`
}
