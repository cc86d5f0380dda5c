package models

import "time"

type EnlargedImage struct {
	ID           string     `json:"id"`
	OriginalName string     `json:"original_name"`
	URL          string     `json:"url,omitempty"`
	LocalPath    string     `json:"local_path,omitempty"`
	Algorithm    string     `json:"algorithm"`
	ScaleFactor  float64    `json:"scale_factor"`
	OriginalSize Dimensions `json:"original_size"`
	Size         Dimensions `json:"size"`
	FileSize     int64      `json:"file_size"`
	ProcessedAt  time.Time  `json:"processed_at"`
}
