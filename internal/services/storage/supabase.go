package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/phambaophuc/image-enlarge/internal/config"
	storage_go "github.com/supabase-community/storage-go"
)

type supabaseStore struct {
	client *storage_go.Client
	bucket string
}

func newSupabaseStore(cfg config.SupabaseConfig) *supabaseStore {
	return &supabaseStore{
		client: storage_go.NewClient(cfg.URL+"/storage/v1", cfg.KEY, nil),
		bucket: cfg.BUCKET,
	}
}

func (s *supabaseStore) Name() string { return "supabase" }

func (s *supabaseStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to supabase: %w", err)
	}

	publicURL := s.client.GetPublicUrl(s.bucket, key)
	return publicURL.SignedURL, nil
}

func (s *supabaseStore) Health(ctx context.Context) error {
	_, err := s.client.ListFiles(s.bucket, "", storage_go.FileSearchOptions{Limit: 1})
	return err
}
