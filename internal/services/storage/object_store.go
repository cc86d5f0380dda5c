package storage

import (
	"context"
	"fmt"

	"github.com/phambaophuc/image-enlarge/internal/config"
)

// ObjectStore is a remote bucket that enlarged images are published to.
type ObjectStore interface {
	Name() string
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Health(ctx context.Context) error
}

func newObjectStore(cfg *config.Config) (ObjectStore, error) {
	switch cfg.Storage.Backend {
	case "", "none":
		return nil, nil
	case "supabase":
		return newSupabaseStore(cfg.Supabase), nil
	case "minio":
		return newMinioStore(cfg.Minio)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
