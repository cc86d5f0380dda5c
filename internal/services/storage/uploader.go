package storage

import (
	"context"
	"errors"

	"github.com/phambaophuc/image-enlarge/pkg/utils"
)

var ErrNoObjectStore = errors.New("no object store configured")

// Upload publishes data to the object store under a unique key derived from
// filename and returns its URL.
func (s *StorageService) Upload(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if s.objects == nil {
		return "", ErrNoObjectStore
	}

	key := utils.GenerateStorageKey(filename)
	return s.objects.Upload(ctx, key, data, contentType)
}
