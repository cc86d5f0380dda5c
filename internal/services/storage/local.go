package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/phambaophuc/image-enlarge/pkg/utils"
	"go.uber.org/zap"
)

// SaveLocal writes data into the results directory under a timestamp-derived
// name and returns the absolute path.
func (s *StorageService) SaveLocal(data []byte) (string, error) {
	dir, err := filepath.Abs(s.resultsDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve results dir: %w", err)
	}

	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create results dir: %w", err)
		}
		s.logger.Info("Directory created", zap.String("dir", dir))
	}

	name := utils.GenerateResultFilename(time.Now())
	path := filepath.Join(dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		// Same microsecond as another request.
		ext := filepath.Ext(name)
		path = filepath.Join(dir, name[:len(name)-len(ext)]+"_"+uuid.New().String()[:8]+ext)
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create result file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write result file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close result file: %w", err)
	}

	s.logger.Info("File saved", zap.String("path", path))
	return path, nil
}
