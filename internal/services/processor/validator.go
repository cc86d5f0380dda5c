package processor

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/phambaophuc/image-enlarge/internal/models"
)

// ValidateImage checks the file size and that the header decodes as a known
// image format. The reader is rewound afterwards.
func (p *ImageProcessor) ValidateImage(file io.ReadSeeker, maxSize int64) error {
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return fmt.Errorf("failed to determine file size: %w", err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("failed to rewind file: %w", err)
	}

	if size > maxSize {
		return fmt.Errorf("%w: file size %d exceeds maximum allowed size %d", ErrFileTooLarge, size, maxSize)
	}
	if size == 0 {
		return fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	cfg, _, err := image.DecodeConfig(file)
	if err != nil {
		return fmt.Errorf("%w: invalid image format: %v", ErrInvalidImage, err)
	}
	if err := p.checkPixels(cfg); err != nil {
		return err
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}

// checkPixels rejects images whose decoded pixel count exceeds the limit.
func (p *ImageProcessor) checkPixels(cfg image.Config) error {
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > p.maxInputPixels {
		return fmt.Errorf("%w: %dx%d image exceeds %d pixels", ErrFileTooLarge, cfg.Width, cfg.Height, p.maxInputPixels)
	}
	return nil
}

// ImageDimensions reads the width and height from an encoded image header.
func ImageDimensions(data []byte) (models.Dimensions, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return models.Dimensions{}, fmt.Errorf("%w: invalid image format: %v", ErrInvalidImage, err)
	}
	return models.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
