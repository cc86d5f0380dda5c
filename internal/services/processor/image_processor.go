package processor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-enlarge/internal/metrics"
	"github.com/phambaophuc/image-enlarge/internal/models"
	"github.com/phambaophuc/image-enlarge/internal/resample"

	// Extra decoders beyond the ones imaging registers.
	_ "golang.org/x/image/webp"
)

const (
	DefaultWorkers        = 5
	DefaultMaxScaleFactor = 16
	DefaultMaxInputPixels = 40_000_000
)

var (
	ErrInvalidImage = errors.New("invalid image")
	ErrFileTooLarge = errors.New("file too large")
)

type ImageProcessor struct {
	metrics        *metrics.Metrics
	maxScaleFactor float64
	maxInputPixels int64
}

// Result is an encoded enlargement together with its geometry.
type Result struct {
	Buffer       *bytes.Buffer
	OriginalSize models.Dimensions
	Size         models.Dimensions
	Strategy     resample.Strategy
	Elapsed      time.Duration
}

func NewImageProcessor(m *metrics.Metrics, maxScaleFactor float64, maxInputPixels int64) *ImageProcessor {
	if maxScaleFactor <= 0 {
		maxScaleFactor = DefaultMaxScaleFactor
	}
	if maxInputPixels <= 0 {
		maxInputPixels = DefaultMaxInputPixels
	}
	return &ImageProcessor{
		metrics:        m,
		maxScaleFactor: maxScaleFactor,
		maxInputPixels: maxInputPixels,
	}
}

// EnlargeImage decodes r, scales it with the requested algorithm and encodes
// the result as PNG.
func (p *ImageProcessor) EnlargeImage(r io.Reader, req *models.EnlargeRequest) (*Result, error) {
	start := time.Now()

	result, err := p.enlarge(r, req)
	p.metrics.ObserveEnlarge(req.Algorithm, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result.Elapsed = time.Since(start)
	return result, nil
}

func (p *ImageProcessor) enlarge(r io.Reader, req *models.EnlargeRequest) (*Result, error) {
	strategy, err := p.ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	// The header alone bounds the decode allocation.
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image format: %v", ErrInvalidImage, err)
	}
	if err := p.checkPixels(cfg); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %v", ErrInvalidImage, err)
	}

	src := ToRGB(img)

	enlarged, err := resample.Resample(src, req.ScaleFactor, strategy)
	if err != nil {
		return nil, fmt.Errorf("failed to enlarge image: %w", err)
	}

	buffer := &bytes.Buffer{}
	if err := p.encodeImage(buffer, FromRGB(enlarged)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &Result{
		Buffer:       buffer,
		OriginalSize: models.Dimensions{Width: src.Width, Height: src.Height},
		Size:         models.Dimensions{Width: enlarged.Width, Height: enlarged.Height},
		Strategy:     strategy,
	}, nil
}

// ValidateRequest checks the algorithm name and scale factor without
// touching any image data.
func (p *ImageProcessor) ValidateRequest(req *models.EnlargeRequest) (resample.Strategy, error) {
	strategy, err := resample.ParseStrategy(req.Algorithm)
	if err != nil {
		return "", err
	}
	if err := resample.ValidateScaleFactor(req.ScaleFactor); err != nil {
		return "", err
	}
	if req.ScaleFactor > p.maxScaleFactor {
		return "", fmt.Errorf("%w: %v exceeds the maximum of %v", resample.ErrInvalidScaleFactor, req.ScaleFactor, p.maxScaleFactor)
	}
	return strategy, nil
}

func (p *ImageProcessor) MaxScaleFactor() float64 {
	return p.maxScaleFactor
}
