package resample

import (
	"fmt"
	"math"
)

// MaxOutputBytes caps the size of a single output buffer.
const MaxOutputBytes = 1 << 30

// axis is the source position of one output row or column: the two integer
// neighbours and the fractional weight toward hi.
type axis struct {
	lo, hi int
	weight float64
}

// mapCoord maps an output index back onto a source axis of the given size.
// Both neighbours are clamped to [0, size-1].
func mapCoord(out int, scale float64, size int) axis {
	src := float64(out) / scale
	lo := int(math.Floor(src))
	if lo < 0 {
		lo = 0
	}
	if lo >= size-1 {
		return axis{lo: size - 1, hi: size - 1}
	}
	return axis{lo: lo, hi: lo + 1, weight: src - float64(lo)}
}

func mapAxis(outSize int, scale float64, size int) []axis {
	coords := make([]axis, outSize)
	for i := range coords {
		coords[i] = mapCoord(i, scale, size)
	}
	return coords
}

// OutputSize returns the enlarged dimensions, floor(height*scale) by
// floor(width*scale).
func OutputSize(height, width int, scale float64) (int, int) {
	return int(math.Floor(float64(height) * scale)), int(math.Floor(float64(width) * scale))
}

// ValidateScaleFactor rejects non-positive and non-finite scale factors.
func ValidateScaleFactor(scale float64) error {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScaleFactor, scale)
	}
	return nil
}

// prepare validates the inputs shared by every strategy and allocates the
// output buffer.
func prepare(img *Image, scale float64) (*Image, error) {
	if err := ValidateScaleFactor(scale); err != nil {
		return nil, err
	}
	if err := img.validate(); err != nil {
		return nil, err
	}

	// Either side past the byte cap would also overflow int below.
	if float64(img.Height)*scale > MaxOutputBytes || float64(img.Width)*scale > MaxOutputBytes {
		return nil, fmt.Errorf("%w: scale %v on %dx%d exceeds %d bytes", ErrAllocation, scale, img.Width, img.Height, MaxOutputBytes)
	}

	h, w := OutputSize(img.Height, img.Width, scale)
	if h < 1 || w < 1 {
		return nil, fmt.Errorf("%w: %v produces an empty %dx%d image", ErrInvalidScaleFactor, scale, w, h)
	}
	if int64(h)*int64(w)*Channels > MaxOutputBytes {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d bytes", ErrAllocation, w, h, MaxOutputBytes)
	}

	return NewImage(w, h), nil
}

// toSample rounds a blended value to the nearest 8-bit sample.
func toSample(v float64) uint8 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
