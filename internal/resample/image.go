package resample

import "fmt"

// Channels is the number of samples per pixel the resamplers operate on.
const Channels = 3

// Image is a dense row-major pixel buffer. The sample for channel c of the
// pixel at (row, col) is Pix[(row*Width+col)*Channels+c].
type Image struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewImage allocates a zeroed RGB buffer.
func NewImage(width, height int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: Channels,
		Pix:      make([]uint8, width*height*Channels),
	}
}

// At returns the RGB samples at (row, col).
func (img *Image) At(row, col int) [3]uint8 {
	o := img.offset(row, col)
	return [3]uint8{img.Pix[o], img.Pix[o+1], img.Pix[o+2]}
}

// Set stores the RGB samples at (row, col).
func (img *Image) Set(row, col int, px [3]uint8) {
	o := img.offset(row, col)
	img.Pix[o], img.Pix[o+1], img.Pix[o+2] = px[0], px[1], px[2]
}

func (img *Image) offset(row, col int) int {
	return (row*img.Width + col) * img.Channels
}

func (img *Image) validate() error {
	if img == nil {
		return fmt.Errorf("%w: nil image", ErrMalformedInput)
	}
	if img.Channels != Channels {
		return fmt.Errorf("%w: expected %d channels, got %d", ErrMalformedInput, Channels, img.Channels)
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrMalformedInput, img.Width, img.Height)
	}
	if want := img.Width * img.Height * img.Channels; len(img.Pix) != want {
		return fmt.Errorf("%w: buffer holds %d samples, want %d", ErrMalformedInput, len(img.Pix), want)
	}
	return nil
}
