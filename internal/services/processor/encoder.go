package processor

import (
	"image"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// encodeImage always writes PNG. The enlarged output is lossless by contract.
func (p *ImageProcessor) encodeImage(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG, imaging.PNGCompressionLevel(png.DefaultCompression))
}
