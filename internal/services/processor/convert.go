package processor

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/phambaophuc/image-enlarge/internal/resample"
)

// ToRGB flattens img into a 3-channel buffer. Alpha is dropped without
// compositing, so each pixel keeps its straight (non-premultiplied) colour.
func ToRGB(img image.Image) *resample.Image {
	nrgba := imaging.Clone(img)
	w, h := nrgba.Rect.Dx(), nrgba.Rect.Dy()

	out := resample.NewImage(w, h)
	for y := 0; y < h; y++ {
		src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+w*4]
		dst := out.Pix[y*w*resample.Channels : (y+1)*w*resample.Channels]
		for x := 0; x < w; x++ {
			copy(dst[x*3:x*3+3], src[x*4:x*4+3])
		}
	}
	return out
}

// FromRGB wraps an RGB buffer in an opaque NRGBA image.
func FromRGB(buf *resample.Image) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for i, j := 0, 0; i < len(buf.Pix); i, j = i+3, j+4 {
		img.Pix[j] = buf.Pix[i]
		img.Pix[j+1] = buf.Pix[i+1]
		img.Pix[j+2] = buf.Pix[i+2]
		img.Pix[j+3] = 0xff
	}
	return img
}
