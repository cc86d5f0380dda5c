package resample

// Nearest enlarges img by zero-order hold: each output pixel copies the
// source pixel at (floor(i/scale), floor(j/scale)).
func Nearest(img *Image, scale float64) (*Image, error) {
	out, err := prepare(img, scale)
	if err != nil {
		return nil, err
	}

	rows := mapAxis(out.Height, scale, img.Height)
	cols := mapAxis(out.Width, scale, img.Width)

	for i, r := range rows {
		for j, c := range cols {
			src := img.offset(r.lo, c.lo)
			dst := out.offset(i, j)
			copy(out.Pix[dst:dst+Channels], img.Pix[src:src+Channels])
		}
	}

	return out, nil
}
