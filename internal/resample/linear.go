package resample

// LinearResample enlarges img by interpolating two horizontal lerps p1 and
// p2 vertically. It yields the same values as BilinearResample but is kept
// as its own selectable algorithm.
func LinearResample(img *Image, scale float64) (*Image, error) {
	out, err := prepare(img, scale)
	if err != nil {
		return nil, err
	}

	rows := mapAxis(out.Height, scale, img.Height)
	cols := mapAxis(out.Width, scale, img.Width)

	for x, r := range rows {
		wx := r.weight
		for y, c := range cols {
			wy := c.weight
			q11, q12 := img.offset(r.lo, c.lo), img.offset(r.lo, c.hi)
			q21, q22 := img.offset(r.hi, c.lo), img.offset(r.hi, c.hi)
			dst := out.offset(x, y)

			for ch := 0; ch < Channels; ch++ {
				p1 := (1-wy)*float64(img.Pix[q11+ch]) + wy*float64(img.Pix[q12+ch])
				p2 := (1-wy)*float64(img.Pix[q21+ch]) + wy*float64(img.Pix[q22+ch])
				out.Pix[dst+ch] = toSample((1-wx)*p1 + wx*p2)
			}
		}
	}

	return out, nil
}
