package resample

// BilinearResample enlarges img by blending the four source neighbours of
// each output pixel, first along columns and then along rows.
func BilinearResample(img *Image, scale float64) (*Image, error) {
	out, err := prepare(img, scale)
	if err != nil {
		return nil, err
	}

	rows := mapAxis(out.Height, scale, img.Height)
	cols := mapAxis(out.Width, scale, img.Width)

	for i, r := range rows {
		rowWeight := r.weight
		for j, c := range cols {
			colWeight := c.weight

			topLeft := img.offset(r.lo, c.lo)
			topRight := img.offset(r.lo, c.hi)
			bottomLeft := img.offset(r.hi, c.lo)
			bottomRight := img.offset(r.hi, c.hi)
			dst := out.offset(i, j)

			for ch := 0; ch < Channels; ch++ {
				top := float64(img.Pix[topLeft+ch])*(1-colWeight) + float64(img.Pix[topRight+ch])*colWeight
				bottom := float64(img.Pix[bottomLeft+ch])*(1-colWeight) + float64(img.Pix[bottomRight+ch])*colWeight
				out.Pix[dst+ch] = toSample(top*(1-rowWeight) + bottom*rowWeight)
			}
		}
	}

	return out, nil
}
