package resample

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadrant() *Image {
	img := NewImage(2, 2)
	img.Set(0, 0, [3]uint8{0, 0, 0})
	img.Set(0, 1, [3]uint8{255, 0, 0})
	img.Set(1, 0, [3]uint8{0, 255, 0})
	img.Set(1, 1, [3]uint8{0, 0, 255})
	return img
}

func randomImage(t *testing.T, width, height int, seed int64) *Image {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	img := NewImage(width, height)
	rng.Read(img.Pix)
	return img
}

// distinctImage gives every pixel a unique colour.
func distinctImage(width, height int) *Image {
	img := NewImage(width, height)
	for r := 0; r < height; r++ {
		for c := 0; c < width; c++ {
			n := r*width + c
			img.Set(r, c, [3]uint8{uint8(n), uint8(n >> 8), uint8(255 - n%256)})
		}
	}
	return img
}

func TestResample_DimensionLaw(t *testing.T) {
	scales := []float64{0.5, 1, 1.5, 2, 2.3, 3, 3.7, 4}
	sizes := [][2]int{{1, 1}, {2, 2}, {3, 5}, {7, 4}, {16, 9}}

	for _, strategy := range Strategies() {
		for _, size := range sizes {
			for _, scale := range scales {
				img := randomImage(t, size[0], size[1], 7)
				wantH := int(math.Floor(float64(size[1]) * scale))
				wantW := int(math.Floor(float64(size[0]) * scale))
				if wantH == 0 || wantW == 0 {
					continue
				}

				out, err := Resample(img, scale, strategy)
				require.NoError(t, err, "%s %dx%d x%v", strategy, size[0], size[1], scale)
				assert.Equal(t, wantH, out.Height)
				assert.Equal(t, wantW, out.Width)
				assert.Equal(t, Channels, out.Channels)
				assert.Len(t, out.Pix, wantH*wantW*Channels)
			}
		}
	}
}

func TestResample_IdentityScale(t *testing.T) {
	img := randomImage(t, 13, 11, 42)

	for _, strategy := range Strategies() {
		out, err := Resample(img, 1.0, strategy)
		require.NoError(t, err)
		require.Equal(t, img.Width, out.Width)
		require.Equal(t, img.Height, out.Height)

		for i := range img.Pix {
			diff := int(out.Pix[i]) - int(img.Pix[i])
			if strategy == NearestNeighbor {
				require.Zero(t, diff, "%s sample %d", strategy, i)
			} else {
				require.LessOrEqual(t, diff*diff, 1, "%s sample %d", strategy, i)
			}
		}
	}
}

func TestResample_BoundarySafety(t *testing.T) {
	img := quadrant()

	for _, strategy := range Strategies() {
		out, err := Resample(img, 2.3, strategy)
		require.NoError(t, err)
		require.Equal(t, 4, out.Height)
		require.Equal(t, 4, out.Width)

		// The last row and column map past index 1 and must clamp to the
		// bottom-right source pixel.
		assert.Equal(t, [3]uint8{0, 0, 255}, out.At(3, 3), strategy)
		assert.Equal(t, img.At(0, 1), out.At(0, 3), strategy)
		assert.Equal(t, img.At(1, 0), out.At(3, 0), strategy)
	}
}

func TestResample_BoundarySafetyManyScales(t *testing.T) {
	img := randomImage(t, 3, 2, 3)

	for _, strategy := range Strategies() {
		for scale := 1.0; scale < 6; scale += 0.17 {
			assert.NotPanics(t, func() {
				_, err := Resample(img, scale, strategy)
				assert.NoError(t, err)
			}, "%s x%v", strategy, scale)
		}
	}
}

func TestNearest_BlockReplication(t *testing.T) {
	img := distinctImage(5, 4)

	for _, scale := range []float64{1, 1.5, 2, 2.3, 3, 4.7} {
		out, err := Nearest(img, scale)
		require.NoError(t, err)

		for i := 0; i < out.Height; i++ {
			for j := 0; j < out.Width; j++ {
				r := min(int(math.Floor(float64(i)/scale)), img.Height-1)
				c := min(int(math.Floor(float64(j)/scale)), img.Width-1)
				require.Equal(t, img.At(r, c), out.At(i, j), "x%v at (%d,%d)", scale, i, j)
			}
		}
	}
}

func TestNearest_QuadrantScenario(t *testing.T) {
	out, err := Resample(quadrant(), 2.0, NearestNeighbor)
	require.NoError(t, err)
	require.Equal(t, 4, out.Width)
	require.Equal(t, 4, out.Height)

	blocks := map[[2]int][3]uint8{
		{0, 0}: {0, 0, 0},
		{0, 1}: {255, 0, 0},
		{1, 0}: {0, 255, 0},
		{1, 1}: {0, 0, 255},
	}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			assert.Equal(t, blocks[[2]int{i / 2, j / 2}], out.At(i, j), "(%d,%d)", i, j)
		}
	}
}

func TestInterpolation_BlendBounds(t *testing.T) {
	img := randomImage(t, 9, 6, 99)

	for _, strategy := range []Strategy{Bilinear, Linear} {
		for _, scale := range []float64{1.3, 2, 2.3, 3.9} {
			out, err := Resample(img, scale, strategy)
			require.NoError(t, err)

			rows := mapAxis(out.Height, scale, img.Height)
			cols := mapAxis(out.Width, scale, img.Width)
			for i, r := range rows {
				for j, c := range cols {
					neighbours := [][3]uint8{
						img.At(r.lo, c.lo), img.At(r.lo, c.hi),
						img.At(r.hi, c.lo), img.At(r.hi, c.hi),
					}
					got := out.At(i, j)
					for ch := 0; ch < Channels; ch++ {
						lo, hi := uint8(255), uint8(0)
						for _, n := range neighbours {
							lo = min(lo, n[ch])
							hi = max(hi, n[ch])
						}
						require.GreaterOrEqual(t, got[ch], lo)
						require.LessOrEqual(t, got[ch], hi)
					}
				}
			}
		}
	}
}

func TestInterpolation_BilinearEqualsLinear(t *testing.T) {
	img := randomImage(t, 12, 8, 5)

	for _, scale := range []float64{1, 1.25, 2, 2.3, 3.33, 5} {
		b, err := Resample(img, scale, Bilinear)
		require.NoError(t, err)
		l, err := Resample(img, scale, Linear)
		require.NoError(t, err)
		assert.Equal(t, b, l, "x%v", scale)
	}
}

func TestBilinear_Midpoint(t *testing.T) {
	img := NewImage(2, 1)
	img.Set(0, 0, [3]uint8{0, 0, 0})
	img.Set(0, 1, [3]uint8{255, 200, 50})

	for _, fn := range []Func{BilinearResample, LinearResample} {
		out, err := fn(img, 2)
		require.NoError(t, err)
		require.Equal(t, 4, out.Width)
		require.Equal(t, 2, out.Height)

		assert.Equal(t, [3]uint8{0, 0, 0}, out.At(0, 0))
		assert.Equal(t, [3]uint8{128, 100, 25}, out.At(0, 1))
		assert.Equal(t, [3]uint8{255, 200, 50}, out.At(0, 2))
		assert.Equal(t, [3]uint8{255, 200, 50}, out.At(1, 3))
	}
}

func TestBilinear_FourWayBlend(t *testing.T) {
	img := NewImage(2, 2)
	img.Set(0, 0, [3]uint8{0, 0, 0})
	img.Set(0, 1, [3]uint8{100, 0, 0})
	img.Set(1, 0, [3]uint8{0, 100, 0})
	img.Set(1, 1, [3]uint8{100, 100, 200})

	out, err := Resample(img, 2, Bilinear)
	require.NoError(t, err)
	assert.Equal(t, [3]uint8{50, 50, 50}, out.At(1, 1))
}

func TestMapCoord(t *testing.T) {
	a := mapCoord(3, 2, 4)
	assert.Equal(t, axis{lo: 1, hi: 2, weight: 0.5}, a)

	a = mapCoord(7, 2, 4)
	assert.Equal(t, 3, a.lo)
	assert.Equal(t, 3, a.hi)

	a = mapCoord(3, 2.3, 2)
	assert.Equal(t, 1, a.lo)
	assert.Equal(t, 1, a.hi)

	a = mapCoord(0, 3, 1)
	assert.Equal(t, axis{}, a)
}

func TestResample_Rejections(t *testing.T) {
	img := quadrant()

	_, err := Resample(img, 0, NearestNeighbor)
	assert.ErrorIs(t, err, ErrInvalidScaleFactor)

	for _, scale := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err = Resample(img, scale, Bilinear)
		assert.ErrorIs(t, err, ErrInvalidScaleFactor, "%v", scale)
	}

	_, err = Resample(img, 0.1, Linear)
	assert.ErrorIs(t, err, ErrInvalidScaleFactor, "empty output")

	_, err = Resample(img, 2, Strategy("unknown"))
	assert.ErrorIs(t, err, ErrInvalidStrategy)

	rgba := &Image{Width: 2, Height: 2, Channels: 4, Pix: make([]uint8, 16)}
	for _, strategy := range Strategies() {
		_, err = Resample(rgba, 2, strategy)
		assert.ErrorIs(t, err, ErrMalformedInput, strategy)
	}

	_, err = Resample(&Image{Width: 0, Height: 2, Channels: 3}, 2, NearestNeighbor)
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Resample(&Image{Width: 2, Height: 2, Channels: 3, Pix: make([]uint8, 5)}, 2, NearestNeighbor)
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = Resample(nil, 2, Bilinear)
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestResample_RejectsHugeOutput(t *testing.T) {
	img := NewImage(1, 1)

	_, err := Resample(img, 1e6, NearestNeighbor)
	assert.ErrorIs(t, err, ErrAllocation)

	_, err = Resample(img, 1e300, Bilinear)
	assert.ErrorIs(t, err, ErrAllocation)
}

func TestResample_DoesNotMutateInput(t *testing.T) {
	img := randomImage(t, 4, 4, 11)
	before := append([]uint8(nil), img.Pix...)

	for _, strategy := range Strategies() {
		_, err := Resample(img, 2.5, strategy)
		require.NoError(t, err)
	}
	assert.Equal(t, before, img.Pix)
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStrategy("unknown")
	assert.ErrorIs(t, err, ErrInvalidStrategy)

	_, err = ParseStrategy("")
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestOutputSize(t *testing.T) {
	h, w := OutputSize(2, 3, 2.3)
	assert.Equal(t, 4, h)
	assert.Equal(t, 6, w)

	for _, scale := range []float64{0.5, 1.25, 2.3, 7} {
		img := NewImage(3, 2)
		wantH, wantW := OutputSize(img.Height, img.Width, scale)
		for _, strategy := range Strategies() {
			out, err := Resample(img, scale, strategy)
			require.NoError(t, err)
			assert.Equal(t, wantH, out.Height, "%s x%v", strategy, scale)
			assert.Equal(t, wantW, out.Width, "%s x%v", strategy, scale)
		}
	}
}

func TestResample_RejectsOversizedSide(t *testing.T) {
	_, err := Resample(NewImage(4, 1), float64(MaxOutputBytes), NearestNeighbor)
	assert.ErrorIs(t, err, ErrAllocation)

	_, err = Resample(NewImage(1, 1), 2e9, Linear)
	assert.ErrorIs(t, err, ErrAllocation)
}
