// Package resample enlarges RGB pixel buffers by an arbitrary scale factor
// using nearest-neighbour, bilinear or linear interpolation.
//
// All functions are pure: they never retain the input buffer and always
// return a freshly allocated output, so concurrent calls are safe as long as
// callers do not share buffers.
package resample

import "fmt"

// Func is the signature shared by every strategy implementation.
type Func func(img *Image, scale float64) (*Image, error)

var strategies = map[Strategy]Func{
	NearestNeighbor: Nearest,
	Bilinear:        BilinearResample,
	Linear:          LinearResample,
}

// Resample validates strategy and dispatches to its implementation.
func Resample(img *Image, scale float64, strategy Strategy) (*Image, error) {
	fn, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, string(strategy))
	}
	return fn(img, scale)
}
