package resample

import "errors"

var (
	ErrInvalidStrategy    = errors.New("invalid resampling strategy")
	ErrInvalidScaleFactor = errors.New("invalid scale factor")
	ErrMalformedInput     = errors.New("malformed input image")
	ErrAllocation         = errors.New("output image too large")
)
