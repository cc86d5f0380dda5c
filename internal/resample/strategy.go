package resample

import "fmt"

// Strategy names one of the supported resampling algorithms. The values are
// the names clients send on the wire.
type Strategy string

const (
	NearestNeighbor Strategy = "zero_order_hold"
	Bilinear        Strategy = "bilinear_interpolation"
	Linear          Strategy = "linear_interpolation"
)

// Strategies lists every supported strategy in a stable order.
func Strategies() []Strategy {
	return []Strategy{NearestNeighbor, Bilinear, Linear}
}

// ParseStrategy validates a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	switch s {
	case NearestNeighbor, Bilinear, Linear:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, name)
}

func (s Strategy) String() string {
	return string(s)
}
