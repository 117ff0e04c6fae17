package xbrz

import (
	"errors"
	"fmt"
)

// Precondition errors. They are returned wrapped with details; match them
// with errors.Is. None is returned after the destination has been touched.
var (
	ErrInvalidDimension = errors.New("xbrz: invalid dimension")
	ErrBufferTooSmall   = errors.New("xbrz: buffer too small")
	ErrUnsupportedScale = errors.New("xbrz: unsupported scale")
	ErrInvalidOptions   = errors.New("xbrz: invalid options")
)

// Defaults reproduce the reference output.
const (
	DefaultLuminanceWeight            = 1.0
	DefaultEqualColorTolerance        = 30.0
	DefaultDominantDirectionThreshold = 3.6
	DefaultSteepDirectionThreshold    = 2.2
)

// Options tunes the edge detection. The zero value of any field means
// "use the default".
type Options struct {
	// LuminanceWeight scales the luma difference before squaring.
	LuminanceWeight float64
	// EqualColorTolerance is the distance under which two colors count as
	// equal; the comparison is against its square.
	EqualColorTolerance float64
	// DominantDirectionThreshold is how much stronger one diagonal
	// gradient must be for its corners to be blended as Dominant.
	DominantDirectionThreshold float64
	// SteepDirectionThreshold decides between shallow, steep and diagonal
	// line blends.
	SteepDirectionThreshold float64
	// Metric selects the distance implementation.
	Metric Metric
}

// DefaultOptions returns the reference configuration.
func DefaultOptions() Options {
	return Options{
		LuminanceWeight:            DefaultLuminanceWeight,
		EqualColorTolerance:        DefaultEqualColorTolerance,
		DominantDirectionThreshold: DefaultDominantDirectionThreshold,
		SteepDirectionThreshold:    DefaultSteepDirectionThreshold,
		Metric:                     MetricTable,
	}
}

// withDefaults fills zero fields and rejects negative ones.
func (o Options) withDefaults() (Options, error) {
	d := DefaultOptions()
	fields := []struct {
		name string
		v    *float64
		def  float64
	}{
		{"luminance weight", &o.LuminanceWeight, d.LuminanceWeight},
		{"equal color tolerance", &o.EqualColorTolerance, d.EqualColorTolerance},
		{"dominant direction threshold", &o.DominantDirectionThreshold, d.DominantDirectionThreshold},
		{"steep direction threshold", &o.SteepDirectionThreshold, d.SteepDirectionThreshold},
	}
	for _, f := range fields {
		if *f.v < 0 {
			return o, fmt.Errorf("%w: %s %g is negative", ErrInvalidOptions, f.name, *f.v)
		}
		if *f.v == 0 {
			*f.v = f.def
		}
	}
	if o.Metric != MetricTable && o.Metric != MetricExact {
		return o, fmt.Errorf("%w: metric %d", ErrInvalidOptions, o.Metric)
	}
	return o, nil
}

// Normalized returns o with zero fields replaced by defaults, or an
// ErrInvalidOptions error.
func (o Options) Normalized() (Options, error) {
	return o.withDefaults()
}
