package xbrz

// Metric selects how color distance is computed.
type Metric int

const (
	// MetricTable converts through the precomputed lookup table. This is
	// the production metric.
	MetricTable Metric = iota
	// MetricExact converts with BT.709 coefficients in float64 on every
	// call. It can disagree with MetricTable for pixels close to a
	// threshold, which changes individual blend decisions.
	MetricExact
)

func (m Metric) String() string {
	switch m {
	case MetricTable:
		return "table"
	case MetricExact:
		return "exact"
	default:
		return "unknown"
	}
}

// metric is the distance/equality pair used by one scaling call.
type metric struct {
	lut        []uint32
	exact      bool
	lumaWeight float64
	eqThres    float64 // tolerance squared
}

func newMetric(o Options) metric {
	m := metric{
		exact:      o.Metric == MetricExact,
		lumaWeight: o.LuminanceWeight,
		eqThres:    o.EqualColorTolerance * o.EqualColorTolerance,
	}
	if !m.exact {
		m.lut = table()
	}
	return m
}

// dist is the squared YCbCr distance between two pixels, zero only for
// bit-identical input.
func (m *metric) dist(p1, p2 Pixel) float64 {
	if p1 == p2 {
		return 0
	}
	if m.exact {
		return distExact(p1, p2, m.lumaWeight)
	}
	c1 := m.lut[p1.rgb()]
	c2 := m.lut[p2.rgb()]

	y := int(c1&0xff) - int(c2&0xff)
	u := int(c1>>8&0xff) - int(c2>>8&0xff)
	v := int(c1>>16&0xff) - int(c2>>16&0xff)

	if m.lumaWeight == 1 {
		return float64(y*y + u*u + v*v)
	}
	ly := m.lumaWeight * float64(y)
	return ly*ly + float64(u*u+v*v)
}

func (m *metric) eq(p1, p2 Pixel) bool {
	return p1 == p2 || m.dist(p1, p2) < m.eqThres
}

func distExact(p1, p2 Pixel, lumaWeight float64) float64 {
	rDiff := float64(int(p1.R()) - int(p2.R()))
	gDiff := float64(int(p1.G()) - int(p2.G()))
	bDiff := float64(int(p1.B()) - int(p2.B()))

	const (
		kB     = 0.0722
		kR     = 0.2126
		kG     = 1 - kB - kR
		scaleB = 0.5 / (1 - kB)
		scaleR = 0.5 / (1 - kR)
	)

	y := kR*rDiff + kG*gDiff + kB*bDiff
	cB := scaleB * (bDiff - y)
	cR := scaleR * (rDiff - y)
	ly := lumaWeight * y
	return ly*ly + cB*cB + cR*cR
}

// Distance returns the perceptual distance between two pixels under the
// default table metric: 0 for identical pixels, otherwise the squared
// Euclidean distance of their (Y, Cb, Cr) triples. Alpha is ignored.
func Distance(p1, p2 Pixel) float64 {
	m := metric{lut: table(), lumaWeight: 1}
	return m.dist(p1, p2)
}

// Equal reports whether two pixels are identical or closer than
// tolerance, i.e. Distance(p1, p2) < tolerance².
func Equal(p1, p2 Pixel, tolerance float64) bool {
	return p1 == p2 || Distance(p1, p2) < tolerance*tolerance
}
