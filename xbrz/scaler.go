package xbrz

// kernel3x3 is the neighborhood of the pixel being scaled, row-major:
//
//	a b c
//	d e f
//	g h i
type kernel3x3 [9]Pixel

// kernelRotation[r][k] is the index in the unrotated kernel that position
// k reads when the kernel is turned by r.
var kernelRotation = [numRotations][9]int{
	{0, 1, 2, 3, 4, 5, 6, 7, 8},
	{6, 3, 0, 7, 4, 1, 8, 5, 2},
	{8, 7, 6, 5, 4, 3, 2, 1, 0},
	{2, 5, 8, 1, 4, 7, 0, 3, 6},
}

// scaler carries everything one scaling call needs. It is built once per
// call, so the scale factor is resolved to a rules table up front and the
// pixel loop never switches on it.
type scaler struct {
	n        int
	m        metric
	dominant float64
	steep    float64
	rules    *scaleRules
}

func newScaler(n int, o Options) *scaler {
	return &scaler{
		n:        n,
		m:        newMetric(o),
		dominant: o.DominantDirectionThreshold,
		steep:    o.SteepDirectionThreshold,
		rules:    rulesByScale[n-MinScale],
	}
}

// scalePixel blends the bottom-right corner of the kernel seen through
// rotation r into the output block at base.
func (s *scaler) scalePixel(r rotation, ker *kernel3x3, blend blendInfo, out *outputMatrix, base int) {
	blend = blend.rotate(r)
	if blend.bottomR() == BlendNone {
		return
	}

	p := &kernelRotation[r]
	b, c := ker[p[1]], ker[p[2]]
	d, e, f := ker[p[3]], ker[p[4]], ker[p[5]]
	g, h, i := ker[p[6]], ker[p[7]], ker[p[8]]

	m := &s.m

	var doLineBlend bool
	switch {
	case blend.bottomR() >= BlendDominant:
		doLineBlend = true
	case blend.topR() != BlendNone && !m.eq(e, g):
		// g's corner is blended too; blending this one as a line would
		// leave a spike at e.
		doLineBlend = false
	case blend.bottomL() != BlendNone && !m.eq(e, c):
		doLineBlend = false
	case m.eq(g, h) && m.eq(h, i) && m.eq(i, f) && m.eq(f, c) && !m.eq(e, i):
		// e is an isolated notch in an otherwise uniform L.
		doLineBlend = false
	default:
		doLineBlend = true
	}

	px := h
	if m.dist(e, f) <= m.dist(e, h) {
		px = f
	}

	out.move(r, base)

	if !doLineBlend {
		out.apply(s.rules.corner, px)
		return
	}

	fg := m.dist(f, g)
	hc := m.dist(h, c)

	shallow := s.steep*fg <= hc && e != g && d != g
	steep := s.steep*hc <= fg && e != c && b != c

	switch {
	case shallow && steep:
		out.apply(s.rules.steepAndShallow, px)
	case shallow:
		out.apply(s.rules.shallow, px)
	case steep:
		out.apply(s.rules.steep, px)
	default:
		out.apply(s.rules.diagonal, px)
	}
}
