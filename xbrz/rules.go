package xbrz

// blendOp moves sub-cell (i, j) of the bottom-right-oriented block toward
// the blend color by num/den. num == den copies the color outright.
type blendOp struct {
	i, j     int
	num, den int
}

type blendPattern []blendOp

// scaleRules are the five blend patterns of one scale factor, all written
// for the bottom-right corner of the block.
type scaleRules struct {
	shallow         blendPattern
	steep           blendPattern
	steepAndShallow blendPattern
	diagonal        blendPattern
	corner          blendPattern
}

func set(i, j int) blendOp          { return blendOp{i, j, 1, 1} }
func mix(i, j, num, den int) blendOp { return blendOp{i, j, num, den} }

// transpose mirrors a pattern across the main diagonal. A steep line is
// a shallow line with rows and columns swapped.
func transpose(p blendPattern) blendPattern {
	out := make(blendPattern, len(p))
	for k, op := range p {
		out[k] = blendOp{op.j, op.i, op.num, op.den}
	}
	return out
}

func newRules(shallow, both, diagonal, corner blendPattern) *scaleRules {
	return &scaleRules{
		shallow:         shallow,
		steep:           transpose(shallow),
		steepAndShallow: both,
		diagonal:        diagonal,
		corner:          corner,
	}
}

// rulesByScale is indexed by scale-MinScale. Corner weights approximate
// the area a quarter circle leaves uncovered (1 - π/4 at 2x).
var rulesByScale = [MaxScale - MinScale + 1]*scaleRules{
	// 2x
	newRules(
		blendPattern{mix(1, 0, 1, 4), mix(1, 1, 3, 4)},
		blendPattern{mix(1, 0, 1, 4), mix(0, 1, 1, 4), mix(1, 1, 5, 6)},
		blendPattern{mix(1, 1, 1, 2)},
		blendPattern{mix(1, 1, 21, 100)},
	),
	// 3x
	newRules(
		blendPattern{mix(2, 0, 1, 4), mix(1, 2, 1, 4), mix(2, 1, 3, 4), set(2, 2)},
		blendPattern{mix(2, 0, 1, 4), mix(0, 2, 1, 4), mix(2, 1, 3, 4), mix(1, 2, 3, 4), set(2, 2)},
		blendPattern{mix(1, 2, 1, 8), mix(2, 1, 1, 8), mix(2, 2, 7, 8)},
		blendPattern{mix(2, 2, 45, 100)},
	),
	// 4x
	newRules(
		blendPattern{
			mix(3, 0, 1, 4), mix(2, 2, 1, 4), mix(3, 1, 3, 4), mix(2, 3, 3, 4),
			set(3, 2), set(3, 3),
		},
		blendPattern{
			mix(3, 1, 3, 4), mix(1, 3, 3, 4), mix(3, 0, 1, 4), mix(0, 3, 1, 4),
			mix(2, 2, 1, 3), set(3, 3), set(3, 2), set(2, 3),
		},
		blendPattern{mix(3, 2, 1, 2), mix(2, 3, 1, 2), set(3, 3)},
		blendPattern{mix(3, 3, 68, 100), mix(3, 2, 9, 100), mix(2, 3, 9, 100)},
	),
	// 5x
	newRules(
		blendPattern{
			mix(4, 0, 1, 4), mix(3, 2, 1, 4), mix(2, 4, 1, 4), mix(4, 1, 3, 4), mix(3, 3, 3, 4),
			set(4, 2), set(4, 3), set(4, 4), set(3, 4),
		},
		blendPattern{
			mix(0, 4, 1, 4), mix(2, 3, 1, 4), mix(1, 4, 3, 4),
			mix(4, 0, 1, 4), mix(3, 2, 1, 4), mix(4, 1, 3, 4),
			set(2, 4), set(3, 4), set(4, 2), set(4, 3), set(4, 4),
			mix(3, 3, 2, 3),
		},
		blendPattern{
			mix(4, 2, 1, 8), mix(3, 3, 1, 8), mix(2, 4, 1, 8),
			mix(4, 3, 7, 8), mix(3, 4, 7, 8), set(4, 4),
		},
		blendPattern{mix(4, 4, 86, 100), mix(4, 3, 23, 100), mix(3, 4, 23, 100)},
	),
	// 6x
	newRules(
		blendPattern{
			mix(5, 0, 1, 4), mix(4, 2, 1, 4), mix(3, 4, 1, 4),
			mix(5, 1, 3, 4), mix(4, 3, 3, 4), mix(3, 5, 3, 4),
			set(5, 2), set(5, 3), set(5, 4), set(5, 5), set(4, 4), set(4, 5),
		},
		blendPattern{
			mix(0, 5, 1, 4), mix(2, 4, 1, 4), mix(1, 5, 3, 4), mix(3, 4, 3, 4),
			mix(5, 0, 1, 4), mix(4, 2, 1, 4), mix(5, 1, 3, 4), mix(4, 3, 3, 4),
			set(2, 5), set(3, 5), set(4, 5), set(5, 5),
			set(4, 4), set(5, 4), set(5, 2), set(5, 3),
		},
		blendPattern{
			mix(5, 3, 1, 2), mix(4, 4, 1, 2), mix(3, 5, 1, 2),
			set(4, 5), set(5, 5), set(5, 4),
		},
		blendPattern{
			mix(5, 5, 97, 100), mix(4, 5, 42, 100), mix(5, 4, 42, 100),
			mix(5, 3, 6, 100), mix(3, 5, 6, 100),
		},
	),
}

// apply runs a pattern against the block the matrix currently points at.
func (o *outputMatrix) apply(p blendPattern, col Pixel) {
	for _, op := range p {
		idx := o.ref(op.i, op.j)
		if op.num == op.den {
			o.dst[idx] = col
			continue
		}
		alphaBlend(o.dst, idx, col, op.num, op.den)
	}
}
