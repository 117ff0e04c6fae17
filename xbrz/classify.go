package xbrz

// kernel4x4 is the neighborhood around the 2×2 group f g / j k:
//
//	-  b  c  -
//	e  f  g  h
//	i  j  k  l
//	-  n  o  -
type kernel4x4 struct {
	b, c       Pixel
	e, f, g, h Pixel
	i, j, k, l Pixel
	n, o       Pixel
}

// cornerBlend is the classification of the four pixels of a 2×2 group.
// Each field names the pixel whose corner toward the group center is
// blended.
type cornerBlend struct {
	f, g, j, k BlendType
}

// classify decides which diagonal of the f g / j k group carries an edge.
func (s *scaler) classify(ker *kernel4x4) cornerBlend {
	var res cornerBlend

	if (ker.f == ker.g && ker.j == ker.k) || (ker.f == ker.j && ker.g == ker.k) {
		return res
	}

	dist := s.m.dist
	jg := dist(ker.i, ker.f) + dist(ker.f, ker.c) + dist(ker.n, ker.k) + dist(ker.k, ker.h) + 4*dist(ker.j, ker.g)
	fk := dist(ker.e, ker.j) + dist(ker.j, ker.o) + dist(ker.b, ker.g) + dist(ker.g, ker.l) + 4*dist(ker.f, ker.k)

	switch {
	case jg < fk:
		t := BlendNormal
		if s.dominant*jg < fk {
			t = BlendDominant
		}
		if ker.f != ker.g && ker.f != ker.j {
			res.f = t
		}
		if ker.k != ker.j && ker.k != ker.g {
			res.k = t
		}
	case fk < jg:
		t := BlendNormal
		if s.dominant*fk < jg {
			t = BlendDominant
		}
		if ker.j != ker.f && ker.j != ker.k {
			res.j = t
		}
		if ker.g != ker.f && ker.g != ker.k {
			res.g = t
		}
	}
	return res
}
