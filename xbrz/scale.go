// Package xbrz enlarges pixel art by an integer factor of 2 to 6 with the
// xBRz edge-aware interpolation.
//
// Images are row-major slices of Pixel (0xAARRGGBB). Scaling is a pure,
// deterministic transform: the only shared state is two read-only lookup
// tables built once per process, so any number of calls may run
// concurrently on independent buffers.
//
// The scan classifies every 2×2 group of source pixels exactly once. The
// result for the group's four corners is relayed to the up to four pixels
// that touch it through one byte per column and one carried byte, which
// is all the memory the scan needs beyond the destination.
package xbrz

import (
	"fmt"
	"math"
)

// Scale enlarges the width×height image in src by n and writes the
// result into dst, which must hold at least width*n × height*n pixels.
func Scale(n int, src, dst []Pixel, width, height int) error {
	return ScaleWithOptions(n, src, dst, width, height, DefaultOptions())
}

// ScaleWithOptions is Scale with tuned edge detection.
func ScaleWithOptions(n int, src, dst []Pixel, width, height int, opts Options) error {
	s, err := prepare(n, src, dst, width, height, opts)
	if err != nil {
		return err
	}
	s.scanRows(src, dst, width, height, 0, height)
	return nil
}

// ScaleImage allocates and returns the scaled image.
func ScaleImage(n int, src []Pixel, width, height int) ([]Pixel, error) {
	if err := checkDims(n, width, height); err != nil {
		return nil, err
	}
	dst := make([]Pixel, width*n*height*n)
	if err := Scale(n, src, dst, width, height); err != nil {
		return nil, err
	}
	return dst, nil
}

// SupportedScale reports whether n is a scale factor this package handles.
func SupportedScale(n int) bool {
	return n >= MinScale && n <= MaxScale
}

func checkDims(n, width, height int) error {
	if !SupportedScale(n) {
		return fmt.Errorf("%w: %d (want %d..%d)", ErrUnsupportedScale, n, MinScale, MaxScale)
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	if width > math.MaxInt32/n || height > math.MaxInt32/n || width*n > math.MaxInt/(height*n) {
		return fmt.Errorf("%w: %dx%d at %dx overflows", ErrInvalidDimension, width, height, n)
	}
	return nil
}

// prepare validates every precondition before anything is written.
func prepare(n int, src, dst []Pixel, width, height int, opts Options) (*scaler, error) {
	if err := checkDims(n, width, height); err != nil {
		return nil, err
	}
	if len(src) < width*height {
		return nil, fmt.Errorf("%w: source holds %d pixels, %dx%d needs %d",
			ErrBufferTooSmall, len(src), width, height, width*height)
	}
	if need := width * n * height * n; len(dst) < need {
		return nil, fmt.Errorf("%w: destination holds %d pixels, %dx needs %d",
			ErrBufferTooSmall, len(dst), n, need)
	}
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return newScaler(n, o), nil
}

// blendRow relays corner classifications between neighboring pixels:
// buf[x] collects the corners of column x that are known before the scan
// reaches it, carry collects those of the pixel below-right.
type blendRow struct {
	buf   []blendInfo
	carry blendInfo
}

// push records the classification of the group whose top-left pixel is
// column x of the current row and returns the completed blend info of
// that pixel. The write order matters: f completes x, j joins the carry
// which then becomes x's entry for the next row, g is written ahead to
// x+1, and k seeds the carry for x+1.
func (r *blendRow) push(x int, res cornerBlend) blendInfo {
	cur := r.buf[x].setBottomR(res.f)

	r.carry = r.carry.setTopR(res.j)
	r.buf[x] = r.carry

	if x+1 < len(r.buf) {
		r.buf[x+1] = r.buf[x+1].setBottomL(res.g)
	}

	r.carry = blendInfo(0).setTopL(res.k)
	return cur
}

// rowOffsets are the clamped starts of source rows y-1 .. y+2.
type rowOffsets struct {
	m1, s0, p1, p2 int
}

func rowsAround(y, width, height int) rowOffsets {
	return rowOffsets{
		m1: width * max(y-1, 0),
		s0: width * y,
		p1: width * min(y+1, height-1),
		p2: width * min(y+2, height-1),
	}
}

func load4x4(src []Pixel, rows rowOffsets, x, width int) kernel4x4 {
	xM1 := max(x-1, 0)
	xP1 := min(x+1, width-1)
	xP2 := min(x+2, width-1)
	return kernel4x4{
		b: src[rows.m1+x], c: src[rows.m1+xP1],
		e: src[rows.s0+xM1], f: src[rows.s0+x], g: src[rows.s0+xP1], h: src[rows.s0+xP2],
		i: src[rows.p1+xM1], j: src[rows.p1+x], k: src[rows.p1+xP1], l: src[rows.p1+xP2],
		n: src[rows.p2+x], o: src[rows.p2+xP1],
	}
}

func load3x3(src []Pixel, rows rowOffsets, x, width int) kernel3x3 {
	xM1 := max(x-1, 0)
	xP1 := min(x+1, width-1)
	return kernel3x3{
		src[rows.m1+xM1], src[rows.m1+x], src[rows.m1+xP1],
		src[rows.s0+xM1], src[rows.s0+x], src[rows.s0+xP1],
		src[rows.p1+xM1], src[rows.p1+x], src[rows.p1+xP1],
	}
}

// scanRows produces the output blocks of source rows [yFirst, yLast).
// When yFirst > 0 the blend row is first primed from row yFirst-1: after
// a full row every buf entry depends only on that row's j and k corners,
// so the result matches a scan started at row 0.
func (s *scaler) scanRows(src, dst []Pixel, width, height, yFirst, yLast int) {
	n := s.n
	pitch := width * n
	row := blendRow{buf: make([]blendInfo, width)}
	out := newOutputMatrix(n, dst, pitch)

	if yFirst > 0 {
		rows := rowsAround(yFirst-1, width, height)
		for x := 0; x < width; x++ {
			ker4 := load4x4(src, rows, x, width)
			row.push(x, s.classify(&ker4))
		}
	}

	for y := yFirst; y < yLast; y++ {
		rows := rowsAround(y, width, height)
		trgi := n * y * pitch
		row.carry = 0

		for x := 0; x < width; x, trgi = x+1, trgi+n {
			ker4 := load4x4(src, rows, x, width)
			blendXy := row.push(x, s.classify(&ker4))

			fillBlock(dst, trgi, pitch, src[rows.s0+x], n)

			if blendXy == 0 {
				continue
			}

			ker3 := load3x3(src, rows, x, width)
			for r := rot0; r < numRotations; r++ {
				s.scalePixel(r, &ker3, blendXy, &out, trgi)
			}
		}
	}
}
