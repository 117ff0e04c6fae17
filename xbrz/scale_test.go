package xbrz

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
)

// replicate is nearest-neighbor upscaling, the output xBRz starts from.
func replicate(n int, src []Pixel, w, h int) []Pixel {
	dst := make([]Pixel, w*n*h*n)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fillBlock(dst, n*y*w*n+n*x, w*n, src[y*w+x], n)
		}
	}
	return dst
}

func checksum(px []Pixel) uint64 {
	var s uint64
	for i, p := range px {
		s += uint64(p) * uint64(i+1)
	}
	return s
}

// testSprite draws a 12×13 sprite with a disc, two diagonals, a stepped
// line, a triangle, a notched corner and one transparent pixel.
func testSprite() ([]Pixel, int, int) {
	const w, h = 12, 13
	notch := [3]string{"#.##", ".###", "####"}
	px := make([]Pixel, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := Pixel(0xff203040)
			if (x-5)*(x-5)+(y-4)*(y-4) <= 9 {
				c = 0xffe0c020
			}
			if x == y+2 || x == y+3 {
				c = 0xff10a0f0
			}
			if y == 7-x/3 {
				c = 0xff60ff60
			}
			if x >= 9 && y >= 7 && x+y >= 18 {
				c = white
			}
			if y >= 10 && x < 4 && notch[y-10][x] == '.' {
				c = white
			}
			if x == 11 && y == 0 {
				c = 0
			}
			px = append(px, c)
		}
	}
	return px, w, h
}

// notchImage exercises every blend pattern at least once.
func notchImage() ([]Pixel, int, int) {
	rows := [3]string{"#.##", ".###", "####"}
	var px []Pixel
	for _, r := range rows {
		for _, c := range r {
			if c == '#' {
				px = append(px, black)
			} else {
				px = append(px, white)
			}
		}
	}
	return px, 4, 3
}

func TestScale_OutputDimensions(t *testing.T) {
	src := []Pixel{black, white, red, green, black, white}
	for n := MinScale; n <= MaxScale; n++ {
		dst, err := ScaleImage(n, src, 3, 2)
		if err != nil {
			t.Fatalf("%dx: %v", n, err)
		}
		if len(dst) != 3*n*2*n {
			t.Errorf("%dx: len = %d, want %d", n, len(dst), 3*n*2*n)
		}
	}
}

func TestScale_UniformImageStaysUniform(t *testing.T) {
	c := Pixel(0x80c0ffee)
	src := make([]Pixel, 5*4)
	for i := range src {
		src[i] = c
	}
	for n := MinScale; n <= MaxScale; n++ {
		dst, err := ScaleImage(n, src, 5, 4)
		if err != nil {
			t.Fatal(err)
		}
		for i, p := range dst {
			if p != c {
				t.Fatalf("%dx: pixel %d = %08x", n, i, uint32(p))
			}
		}
	}
}

func TestScale_SinglePixel(t *testing.T) {
	for n := MinScale; n <= MaxScale; n++ {
		dst, err := ScaleImage(n, []Pixel{red}, 1, 1)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range dst {
			if p != red {
				t.Fatalf("%dx: got %08x", n, uint32(p))
			}
		}
	}
}

func TestScale_DiagonalCorner(t *testing.T) {
	src := []Pixel{black, white, white, white}
	want := map[int]map[cell]Pixel{
		2: {{1, 1}: gray(0x35)},
		3: {{2, 2}: gray(0x72)},
		4: {{2, 3}: gray(0x16), {3, 2}: gray(0x16), {3, 3}: gray(0xad)},
		5: {{3, 4}: gray(0x3a), {4, 3}: gray(0x3a), {4, 4}: gray(0xdb)},
		6: {
			{3, 5}: gray(0x0f), {5, 3}: gray(0x0f),
			{4, 5}: gray(0x6b), {5, 4}: gray(0x6b), {5, 5}: gray(0xf7),
		},
	}
	for n := MinScale; n <= MaxScale; n++ {
		dst, err := ScaleImage(n, src, 2, 2)
		if err != nil {
			t.Fatal(err)
		}
		base := replicate(n, src, 2, 2)
		for c, p := range want[n] {
			base[c.row*2*n+c.col] = p
		}
		for i := range dst {
			if dst[i] != base[i] {
				t.Errorf("%dx: (%d,%d) = %08x, want %08x", n, i/(2*n), i%(2*n), uint32(dst[i]), uint32(base[i]))
			}
		}
	}
}

// The blended cell follows the odd pixel around the 2×2 image.
func TestScale_DiagonalCornerAllOrientations(t *testing.T) {
	tests := []struct {
		src  []Pixel
		at2x cell
		at3x cell
	}{
		{[]Pixel{black, white, white, white}, cell{1, 1}, cell{2, 2}},
		{[]Pixel{white, black, white, white}, cell{1, 2}, cell{2, 3}},
		{[]Pixel{white, white, black, white}, cell{2, 1}, cell{3, 2}},
		{[]Pixel{white, white, white, black}, cell{2, 2}, cell{3, 3}},
	}
	for k, tt := range tests {
		for n, want := range map[int]struct {
			at  cell
			col Pixel
		}{2: {tt.at2x, gray(0x35)}, 3: {tt.at3x, gray(0x72)}} {
			dst, err := ScaleImage(n, tt.src, 2, 2)
			if err != nil {
				t.Fatal(err)
			}
			base := replicate(n, tt.src, 2, 2)
			base[want.at.row*2*n+want.at.col] = want.col
			for i := range dst {
				if dst[i] != base[i] {
					t.Errorf("case %d %dx: (%d,%d) = %08x, want %08x",
						k, n, i/(2*n), i%(2*n), uint32(dst[i]), uint32(base[i]))
				}
			}
		}
	}
}

// A lone vertical edge and a checkerboard have no dominant diagonal, so
// the output is plain replication.
func TestScale_NoDiagonalMeansReplication(t *testing.T) {
	checker := make([]Pixel, 9)
	for i := range checker {
		checker[i] = white
		if i%2 == 0 {
			checker[i] = black
		}
	}
	tests := []struct {
		name string
		src  []Pixel
		w, h int
	}{
		{"edge", []Pixel{black, white}, 2, 1},
		{"checkerboard", checker, 3, 3},
	}
	for _, tt := range tests {
		for n := MinScale; n <= 3; n++ {
			dst, err := ScaleImage(n, tt.src, tt.w, tt.h)
			if err != nil {
				t.Fatal(err)
			}
			want := replicate(n, tt.src, tt.w, tt.h)
			for i := range dst {
				if dst[i] != want[i] {
					t.Fatalf("%s %dx: pixel %d = %08x, want %08x", tt.name, n, i, uint32(dst[i]), uint32(want[i]))
				}
			}
		}
	}
}

func TestScale_Golden(t *testing.T) {
	sprite, sw, sh := testSprite()
	notch, nw, nh := notchImage()
	tests := []struct {
		name string
		src  []Pixel
		w, h int
		want [MaxScale - MinScale + 1]uint64
	}{
		{"sprite", sprite, sw, sh, [...]uint64{
			834827290728639, 4222878936390349, 13342767132072449,
			32571131094176375, 67535249209059902,
		}},
		{"notch", notch, nw, nh, [...]uint64{
			5032839387702, 25190214452925, 79294588370736,
			193229956043691, 400276662790728,
		}},
	}
	for _, tt := range tests {
		for n := MinScale; n <= MaxScale; n++ {
			dst, err := ScaleImage(n, tt.src, tt.w, tt.h)
			if err != nil {
				t.Fatal(err)
			}
			if got := checksum(dst); got != tt.want[n-MinScale] {
				t.Errorf("%s %dx: checksum %d, want %d", tt.name, n, got, tt.want[n-MinScale])
			}
		}
	}
}

func TestScale_Deterministic(t *testing.T) {
	src, w, h := testSprite()
	first, err := ScaleImage(4, src, w, h)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k < 3; k++ {
		again, _ := ScaleImage(4, src, w, h)
		if checksum(again) != checksum(first) {
			t.Fatalf("run %d differs", k)
		}
	}
}

func TestScale_ConcurrentCalls(t *testing.T) {
	src, w, h := testSprite()
	want, err := ScaleImage(3, src, w, h)
	if err != nil {
		t.Fatal(err)
	}
	sum := checksum(want)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dst, err := ScaleImage(3, src, w, h)
			if err != nil {
				errs <- err
				return
			}
			if checksum(dst) != sum {
				errs <- errors.New("concurrent result differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestScale_LargerDestinationIsFine(t *testing.T) {
	src := []Pixel{black, white, white, white}
	dst := make([]Pixel, 2*2*2*2+5)
	dst[len(dst)-1] = red
	if err := Scale(2, src, dst, 2, 2); err != nil {
		t.Fatal(err)
	}
	if dst[len(dst)-1] != red {
		t.Error("scale wrote past the image")
	}
}

func TestScale_Errors(t *testing.T) {
	src := []Pixel{black, white, white, white}
	tests := []struct {
		name    string
		n, w, h int
		src     []Pixel
		dstLen  int
		opts    Options
		wantErr error
	}{
		{"scale too small", 1, 2, 2, src, 16, DefaultOptions(), ErrUnsupportedScale},
		{"scale too large", 7, 2, 2, src, 1000, DefaultOptions(), ErrUnsupportedScale},
		{"zero width", 2, 0, 2, src, 16, DefaultOptions(), ErrInvalidDimension},
		{"negative height", 2, 2, -1, src, 16, DefaultOptions(), ErrInvalidDimension},
		{"overflow", 6, math.MaxInt32, 2, src, 16, DefaultOptions(), ErrInvalidDimension},
		{"short source", 2, 2, 2, src[:3], 16, DefaultOptions(), ErrBufferTooSmall},
		{"short destination", 2, 2, 2, src, 15, DefaultOptions(), ErrBufferTooSmall},
		{"negative tolerance", 2, 2, 2, src, 16, Options{EqualColorTolerance: -1}, ErrInvalidOptions},
		{"unknown metric", 2, 2, 2, src, 16, Options{Metric: Metric(9)}, ErrInvalidOptions},
	}
	for _, tt := range tests {
		dst := make([]Pixel, tt.dstLen)
		for i := range dst {
			dst[i] = red
		}
		err := ScaleWithOptions(tt.n, tt.src, dst, tt.w, tt.h, tt.opts)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
		for i, p := range dst {
			if p != red {
				t.Errorf("%s: dst[%d] touched after error", tt.name, i)
				break
			}
		}
	}
}

func TestScale_ZeroOptionsMatchDefaults(t *testing.T) {
	src, w, h := testSprite()
	a := make([]Pixel, w*2*h*2)
	b := make([]Pixel, w*2*h*2)
	if err := ScaleWithOptions(2, src, a, w, h, Options{}); err != nil {
		t.Fatal(err)
	}
	if err := Scale(2, src, b, w, h); err != nil {
		t.Fatal(err)
	}
	if checksum(a) != checksum(b) {
		t.Error("zero Options should behave like DefaultOptions")
	}
}

func TestScale_ExactMetric(t *testing.T) {
	src := []Pixel{black, white, white, white}
	o := DefaultOptions()
	o.Metric = MetricExact
	dst := make([]Pixel, 16)
	if err := ScaleWithOptions(2, src, dst, 2, 2, o); err != nil {
		t.Fatal(err)
	}
	// Black and white are far apart under either metric.
	if got := dst[1*4+1]; got != gray(0x35) {
		t.Errorf("(1,1) = %08x, want %08x", uint32(got), uint32(gray(0x35)))
	}
}

func TestScaleParallel_MatchesSequential(t *testing.T) {
	src, w, h := testSprite()
	for n := MinScale; n <= MaxScale; n++ {
		want, err := ScaleImage(n, src, w, h)
		if err != nil {
			t.Fatal(err)
		}
		for _, workers := range []int{0, 1, 2, 3, 5, 13, 64} {
			dst := make([]Pixel, len(want))
			if err := ScaleParallel(n, src, dst, w, h, workers); err != nil {
				t.Fatal(err)
			}
			for i := range dst {
				if dst[i] != want[i] {
					t.Fatalf("%dx workers=%d: pixel %d = %08x, want %08x",
						n, workers, i, uint32(dst[i]), uint32(want[i]))
				}
			}
		}
	}
}

func TestScaleParallel_Errors(t *testing.T) {
	dst := make([]Pixel, 4)
	if err := ScaleParallel(2, []Pixel{black}, dst, 1, 1, 4); err != nil {
		t.Fatal(err)
	}
	err := ScaleParallel(2, []Pixel{black}, dst[:3], 1, 1, 4)
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("err = %v, want ErrBufferTooSmall", err)
	}
}

func BenchmarkScale(b *testing.B) {
	tile, w, h := testSprite()
	// 16×16 tiles of the sprite.
	const reps = 16
	bw, bh := w*reps, h*reps
	src := make([]Pixel, bw*bh)
	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			src[y*bw+x] = tile[(y%h)*w+x%w]
		}
	}
	InitTable()
	for _, n := range []int{2, 4, 6} {
		dst := make([]Pixel, bw*n*bh*n)
		b.Run(fmt.Sprintf("%dx", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Scale(n, src, dst, bw, bh)
			}
		})
		b.Run(fmt.Sprintf("%dx-parallel", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = ScaleParallel(n, src, dst, bw, bh, 0)
			}
		})
	}
}
