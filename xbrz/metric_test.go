package xbrz

import (
	"math"
	"testing"
)

const (
	black = Pixel(0xff000000)
	white = Pixel(0xffffffff)
	red   = Pixel(0xffff0000)
	green = Pixel(0xff00ff00)
)

func TestDistance_Identical(t *testing.T) {
	for _, p := range []Pixel{0, black, white, red, 0x7f123456} {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%08x, itself) = %v, want 0", uint32(p), d)
		}
		if !Equal(p, p, DefaultEqualColorTolerance) {
			t.Errorf("Equal(%08x, itself) = false", uint32(p))
		}
	}
}

func TestDistance_KnownValues(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Pixel
		want   float64
	}{
		{"black-white", black, white, 255 * 255},
		{"red-green", red, green, 61299},
		{"gray step", 0xff808080, 0xff828282, 9},
		{"alpha only", 0x00123456, 0xff123456, 0},
	}
	for _, tt := range tests {
		if got := Distance(tt.p1, tt.p2); got != tt.want {
			t.Errorf("%s: Distance = %v, want %v", tt.name, got, tt.want)
		}
		if got := Distance(tt.p2, tt.p1); got != tt.want {
			t.Errorf("%s: Distance not symmetric: %v", tt.name, got)
		}
	}
}

func TestEqual_ToleranceBoundary(t *testing.T) {
	base := Pixel(0xff808080)
	// 28² = 784 < 900.
	if !Equal(base, 0xff9c9c9c, DefaultEqualColorTolerance) {
		t.Error("distance 784 should count as equal")
	}
	// 30² = 900 is not strictly below 900.
	if Equal(base, 0xff9e9e9e, DefaultEqualColorTolerance) {
		t.Error("distance 900 should not count as equal")
	}
}

func TestEqual_FalseAtOrAboveThreshold(t *testing.T) {
	var pixels []Pixel
	for v := 0; v < 256; v += 17 {
		pixels = append(pixels, RGBA(uint8(v), uint8(255-v), uint8(v*3), 255))
	}
	for _, p := range pixels {
		for _, q := range pixels {
			if p != q && Distance(p, q) >= 900 && Equal(p, q, DefaultEqualColorTolerance) {
				t.Errorf("Equal(%08x, %08x) with distance %v", uint32(p), uint32(q), Distance(p, q))
			}
		}
	}
}

func TestColorTable_KnownEntries(t *testing.T) {
	InitTable()
	tests := []struct {
		rgb  uint32
		want uint32
	}{
		{0x000000, 0x808000},
		{0xffffff, 0x8080ff},
		{0xff0000, 0xff554c},
	}
	for _, tt := range tests {
		if got := colorTable[tt.rgb]; got != tt.want {
			t.Errorf("table[%06x] = %06x, want %06x", tt.rgb, got, tt.want)
		}
	}
}

func TestInitTable_Idempotent(t *testing.T) {
	InitTable()
	first := &colorTable[0]
	sample := make([]uint32, 0, 4096)
	for i := 0; i < colorTableSize; i += colorTableSize / 4096 {
		sample = append(sample, colorTable[i])
	}

	InitTable()
	if &colorTable[0] != first {
		t.Fatal("second InitTable replaced the table")
	}
	for k, i := 0, 0; i < colorTableSize; k, i = k+1, i+colorTableSize/4096 {
		if colorTable[i] != sample[k] {
			t.Fatalf("entry %06x changed: %06x -> %06x", i, sample[k], colorTable[i])
		}
	}

	fresh := make([]uint32, colorTableSize)
	fillColorTable(fresh)
	for i := range fresh {
		if fresh[i] != colorTable[i] {
			t.Fatalf("rebuild differs at %06x: %06x vs %06x", i, fresh[i], colorTable[i])
		}
	}
}

func TestDistExact(t *testing.T) {
	got := distExact(black, white, 1)
	if math.Abs(got-65025) > 1e-6 {
		t.Errorf("distExact(black, white) = %v, want ~65025", got)
	}
	if got := distExact(0x00808080, 0xff808080, 1); got != 0 {
		t.Errorf("alpha should not count: %v", got)
	}
}

// The table and exact metrics disagree close to the equality threshold.
func TestMetric_TableAndExactDisagreeNearThreshold(t *testing.T) {
	o, err := DefaultOptions().withDefaults()
	if err != nil {
		t.Fatal(err)
	}
	tbl := newMetric(o)
	o.Metric = MetricExact
	exact := newMetric(o)

	p1, p2 := Pixel(0xff404040), Pixel(0xff405f67)
	if d := tbl.dist(p1, p2); d != 866 {
		t.Errorf("table dist = %v, want 866", d)
	}
	if !tbl.eq(p1, p2) {
		t.Error("table metric should treat the pair as equal")
	}
	if exact.eq(p1, p2) {
		t.Errorf("exact metric should not treat the pair as equal (dist %v)", exact.dist(p1, p2))
	}
}

func TestMetric_LuminanceWeight(t *testing.T) {
	o := DefaultOptions()
	o.LuminanceWeight = 2
	m := newMetric(o)
	// Pure gray steps only differ in luma.
	if got := m.dist(0xff808080, 0xff828282); got != 36 {
		t.Errorf("weighted dist = %v, want 36", got)
	}
}

func BenchmarkDistance(b *testing.B) {
	InitTable()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = Distance(Pixel(i), Pixel(i*7919))
	}
}
