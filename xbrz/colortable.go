package xbrz

import (
	"sync"
	"time"
)

// colorTableSize covers every 24-bit RGB value.
const colorTableSize = 1 << 24

// Each entry packs luma in bits 0-7, blue chroma in 8-15 and red chroma in
// 16-23, chroma offset by 128.
var (
	colorTable     []uint32
	colorTableOnce sync.Once
)

// InitTable builds the process-wide RGB → YCbCr lookup table used by the
// default metric. Only the first call does any work; later calls return
// immediately and leave the table untouched. Scaling calls InitTable on
// its own, so calling it up front only moves the one-time cost (64 MiB,
// tens of milliseconds) to a predictable point.
func InitTable() {
	colorTableOnce.Do(func() {
		start := time.Now()
		t := make([]uint32, colorTableSize)
		fillColorTable(t)
		colorTable = t
		Logger().Debug("xbrz: color table built",
			"entries", len(t),
			"elapsed", time.Since(start).Round(time.Millisecond))
	})
}

// table returns the initialized lookup table.
func table() []uint32 {
	InitTable()
	return colorTable
}

// fillColorTable writes the fixed BT.601-style conversion into t.
// Luma truncates to a byte; chroma truncates toward zero before the +128
// offset. The explicit float64 conversions pin rounding after every
// product so no platform fuses the multiply-adds.
func fillColorTable(t []uint32) {
	for i := range t {
		r := float64((i >> 16) & 0xff)
		g := float64((i >> 8) & 0xff)
		b := float64(i & 0xff)

		y := float64(.299*r) + float64(.587*g) + float64(.114*b)
		cb := float64(-.169*r) - float64(.331*g) + float64(.5*b)
		cr := float64(.5*r) - float64(.419*g) - float64(.081*b)

		t[i] = uint32(uint8(int(y))) |
			uint32(uint8(int(cb)+128))<<8 |
			uint32(uint8(int(cr)+128))<<16
	}
}
