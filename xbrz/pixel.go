package xbrz

// Pixel is a packed 32-bit color laid out as 0xAARRGGBB.
type Pixel uint32

// RGBA packs 8-bit channels into a Pixel.
func RGBA(r, g, b, a uint8) Pixel {
	return Pixel(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (p Pixel) A() uint8 { return uint8(p >> 24) }
func (p Pixel) R() uint8 { return uint8(p >> 16) }
func (p Pixel) G() uint8 { return uint8(p >> 8) }
func (p Pixel) B() uint8 { return uint8(p) }

// rgb drops the alpha byte; the color metric never looks at it.
func (p Pixel) rgb() uint32 { return uint32(p) & 0x00ffffff }

// Interpolate mixes p1 and p2 with integer weights q1:q2. Every channel,
// alpha included, is (c1*q1 + c2*q2) / (q1+q2) truncated toward zero.
func Interpolate(p1, p2 Pixel, q1, q2 int) Pixel {
	w1, w2 := uint32(q1), uint32(q2)
	total := w1 + w2
	channel := func(shift uint) uint32 {
		c1 := uint32(p1>>shift) & 0xff
		c2 := uint32(p2>>shift) & 0xff
		return ((c1*w1 + c2*w2) / total) & 0xff
	}
	return Pixel(channel(24)<<24 | channel(16)<<16 | channel(8)<<8 | channel(0))
}

// alphaBlend moves dst[idx] toward col by n/m.
func alphaBlend(dst []Pixel, idx int, col Pixel, n, m int) {
	dst[idx] = Interpolate(col, dst[idx], n, m-n)
}

// fillBlock paints a size×size square starting at dst[i] with col.
func fillBlock(dst []Pixel, i, pitch int, col Pixel, size int) {
	for y := 0; y < size; y++ {
		row := dst[i : i+size]
		for x := range row {
			row[x] = col
		}
		i += pitch
	}
}
