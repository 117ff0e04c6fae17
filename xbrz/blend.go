package xbrz

// BlendType grades how strongly a corner should be blended. Values fit in
// two bits.
type BlendType uint8

const (
	BlendNone BlendType = iota
	BlendNormal
	BlendDominant
)

func (b BlendType) String() string {
	switch b {
	case BlendNone:
		return "none"
	case BlendNormal:
		return "normal"
	case BlendDominant:
		return "dominant"
	default:
		return "invalid"
	}
}

// blendInfo packs the four corners of one pixel, two bits each:
// top-left 0-1, top-right 2-3, bottom-right 4-5, bottom-left 6-7.
// Fields are OR-merged and never derived from one another.
type blendInfo uint8

func (b blendInfo) topL() BlendType    { return BlendType(b & 0x3) }
func (b blendInfo) topR() BlendType    { return BlendType(b >> 2 & 0x3) }
func (b blendInfo) bottomR() BlendType { return BlendType(b >> 4 & 0x3) }
func (b blendInfo) bottomL() BlendType { return BlendType(b >> 6 & 0x3) }

func (b blendInfo) setTopL(t BlendType) blendInfo    { return b | blendInfo(t) }
func (b blendInfo) setTopR(t BlendType) blendInfo    { return b | blendInfo(t)<<2 }
func (b blendInfo) setBottomR(t BlendType) blendInfo { return b | blendInfo(t)<<4 }
func (b blendInfo) setBottomL(t BlendType) blendInfo { return b | blendInfo(t)<<6 }

// rotate turns the corners clockwise by r quarter turns, so that after
// rotating by r the bottom-right field holds the corner the r-rotated
// kernel sees at its bottom right.
func (b blendInfo) rotate(r rotation) blendInfo {
	l := uint(r) << 1
	return b<<l | b>>(8-l)
}
