package xbrz

import "testing"

func TestBlendInfo_FieldsIndependent(t *testing.T) {
	for _, bt := range []BlendType{BlendNone, BlendNormal, BlendDominant} {
		b := blendInfo(0).setTopL(bt)
		if b.topL() != bt || b.topR() != BlendNone || b.bottomR() != BlendNone || b.bottomL() != BlendNone {
			t.Errorf("setTopL(%v) leaked: %08b", bt, b)
		}
		b = blendInfo(0).setTopR(bt)
		if b.topR() != bt || b.topL() != BlendNone || b.bottomR() != BlendNone || b.bottomL() != BlendNone {
			t.Errorf("setTopR(%v) leaked: %08b", bt, b)
		}
		b = blendInfo(0).setBottomR(bt)
		if b.bottomR() != bt || b.topL() != BlendNone || b.topR() != BlendNone || b.bottomL() != BlendNone {
			t.Errorf("setBottomR(%v) leaked: %08b", bt, b)
		}
		b = blendInfo(0).setBottomL(bt)
		if b.bottomL() != bt || b.topL() != BlendNone || b.topR() != BlendNone || b.bottomR() != BlendNone {
			t.Errorf("setBottomL(%v) leaked: %08b", bt, b)
		}
	}

	b := blendInfo(0).setTopL(BlendNormal).setTopR(BlendDominant).setBottomR(BlendNormal).setBottomL(BlendDominant)
	if b.topL() != BlendNormal || b.topR() != BlendDominant || b.bottomR() != BlendNormal || b.bottomL() != BlendDominant {
		t.Errorf("combined fields wrong: %08b", b)
	}
}

func TestBlendInfo_RotateMovesCornersClockwise(t *testing.T) {
	b := blendInfo(0).setTopL(BlendDominant)
	if got := b.rotate(rot0).topL(); got != BlendDominant {
		t.Errorf("rot0: topL = %v", got)
	}
	if got := b.rotate(rot90).topR(); got != BlendDominant {
		t.Errorf("rot90: topR = %v", got)
	}
	if got := b.rotate(rot180).bottomR(); got != BlendDominant {
		t.Errorf("rot180: bottomR = %v", got)
	}
	if got := b.rotate(rot270).bottomL(); got != BlendDominant {
		t.Errorf("rot270: bottomL = %v", got)
	}
}

func TestBlendInfo_RotateComposes(t *testing.T) {
	for v := 0; v < 256; v++ {
		b := blendInfo(v)
		for r1 := rot0; r1 < numRotations; r1++ {
			for r2 := rot0; r2 < numRotations; r2++ {
				got := b.rotate(r1).rotate(r2)
				want := b.rotate((r1 + r2) % numRotations)
				if got != want {
					t.Fatalf("%08b: rotate(%d).rotate(%d) = %08b, want %08b", v, r1, r2, got, want)
				}
			}
		}
	}
}

func TestBlendRow_RelayOrder(t *testing.T) {
	row := blendRow{buf: make([]blendInfo, 3)}

	// Column 0 of row y: the group to its lower right blends all corners.
	cur := row.push(0, cornerBlend{f: BlendNormal, g: BlendDominant, j: BlendNormal, k: BlendDominant})
	if cur.bottomR() != BlendNormal || cur.topL() != BlendNone {
		t.Errorf("pixel (0,y) = %08b, want only bottomR normal", cur)
	}
	if row.buf[1].bottomL() != BlendDominant {
		t.Errorf("g was not written ahead to column 1: %08b", row.buf[1])
	}
	if row.buf[0].topR() != BlendNormal {
		t.Errorf("j was not stored for (0,y+1): %08b", row.buf[0])
	}

	// Column 1 picks up g from the left and leaves k for (1,y+1).
	cur = row.push(1, cornerBlend{})
	if cur.bottomL() != BlendDominant || cur.bottomR() != BlendNone {
		t.Errorf("pixel (1,y) = %08b, want only bottomL dominant", cur)
	}
	if row.buf[1].topL() != BlendDominant || row.buf[1].bottomL() != BlendNone {
		t.Errorf("(1,y+1) should see k as topL only: %08b", row.buf[1])
	}

	// The last column never writes past the end.
	row.push(2, cornerBlend{g: BlendNormal})
}
