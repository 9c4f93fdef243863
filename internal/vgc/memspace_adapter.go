package vgc

import "novavm/internal/memspace"

// These four adapters let the DMA and blitter engines address VGC's
// character, color, bitmap, and sprite-shape planes through the shared
// memspace.Space contract.

type charSpace struct{ v *VGC }
type colorSpace struct{ v *VGC }
type gfxSpace struct{ v *VGC }
type spriteSpace struct{ v *VGC }

// CharSpaceOf, ColorSpaceOf, GfxSpaceOf, and SpriteSpaceOf are handed to
// the machine package's memspace.Registry at construction time.
func CharSpaceOf(v *VGC) memspace.Space   { return charSpace{v} }
func ColorSpaceOf(v *VGC) memspace.Space  { return colorSpace{v} }
func GfxSpaceOf(v *VGC) memspace.Space    { return gfxSpace{v} }
func SpriteSpaceOf(v *VGC) memspace.Space { return spriteSpace{v} }

func (s charSpace) Length() int { return charSize }
func (s charSpace) TryRead(off int) (uint8, bool) {
	if off < 0 || off >= charSize {
		return 0, false
	}
	return s.v.charRAM[off], true
}
func (s charSpace) TryWrite(off int, val uint8) bool {
	if off < 0 || off >= charSize {
		return false
	}
	s.v.charRAM[off] = val
	return true
}
func (s charSpace) CanWriteRange(off, length int) bool {
	return off >= 0 && off+length <= charSize
}

func (s colorSpace) Length() int { return colorSize }
func (s colorSpace) TryRead(off int) (uint8, bool) {
	if off < 0 || off >= colorSize {
		return 0, false
	}
	return s.v.colorRAM[off], true
}
func (s colorSpace) TryWrite(off int, val uint8) bool {
	if off < 0 || off >= colorSize {
		return false
	}
	s.v.colorRAM[off] = val
	return true
}
func (s colorSpace) CanWriteRange(off, length int) bool {
	return off >= 0 && off+length <= colorSize
}

func (s gfxSpace) Length() int { return gfxWidth * gfxHeight }
func (s gfxSpace) TryRead(off int) (uint8, bool) {
	if off < 0 || off >= len(s.v.gfxRAM) {
		return 0, false
	}
	return s.v.gfxRAM[off], true
}
func (s gfxSpace) TryWrite(off int, val uint8) bool {
	if off < 0 || off >= len(s.v.gfxRAM) {
		return false
	}
	s.v.gfxRAM[off] = val
	return true
}
func (s gfxSpace) CanWriteRange(off, length int) bool {
	return off >= 0 && off+length <= len(s.v.gfxRAM)
}

func (s spriteSpace) Length() int { return numSprites * shapeBytes }
func (s spriteSpace) TryRead(off int) (uint8, bool) {
	if off < 0 || off >= numSprites*shapeBytes {
		return 0, false
	}
	s.v.shapeMu.Lock()
	defer s.v.shapeMu.Unlock()
	return s.v.shapes[off/shapeBytes][off%shapeBytes], true
}
func (s spriteSpace) TryWrite(off int, val uint8) bool {
	if off < 0 || off >= numSprites*shapeBytes {
		return false
	}
	s.v.shapeMu.Lock()
	defer s.v.shapeMu.Unlock()
	s.v.shapes[off/shapeBytes][off%shapeBytes] = val
	return true
}
func (s spriteSpace) CanWriteRange(off, length int) bool {
	return off >= 0 && off+length <= numSprites*shapeBytes
}
