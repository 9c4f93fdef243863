package vgc

// computeCollisions recomputes the per-frame sprite-sprite and
// sprite-background bitmasks. Bit i set means sprite i participated in
// at least one collision of that kind this frame; the registers are
// read-and-clear, so the bits accumulate here and are drained on read.
func (v *VGC) computeCollisions() {
	bitmap := v.mode&modeBitmapBit != 0
	var stMask, bgMask uint8

	type occupied struct {
		sprite int
		color  uint8
	}
	covered := make(map[[2]int][]occupied)

	for i := range v.sprites {
		s := &v.sprites[i]
		if !s.enabled {
			continue
		}
		for py := 0; py < spriteH; py++ {
			for px := 0; px < spriteW; px++ {
				c := v.shapePixel(int(s.shape), px, py, s.flipX, s.flipY)
				if c == 0 {
					continue
				}
				sx := int(s.x) + px
				sy := int(s.y) + py
				key := [2]int{sx, sy}
				covered[key] = append(covered[key], occupied{sprite: i, color: c})

				bgHit := false
				if bitmap {
					bgHit = v.getPixel(sx, sy) != 0
				} else {
					cellX, cellY := sx/8, sy/8
					if cellX >= 0 && cellX < cols && cellY >= 0 && cellY < rows {
						bgHit = v.charRAM[cellY*cols+cellX] != 0
					}
				}
				if bgHit {
					bgMask |= 1 << uint(i)
				}
			}
		}
	}

	for _, occ := range covered {
		if len(occ) < 2 {
			continue
		}
		for _, o := range occ {
			stMask |= 1 << uint(o.sprite)
		}
	}

	v.collisionST |= stMask
	v.collisionBG |= bgMask
}
