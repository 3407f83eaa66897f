package catalog

// Flip holds the transform bits Tiled stores in the high bits of a gid.
type Flip uint32

const (
	FlipHorizontal Flip = 0x80000000
	FlipVertical   Flip = 0x40000000
	FlipDiagonal   Flip = 0x20000000
	// RotateHex120 is only meaningful on hexagonal maps.
	RotateHex120 Flip = 0x10000000

	flipMask = uint32(FlipHorizontal | FlipVertical | FlipDiagonal | RotateHex120)
)

func (f Flip) Has(flag Flip) bool {
	return f&flag != 0
}

// DecodeGID splits a raw map gid into the tile gid and its flip bits.
func DecodeGID(raw uint32) (uint32, Flip) {
	return raw &^ flipMask, Flip(raw & flipMask)
}
