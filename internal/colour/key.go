package colour

// Key is a packed 24-bit RGB value. Two pixels share a key exactly when their red,
// green and blue channels are equal; alpha never participates.
type Key uint32

// KeyOf packs r, g and b into a Key.
func KeyOf(r, g, b uint8) Key {
	return Key(r)<<16 | Key(g)<<8 | Key(b)
}

// RGB unpacks the key.
func (k Key) RGB() RGB {
	return RGB{
		R: uint8(k >> 16),
		G: uint8(k >> 8),
		B: uint8(k),
	}
}
