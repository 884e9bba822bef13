package colour

// Average collapses px to a single colour: the channel-wise mean of every pixel,
// alpha included, truncated to 8 bits. Every pixel is assigned index 0.
// An empty buffer yields an empty palette.
func Average(px Pixels) *Palette {
	total := px.Len()
	if total == 0 {
		return emptyPalette()
	}

	var sum [4]uint64
	for i := 0; i < total*4; i += 4 {
		sum[0] += uint64(px[i])
		sum[1] += uint64(px[i+1])
		sum[2] += uint64(px[i+2])
		sum[3] += uint64(px[i+3])
	}

	n := uint64(total)
	return &Palette{
		Colors: []RGBA{{
			R: uint8(sum[0] / n),
			G: uint8(sum[1] / n),
			B: uint8(sum[2] / n),
			A: uint8(sum[3] / n),
		}},
		IDs:     make([]int, total),
		Weights: []float64{1},
		Mode:    ModeAverage,
	}
}
