package colour

// exactResult is the outcome of the bounded exact-counting pass. When complete is
// false the scan stopped at pixel scanned because a colour beyond the limit appeared,
// and only scanned is meaningful.
type exactResult struct {
	complete bool
	scanned  int
	colors   []RGBA
	counts   []int
	ids      []int
}

// countExact assigns palette indices to distinct colours in first-seen order.
// The stored colour is the first pixel carrying that RGB value, alpha included.
func countExact(px Pixels, maxColors int) exactResult {
	total := px.Len()
	index := make(map[Key]int, maxColors)
	res := exactResult{
		colors: make([]RGBA, 0, maxColors),
		counts: make([]int, 0, maxColors),
		ids:    make([]int, total),
	}

	for i := 0; i < total; i++ {
		k := px.Key(i)
		id, ok := index[k]
		if !ok {
			if len(res.colors) == maxColors {
				return exactResult{scanned: i}
			}
			id = len(res.colors)
			index[k] = id
			res.colors = append(res.colors, px.At(i))
			res.counts = append(res.counts, 0)
		}
		res.counts[id]++
		res.ids[i] = id
	}

	res.complete = true
	res.scanned = total
	return res
}

func (r exactResult) palette() *Palette {
	weights := make([]float64, len(r.counts))
	for i, n := range r.counts {
		weights[i] = float64(n) / float64(r.scanned)
	}
	return &Palette{
		Colors:  r.colors,
		IDs:     r.ids,
		Weights: weights,
		Mode:    ModeExact,
	}
}
