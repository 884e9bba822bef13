package colour

import (
	"cmp"
	"container/heap"
	"slices"
	"sync"
)

// Quantize clusters px into at most target colours with median-cut box splitting,
// whatever the number of distinct colours. Fewer colours are returned when the image
// runs out of boxes that can be split.
//
// Palette entries are ordered by box priority (population × volume), highest first.
// A target of zero yields an empty palette, one yields the average colour and a
// negative target is replaced by DefaultMaxColors.
func Quantize(px Pixels, target int, opts ...Option) *Palette {
	return quantize(px, target, newOptions(opts))
}

func quantize(px Pixels, target int, o options) *Palette {
	if target < 0 {
		target = DefaultMaxColors
	}
	total := px.Len()
	if target == 0 || total == 0 {
		return emptyPalette()
	}
	if target == 1 {
		return Average(px)
	}

	entries := histogram(px, o.workers)
	boxes := medianCut(entries, target)
	o.logger.Debug("median cut complete",
		"distinct_colours", len(entries), "target", target, "boxes", len(boxes))

	colors := make([]RGBA, len(boxes))
	weights := make([]float64, len(boxes))
	boxOf := make(map[Key]int, len(entries))

	var prioritySum float64
	for _, b := range boxes {
		prioritySum += float64(b.priority())
	}

	for i, b := range boxes {
		colors[i] = b.mean()
		switch o.weighting {
		case WeightPopulation:
			weights[i] = float64(b.population) / float64(total)
		default:
			weights[i] = float64(b.priority()) / prioritySum
		}
		for _, e := range b.entries {
			boxOf[e.key] = i
		}
	}

	return &Palette{
		Colors:  colors,
		IDs:     assign(px, boxOf, o.workers),
		Weights: weights,
		Mode:    ModeQuantized,
	}
}

// medianCut splits the bounding box of entries until there are target boxes or none
// can be split further. The returned boxes are in priority order.
func medianCut(entries []histEntry, target int) []*vbox {
	seq := 0
	nextSeq := func() int {
		seq++
		return seq
	}

	q := &boxQueue{newVBox(entries, 0)}
	var parked []*vbox

	for q.Len() > 0 && q.Len()+len(parked) < target {
		b := heap.Pop(q).(*vbox)
		if !b.splittable() {
			parked = append(parked, b)
			continue
		}
		left, right := b.split(nextSeq)
		heap.Push(q, left)
		heap.Push(q, right)
	}

	boxes := append(parked, *q...)
	slices.SortFunc(boxes, func(x, y *vbox) int {
		switch {
		case boxBefore(x, y):
			return -1
		case boxBefore(y, x):
			return 1
		}
		return 0
	})
	return boxes
}

// histogram counts the pixels of every distinct colour. Entries are sorted by key so
// the result does not depend on map iteration or on how the scan was chunked.
func histogram(px Pixels, workers int) []histEntry {
	total := px.Len()
	workers = min(max(workers, 1), total)
	partial := make([]map[Key]uint64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := splitRange(total, workers, w)
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			counts := make(map[Key]uint64)
			for i := start; i < end; i++ {
				counts[px.Key(i)]++
			}
			partial[w] = counts
		}(w, start, end)
	}
	wg.Wait()

	merged := partial[0]
	for _, counts := range partial[1:] {
		for k, n := range counts {
			merged[k] += n
		}
	}

	entries := make([]histEntry, 0, len(merged))
	for k, n := range merged {
		rgb := k.RGB()
		entries = append(entries, histEntry{key: k, r: rgb.R, g: rgb.G, b: rgb.B, count: n})
	}
	slices.SortFunc(entries, func(x, y histEntry) int {
		return cmp.Compare(x.key, y.key)
	})
	return entries
}

// assign maps every pixel to the box holding its colour.
func assign(px Pixels, boxOf map[Key]int, workers int) []int {
	total := px.Len()
	ids := make([]int, total)
	workers = min(max(workers, 1), total)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start, end := splitRange(total, workers, w)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				ids[i] = boxOf[px.Key(i)]
			}
		}(start, end)
	}
	wg.Wait()
	return ids
}

// splitRange returns the half-open range of length handled by the given worker.
func splitRange(length, workers, worker int) (int, int) {
	chunk := length / workers
	remainder := length % workers
	start := worker*chunk + min(worker, remainder)
	end := start + chunk
	if worker < remainder {
		end++
	}
	return start, end
}
