package colour

import (
	"cmp"
	"slices"
)

type axis int

const (
	axisRed axis = iota
	axisGreen
	axisBlue
)

// histEntry is one distinct colour and the number of pixels carrying it.
type histEntry struct {
	key     Key
	r, g, b uint8
	count   uint64
}

func (e histEntry) value(a axis) uint8 {
	switch a {
	case axisRed:
		return e.r
	case axisGreen:
		return e.g
	default:
		return e.b
	}
}

// vbox is an axis-aligned box in RGB space holding the distinct colours inside it.
// Bounds are always tight around those colours.
type vbox struct {
	entries    []histEntry
	rMin, rMax uint8
	gMin, gMax uint8
	bMin, bMax uint8
	population uint64
	// seq orders boxes by creation and breaks priority ties.
	seq int
}

func newVBox(entries []histEntry, seq int) *vbox {
	b := &vbox{
		entries: entries,
		seq:     seq,
		rMin:    255,
		gMin:    255,
		bMin:    255,
	}
	for _, e := range entries {
		b.population += e.count
		b.rMin = min(b.rMin, e.r)
		b.rMax = max(b.rMax, e.r)
		b.gMin = min(b.gMin, e.g)
		b.gMax = max(b.gMax, e.g)
		b.bMin = min(b.bMin, e.b)
		b.bMax = max(b.bMax, e.b)
	}
	return b
}

// volume is the product of the per-axis ranges, each counted inclusively.
func (b *vbox) volume() uint64 {
	return (uint64(b.rMax-b.rMin) + 1) * (uint64(b.gMax-b.gMin) + 1) * (uint64(b.bMax-b.bMin) + 1)
}

func (b *vbox) priority() uint64 {
	return b.population * b.volume()
}

func (b *vbox) splittable() bool {
	return len(b.entries) >= 2
}

// longestAxis prefers red, then green, on equal ranges.
func (b *vbox) longestAxis() axis {
	r := b.rMax - b.rMin
	g := b.gMax - b.gMin
	bl := b.bMax - b.bMin
	switch {
	case r >= g && r >= bl:
		return axisRed
	case g >= bl:
		return axisGreen
	default:
		return axisBlue
	}
}

// split cuts the box along its longest axis at the population median. Colours whose
// axis value is at or below the cut go left. The cut always falls strictly inside the
// axis range so both halves are non-empty and their ranges are disjoint.
// The box must be splittable; its entries are reordered in place and shared with
// the children.
func (b *vbox) split(nextSeq func() int) (*vbox, *vbox) {
	a := b.longestAxis()
	slices.SortFunc(b.entries, func(x, y histEntry) int {
		if c := cmp.Compare(x.value(a), y.value(a)); c != 0 {
			return c
		}
		return cmp.Compare(x.key, y.key)
	})

	var cum uint64
	cut := 0
	for i := 0; i < len(b.entries); {
		v := b.entries[i].value(a)
		j := i
		for j < len(b.entries) && b.entries[j].value(a) == v {
			cum += b.entries[j].count
			j++
		}
		if cum*2 >= b.population {
			cut = j
			if cut == len(b.entries) {
				// The median sits in the topmost slab; put that slab on its own.
				cut = i
			}
			break
		}
		i = j
	}

	left := newVBox(b.entries[:cut], nextSeq())
	right := newVBox(b.entries[cut:], nextSeq())
	return left, right
}

// mean is the population-weighted mean colour of the box, fully opaque.
func (b *vbox) mean() RGBA {
	if b.population == 0 {
		return RGBA{A: 255}
	}
	var r, g, bl uint64
	for _, e := range b.entries {
		r += uint64(e.r) * e.count
		g += uint64(e.g) * e.count
		bl += uint64(e.b) * e.count
	}
	return RGBA{
		R: uint8(r / b.population),
		G: uint8(g / b.population),
		B: uint8(bl / b.population),
		A: 255,
	}
}

// boxQueue is a max-heap of boxes ordered by priority, earliest created first on ties.
type boxQueue []*vbox

func (q boxQueue) Len() int { return len(q) }

func (q boxQueue) Less(i, j int) bool {
	return boxBefore(q[i], q[j])
}

func (q boxQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *boxQueue) Push(x any) {
	*q = append(*q, x.(*vbox))
}

func (q *boxQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

func boxBefore(x, y *vbox) bool {
	px, py := x.priority(), y.priority()
	if px != py {
		return px > py
	}
	return x.seq < y.seq
}
