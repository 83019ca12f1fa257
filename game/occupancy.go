package game

import "fmt"

// Occupancy is a reference-counted forbidden-zone map over the board.
// A cell is forbidden iff its count is positive. Counts are stored densely,
// index = y*Width + x, so lookups never allocate.
type Occupancy struct {
	Width  int
	Height int

	counts []int32
	used   int // cells with a positive count
}

func NewOccupancy(width, height int) *Occupancy {
	return &Occupancy{
		Width:  width,
		Height: height,
		counts: make([]int32, width*height),
	}
}

// InBounds reports whether p lies on the board.
func (o *Occupancy) InBounds(p Point) bool {
	return p.X >= 0 && p.X < o.Width && p.Y >= 0 && p.Y < o.Height
}

// Mark adds one to every on-board cell within Chebyshev distance radius of p.
func (o *Occupancy) Mark(p Point, radius int) {
	o.apply(p, radius, 1)
}

// Unmark is the exact inverse of Mark. Driving any count below zero panics:
// it means a segment was released that was never marked.
func (o *Occupancy) Unmark(p Point, radius int) {
	o.apply(p, radius, -1)
}

func (o *Occupancy) apply(p Point, radius int, delta int32) {
	if radius < 0 {
		radius = 0
	}
	x0, x1 := max(p.X-radius, 0), min(p.X+radius, o.Width-1)
	y0, y1 := max(p.Y-radius, 0), min(p.Y+radius, o.Height-1)
	for y := y0; y <= y1; y++ {
		row := y * o.Width
		for x := x0; x <= x1; x++ {
			c := &o.counts[row+x]
			before := *c
			*c += delta
			switch {
			case *c < 0:
				panic(fmt.Sprintf("occupancy: negative count at (%d,%d)", x, y))
			case before == 0 && *c > 0:
				o.used++
			case before > 0 && *c == 0:
				o.used--
			}
		}
	}
}

// Forbidden reports whether p may not receive a spawn. Off-board cells are always forbidden.
func (o *Occupancy) Forbidden(p Point) bool {
	if !o.InBounds(p) {
		return true
	}
	return o.counts[p.Y*o.Width+p.X] > 0
}

// Count returns the raw reference count at p, 0 for off-board cells.
func (o *Occupancy) Count(p Point) int {
	if !o.InBounds(p) {
		return 0
	}
	return int(o.counts[p.Y*o.Width+p.X])
}

// Free returns the number of on-board cells with a zero count.
func (o *Occupancy) Free() int { return len(o.counts) - o.used }

// Equal reports whether both grids hold identical counts.
func (o *Occupancy) Equal(other *Occupancy) bool {
	if o.Width != other.Width || o.Height != other.Height {
		return false
	}
	for i := range o.counts {
		if o.counts[i] != other.counts[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (o *Occupancy) Clone() *Occupancy {
	out := &Occupancy{Width: o.Width, Height: o.Height, used: o.used}
	out.counts = make([]int32, len(o.counts))
	copy(out.counts, o.counts)
	return out
}
