// Package game defines the board primitives for the single-player arcade snake.
//
// Everything in here is owned by one rules.Engine and mutated from a single
// goroutine. Nothing is safe for concurrent use.
package game

// Point is a board coordinate.
// Coordinates follow screen conventions: (0,0) is top-left, Y grows downward.
type Point struct {
	X int
	Y int
}

// Add returns the neighbour of p one cell along d.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Chebyshev returns the king-move distance between p and q.
func (p Point) Chebyshev(q Point) int {
	dx := abs(p.X - q.X)
	dy := abs(p.Y - q.Y)
	if dx > dy {
		return dx
	}
	return dy
}

// Direction is a unit move on the board. None means no direction committed yet.
type Direction uint8

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Delta returns the (dx, dy) offset for one step in d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return None
	}
}

// Vertical reports whether d moves along the Y axis.
func (d Direction) Vertical() bool { return d == Up || d == Down }

// Orthogonal reports whether d and o lie on different axes. None is orthogonal to nothing.
func (d Direction) Orthogonal(o Direction) bool {
	if d == None || o == None {
		return false
	}
	return d.Vertical() != o.Vertical()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
