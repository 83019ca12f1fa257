// spawn.go implements item placement for the arcade board.

package game

import (
	"math/rand"
)

// Kind identifies a spawnable item category.
type Kind uint8

const (
	Food Kind = iota
	Bonus
	Shield
	Obstacle
)

func (k Kind) String() string {
	switch k {
	case Food:
		return "food"
	case Bonus:
		return "bonus"
	case Shield:
		return "shield"
	case Obstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// RejectionAttempts bounds the random probes Place makes before it falls back
// to scanning the board for free cells.
const RejectionAttempts = 64

// Spawner tracks every placed item and picks uniformly random legal cells for new ones.
// A cell is legal when the occupancy grid allows it and no other item sits on it.
type Spawner struct {
	grid *Occupancy
	rng  *rand.Rand

	singles [Obstacle]Point
	present [Obstacle]bool

	obstacles []Point
	blocked   map[Point]struct{} // obstacle membership
}

func NewSpawner(grid *Occupancy, rng *rand.Rand) *Spawner {
	return &Spawner{
		grid:    grid,
		rng:     rng,
		blocked: make(map[Point]struct{}),
	}
}

// At returns the position of a singleton item. It is always absent for Obstacle.
func (s *Spawner) At(k Kind) (Point, bool) {
	if k >= Obstacle {
		return Point{}, false
	}
	return s.singles[k], s.present[k]
}

// Has reports whether a singleton item is on the board.
func (s *Spawner) Has(k Kind) bool {
	_, ok := s.At(k)
	return ok
}

// Clear removes a singleton item. Obstacles are only removed with RemoveObstacle.
func (s *Spawner) Clear(k Kind) {
	if k >= Obstacle {
		return
	}
	s.present[k] = false
	s.singles[k] = Point{}
}

// Obstacles returns the obstacle cells in placement order.
func (s *Spawner) Obstacles() []Point {
	out := make([]Point, len(s.obstacles))
	copy(out, s.obstacles)
	return out
}

func (s *Spawner) IsObstacle(p Point) bool {
	_, ok := s.blocked[p]
	return ok
}

// RemoveObstacle deletes the obstacle at p, reporting whether one was there.
func (s *Spawner) RemoveObstacle(p Point) bool {
	if _, ok := s.blocked[p]; !ok {
		return false
	}
	delete(s.blocked, p)
	for i, o := range s.obstacles {
		if o == p {
			s.obstacles = append(s.obstacles[:i], s.obstacles[i+1:]...)
			break
		}
	}
	return true
}

// Taken reports whether any item occupies p.
func (s *Spawner) Taken(p Point) bool {
	for k := Food; k < Obstacle; k++ {
		if s.present[k] && s.singles[k] == p {
			return true
		}
	}
	return s.IsObstacle(p)
}

// Legal reports whether a new item may be placed at p.
func (s *Spawner) Legal(p Point) bool {
	return !s.grid.Forbidden(p) && !s.Taken(p)
}

// Place puts one item of kind k on a random legal cell. A singleton that is
// already present is left where it is. It returns false when no legal cell exists.
func (s *Spawner) Place(k Kind) (Point, bool) {
	if k < Obstacle && s.present[k] {
		return s.singles[k], false
	}
	p, ok := s.pick()
	if !ok {
		return Point{}, false
	}
	s.Put(k, p)
	return p, true
}

// Put places an item of kind k at p, ignoring the spawn buffer. It fails when p is
// off the board or already holds an item, and then changes nothing. On success a
// present item of a singleton kind moves to p.
func (s *Spawner) Put(k Kind, p Point) bool {
	if !s.grid.InBounds(p) {
		return false
	}
	if k < Obstacle && s.present[k] && s.singles[k] == p {
		return true
	}
	if s.Taken(p) {
		return false
	}
	if k < Obstacle {
		s.Clear(k)
	}
	if k == Obstacle {
		s.obstacles = append(s.obstacles, p)
		s.blocked[p] = struct{}{}
		return true
	}
	s.singles[k] = p
	s.present[k] = true
	return true
}

func (s *Spawner) pick() (Point, bool) {
	w, h := s.grid.Width, s.grid.Height
	if w <= 0 || h <= 0 {
		return Point{}, false
	}

	// Sparse boards almost always hit within a few probes.
	for i := 0; i < RejectionAttempts; i++ {
		p := Point{X: s.rng.Intn(w), Y: s.rng.Intn(h)}
		if s.Legal(p) {
			return p, true
		}
	}

	// Dense board: enumerate what is left and choose among it.
	available := make([]Point, 0, s.grid.Free())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := Point{X: x, Y: y}
			if s.Legal(p) {
				available = append(available, p)
			}
		}
	}
	if len(available) == 0 {
		return Point{}, false
	}
	return available[s.rng.Intn(len(available))], true
}
