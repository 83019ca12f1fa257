package game

// Snake is the player's body. body[0] is the tail and the last element is the head.
// members mirrors body as a multiset so Contains is O(1); both are only ever
// changed together by Grow and Shrink.
type Snake struct {
	body    []Point
	members map[Point]int

	grid   *Occupancy
	radius int
}

// NewSnake places a one-segment snake at start and marks grid around it.
func NewSnake(start Point, grid *Occupancy, radius int) *Snake {
	s := &Snake{
		body:    make([]Point, 0, 16),
		members: make(map[Point]int, 16),
		grid:    grid,
		radius:  radius,
	}
	s.push(start)
	return s
}

// Head returns the most recently added segment.
func (s *Snake) Head() Point {
	if len(s.body) == 0 {
		panic("snake: empty body")
	}
	return s.body[len(s.body)-1]
}

// Tail returns the oldest segment, the next one Shrink removes.
func (s *Snake) Tail() Point {
	if len(s.body) == 0 {
		panic("snake: empty body")
	}
	return s.body[0]
}

func (s *Snake) Len() int { return len(s.body) }

// Contains reports whether any segment occupies p.
func (s *Snake) Contains(p Point) bool { return s.members[p] > 0 }

// Body returns a copy of the segments, tail first.
func (s *Snake) Body() []Point {
	out := make([]Point, len(s.body))
	copy(out, s.body)
	return out
}

// Grow appends p as the new head. It returns false, leaving the snake untouched,
// when p is already part of the body. The tail cell is the one exception: it is
// about to be vacated, so following it is legal.
func (s *Snake) Grow(p Point) bool {
	if s.members[p] > 0 && p != s.Tail() {
		return false
	}
	s.push(p)
	return true
}

// Shrink removes the tail. The snake never drops below one segment.
func (s *Snake) Shrink() {
	if len(s.body) <= 1 {
		panic("snake: shrink would empty body")
	}
	tail := s.body[0]
	s.body[0] = Point{}
	s.body = s.body[1:]
	if n := s.members[tail]; n <= 1 {
		delete(s.members, tail)
	} else {
		s.members[tail] = n - 1
	}
	s.grid.Unmark(tail, s.radius)
}

func (s *Snake) push(p Point) {
	s.body = append(s.body, p)
	s.members[p]++
	s.grid.Mark(p, s.radius)
}
