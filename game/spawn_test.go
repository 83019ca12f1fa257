package game

import (
	"math/rand"
	"testing"
)

func TestWaiter_FiresEveryPeriod(t *testing.T) {
	w := Waiter{Period: 3}
	var fired []int
	for i := 1; i <= 9; i++ {
		if w.Tick() {
			fired = append(fired, i)
		}
	}
	want := []int{3, 6, 9}
	if len(fired) != len(want) {
		t.Fatalf("fired=%v want=%v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Fatalf("fired=%v want=%v", fired, want)
		}
	}
}

func TestWaiter_ZeroPeriodNeverFires(t *testing.T) {
	w := Waiter{}
	for i := 0; i < 100; i++ {
		if w.Tick() {
			t.Fatalf("fired with zero period")
		}
	}
}

func TestWaiter_Reset(t *testing.T) {
	w := Waiter{Period: 2}
	w.Tick()
	w.Reset()
	if w.Tick() {
		t.Fatalf("fired one tick after reset")
	}
	if !w.Tick() {
		t.Fatalf("did not fire two ticks after reset")
	}
}

func TestSpawner_AvoidsBufferAndItems(t *testing.T) {
	g := NewOccupancy(6, 6)
	NewSnake(Point{X: 2, Y: 2}, g, 1)
	sp := NewSpawner(g, rand.New(rand.NewSource(1)))

	for i := 0; i < 10; i++ {
		p, ok := sp.Place(Obstacle)
		if !ok {
			t.Fatalf("obstacle %d not placed", i)
		}
		if p.Chebyshev(Point{X: 2, Y: 2}) <= 1 {
			t.Fatalf("obstacle %v inside snake buffer", p)
		}
	}
	food, ok := sp.Place(Food)
	if !ok {
		t.Fatalf("food not placed")
	}
	if sp.IsObstacle(food) {
		t.Fatalf("food %v placed on an obstacle", food)
	}
	if len(sp.Obstacles()) != 10 {
		t.Fatalf("obstacles=%d want=10", len(sp.Obstacles()))
	}
}

func TestSpawner_SingletonIsNotReplaced(t *testing.T) {
	sp := NewSpawner(NewOccupancy(5, 5), rand.New(rand.NewSource(2)))
	first, ok := sp.Place(Bonus)
	if !ok {
		t.Fatalf("bonus not placed")
	}
	again, ok := sp.Place(Bonus)
	if ok || again != first {
		t.Fatalf("second place moved bonus: %v -> %v (ok=%v)", first, again, ok)
	}
	sp.Clear(Bonus)
	if sp.Has(Bonus) {
		t.Fatalf("bonus still present after clear")
	}
}

func TestSpawner_FailedPutKeepsItem(t *testing.T) {
	sp := NewSpawner(NewOccupancy(5, 5), rand.New(rand.NewSource(5)))
	food := Point{X: 1, Y: 1}
	wall := Point{X: 3, Y: 3}
	if !sp.Put(Food, food) || !sp.Put(Obstacle, wall) {
		t.Fatalf("setup puts failed")
	}

	for _, p := range []Point{{X: -1, Y: 0}, {X: 5, Y: 2}, wall} {
		if sp.Put(Food, p) {
			t.Fatalf("put food at %v succeeded", p)
		}
		if got, ok := sp.At(Food); !ok || got != food {
			t.Fatalf("failed put at %v moved food to %v (present=%v)", p, got, ok)
		}
	}

	if !sp.Put(Food, food) {
		t.Fatalf("put food on its own cell failed")
	}
	moved := Point{X: 2, Y: 4}
	if !sp.Put(Food, moved) {
		t.Fatalf("put food at %v failed", moved)
	}
	if got, _ := sp.At(Food); got != moved || !sp.Legal(food) {
		t.Fatalf("food=%v, old cell legal=%v", got, sp.Legal(food))
	}
}

// Every remaining legal cell gets used before Place reports a full board.
func TestSpawner_FillsBoardThenStops(t *testing.T) {
	g := NewOccupancy(4, 4)
	NewSnake(Point{X: 0, Y: 0}, g, 1) // forbids 4 cells
	sp := NewSpawner(g, rand.New(rand.NewSource(3)))

	seen := map[Point]bool{}
	for i := 0; i < 12; i++ {
		p, ok := sp.Place(Obstacle)
		if !ok {
			t.Fatalf("placement %d failed with free cells left", i)
		}
		if seen[p] {
			t.Fatalf("duplicate obstacle at %v", p)
		}
		seen[p] = true
	}
	if _, ok := sp.Place(Obstacle); ok {
		t.Fatalf("placed on a full board")
	}
	if _, ok := sp.Place(Food); ok {
		t.Fatalf("food placed on a full board")
	}
}

func TestSpawner_RemoveObstacle(t *testing.T) {
	sp := NewSpawner(NewOccupancy(5, 5), rand.New(rand.NewSource(4)))
	a, _ := sp.Place(Obstacle)
	b, _ := sp.Place(Obstacle)

	if !sp.RemoveObstacle(a) {
		t.Fatalf("remove %v reported missing", a)
	}
	if sp.RemoveObstacle(a) {
		t.Fatalf("second remove of %v succeeded", a)
	}
	obs := sp.Obstacles()
	if len(obs) != 1 || obs[0] != b {
		t.Fatalf("obstacles=%v want=[%v]", obs, b)
	}
	if !sp.Legal(a) {
		t.Fatalf("removed cell %v not legal again", a)
	}
}

func TestSpawner_UniformOverLegalCells(t *testing.T) {
	g := NewOccupancy(3, 1)
	sp := NewSpawner(g, rand.New(rand.NewSource(5)))
	counts := map[Point]int{}
	for i := 0; i < 3000; i++ {
		p, _ := sp.Place(Food)
		counts[p]++
		sp.Clear(Food)
	}
	for x := 0; x < 3; x++ {
		c := counts[Point{X: x}]
		if c < 800 || c > 1200 {
			t.Fatalf("cell %d chosen %d/3000 times, want about 1000 (%v)", x, c, counts)
		}
	}
}
