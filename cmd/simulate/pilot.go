package main

import (
	"math/rand"

	"github.com/brensch/snekgrid/game"
	"github.com/brensch/snekgrid/rules"
)

var moves = [...]game.Direction{game.Up, game.Down, game.Left, game.Right}

// pilot steers toward the nearest pickup, avoiding cells that would end the
// game on the next step. With probability wander it picks any safe move instead.
type pilot struct {
	rng    *rand.Rand
	width  int
	height int
	wander float64
}

func (p *pilot) next(s rules.Snapshot) game.Direction {
	head := s.Head()
	solid := make(map[game.Point]bool, len(s.Snake)+len(s.Obstacles))
	for i, c := range s.Snake {
		// The tail vacates this step unless credit keeps it.
		if i == 0 && s.GrowCredit == 0 && len(s.Snake) > 1 {
			continue
		}
		solid[c] = true
	}
	if !s.Shielded {
		for _, o := range s.Obstacles {
			solid[o] = true
		}
	}

	var safe []game.Direction
	for _, d := range moves {
		if s.Direction != game.None && d == s.Direction.Opposite() {
			continue
		}
		n := head.Add(d)
		if n.X < 0 || n.Y < 0 || n.X >= p.width || n.Y >= p.height || solid[n] {
			continue
		}
		safe = append(safe, d)
	}
	if len(safe) == 0 {
		// Boxed in; keep going and let the engine end it.
		if s.Direction == game.None {
			return game.Up
		}
		return s.Direction
	}
	if p.rng.Float64() < p.wander {
		return safe[p.rng.Intn(len(safe))]
	}

	target, ok := nearest(head, s.Food, s.Bonus, s.Shield)
	if !ok {
		return safe[p.rng.Intn(len(safe))]
	}
	best, bestDist := safe[0], -1
	for _, d := range safe {
		dist := manhattan(head.Add(d), target)
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}

func nearest(from game.Point, items ...*game.Point) (game.Point, bool) {
	var out game.Point
	found := false
	for _, it := range items {
		if it == nil {
			continue
		}
		if !found || manhattan(from, *it) < manhattan(from, out) {
			out, found = *it, true
		}
	}
	return out, found
}

func manhattan(a, b game.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
