package rules

import "github.com/brensch/snekgrid/game"

// Cause records why a session ended.
type Cause string

const (
	CauseNone              Cause = ""
	CauseWallCollision     Cause = "wall-collision"
	CauseSelfCollision     Cause = "self-collision"
	CauseObstacleCollision Cause = "obstacle-collision"
)

// Snapshot is everything a renderer needs for one frame.
// It is a copy; holding on to it never observes later steps.
type Snapshot struct {
	Snake     []game.Point // tail first, head last
	Food      *game.Point
	Bonus     *game.Point
	Shield    *game.Point
	Obstacles []game.Point // placement order

	Score      int
	Alive      bool
	Shielded   bool
	GrowCredit int
	Delay      float64
	Direction  game.Direction
	Cause      Cause

	Steps   int // steps resolved since the last reset
	Session int // resets since construction
}

// Head returns the last snake cell.
func (s Snapshot) Head() game.Point {
	return s.Snake[len(s.Snake)-1]
}
