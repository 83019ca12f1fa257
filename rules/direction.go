package rules

import "github.com/brensch/snekgrid/game"

// Controller buffers at most one pending turn between steps.
//
// A turn is accepted only when it is orthogonal to the committed direction, so a
// reversal never reaches the snake. Before anything is committed every direction
// is accepted. Several accepted inputs before a step: the last one wins.
type Controller struct {
	committed game.Direction
	pending   game.Direction
}

// Submit offers d as the next direction and reports whether it was buffered.
func (c *Controller) Submit(d game.Direction) bool {
	if d == game.None {
		return false
	}
	if c.committed != game.None && !d.Orthogonal(c.committed) {
		return false
	}
	c.pending = d
	return true
}

// Resolve commits the pending direction, if any, and returns the direction in effect.
func (c *Controller) Resolve() game.Direction {
	if c.pending != game.None {
		c.committed = c.pending
		c.pending = game.None
	}
	return c.committed
}

func (c *Controller) Committed() game.Direction { return c.committed }
func (c *Controller) Pending() game.Direction   { return c.pending }

func (c *Controller) Reset() { *c = Controller{} }
