package rules

import "time"

// Clock turns wall-clock time into simulation steps.
//
// Elapsed time accumulates; each step consumes delay*tick of it. The delay is
// passed per call because pickups change it between steps.
type Clock struct {
	tick time.Duration
	acc  time.Duration
}

func NewClock(tick time.Duration) *Clock {
	return &Clock{tick: tick}
}

// Add accumulates elapsed time. Negative durations are ignored.
func (c *Clock) Add(elapsed time.Duration) {
	if elapsed > 0 {
		c.acc += elapsed
	}
}

// Take consumes one step at the given delay if enough time has built up.
func (c *Clock) Take(delay float64) bool {
	need := c.interval(delay)
	if c.acc < need {
		return false
	}
	c.acc -= need
	return true
}

// Trim drops backlog so that at most one step is owed. Used after a capped
// catch-up so a long stall does not turn into a burst of steps later.
func (c *Clock) Trim(delay float64) {
	if need := c.interval(delay); c.acc > need {
		c.acc = need
	}
}

// Pending returns the accumulated, not yet consumed time.
func (c *Clock) Pending() time.Duration { return c.acc }

func (c *Clock) Reset() { c.acc = 0 }

func (c *Clock) interval(delay float64) time.Duration {
	need := time.Duration(delay * float64(c.tick))
	if need <= 0 {
		need = 1
	}
	return need
}
