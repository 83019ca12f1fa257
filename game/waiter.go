package game

// Waiter is a step counter that fires once every Period ticks.
// A Period of zero or less never fires.
type Waiter struct {
	Period int
	count  int
}

// Tick advances the counter and reports whether the period elapsed.
// The counter restarts from zero after firing.
func (w *Waiter) Tick() bool {
	if w.Period <= 0 {
		return false
	}
	w.count++
	if w.count < w.Period {
		return false
	}
	w.count = 0
	return true
}

// Reset zeroes the counter.
func (w *Waiter) Reset() { w.count = 0 }

// Elapsed returns the ticks counted since the last firing.
func (w *Waiter) Elapsed() int { return w.count }
