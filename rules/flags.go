package rules

import "flag"

// RegisterFlags binds the board, pacing and spawn settings to fs.
// The current field values become the flag defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Width, "width", c.Width, "Board width in cells")
	fs.IntVar(&c.Height, "height", c.Height, "Board height in cells")
	fs.IntVar(&c.BufferRadius, "buffer", c.BufferRadius, "Chebyshev radius kept clear around the snake when spawning")

	fs.DurationVar(&c.TickInterval, "tick", c.TickInterval, "Wall-clock length of one tick")
	fs.Float64Var(&c.BaseDelay, "delay", c.BaseDelay, "Ticks per step at the start of a session")
	fs.Float64Var(&c.MinDelay, "min-delay", c.MinDelay, "Fastest allowed delay in ticks per step")
	fs.Float64Var(&c.MaxDelay, "max-delay", c.MaxDelay, "Slowest allowed delay in ticks per step (0 = no ceiling)")
	fs.IntVar(&c.MaxCatchUp, "max-catch-up", c.MaxCatchUp, "Most steps resolved for one frame")

	fs.IntVar(&c.BonusPeriod, "bonus-period", c.BonusPeriod, "Steps between bonus spawns (0 = never)")
	fs.IntVar(&c.ShieldPeriod, "shield-period", c.ShieldPeriod, "Steps between shield spawns (0 = never)")
	fs.IntVar(&c.ObstaclePeriod, "obstacle-period", c.ObstaclePeriod, "Steps between obstacle spawns (0 = never)")

	fs.Int64Var(&c.Seed, "seed", c.Seed, "Random seed for spawn placement")
}
