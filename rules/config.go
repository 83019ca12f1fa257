package rules

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of a session. It is fixed once an Engine is built.
//
// Delays are measured in ticks per step: the snake moves once every Delay ticks,
// and a tick lasts TickInterval of wall-clock time.
//
// Periods are measured in simulation steps. A zero period disables that category.
type Config struct {
	Width        int
	Height       int
	BufferRadius int

	TickInterval time.Duration
	BaseDelay    float64
	MinDelay     float64
	MaxDelay     float64 // 0 = no ceiling
	MaxCatchUp   int     // steps released per Step call

	FoodValue           int
	FoodGrowth          int
	FoodSpeedMultiplier float64

	BonusValue          int
	BonusSpeedIncrement float64
	BonusPeriod         int

	ShieldValue  int
	ShieldPeriod int

	ObstacleValue  int
	ObstaclePeriod int

	Seed int64
}

// DefaultConfig is a 76x45 board at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		Width:        76,
		Height:       45,
		BufferRadius: 1,

		TickInterval: time.Second / 60,
		BaseDelay:    8,
		MinDelay:     2,
		MaxCatchUp:   5,

		FoodValue:           1,
		FoodGrowth:          1,
		FoodSpeedMultiplier: 0.97,

		BonusValue:          5,
		BonusSpeedIncrement: 1,
		BonusPeriod:         60,

		ShieldValue:  2,
		ShieldPeriod: 150,

		ObstacleValue:  3,
		ObstaclePeriod: 40,

		Seed: 1,
	}
}

// Validate reports the first setting that would leave the engine unable to run.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: board %dx%d smaller than 3x3", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.BufferRadius < 0 {
		return fmt.Errorf("%w: buffer radius %d is negative", ErrInvalidConfig, c.BufferRadius)
	}
	side := 2*c.BufferRadius + 1
	if side >= c.Width && side >= c.Height {
		return fmt.Errorf("%w: buffer radius %d covers the whole %dx%d board", ErrInvalidConfig, c.BufferRadius, c.Width, c.Height)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval %s must be positive", ErrInvalidConfig, c.TickInterval)
	}
	if c.MinDelay <= 0 {
		return fmt.Errorf("%w: min delay %g must be positive", ErrInvalidConfig, c.MinDelay)
	}
	if c.BaseDelay < c.MinDelay {
		return fmt.Errorf("%w: base delay %g below min delay %g", ErrInvalidConfig, c.BaseDelay, c.MinDelay)
	}
	if c.MaxDelay != 0 && c.MaxDelay < c.BaseDelay {
		return fmt.Errorf("%w: max delay %g below base delay %g", ErrInvalidConfig, c.MaxDelay, c.BaseDelay)
	}
	if c.MaxCatchUp < 1 {
		return fmt.Errorf("%w: max catch-up %d must be at least 1", ErrInvalidConfig, c.MaxCatchUp)
	}
	if c.FoodSpeedMultiplier <= 0 {
		return fmt.Errorf("%w: food speed multiplier %g must be positive", ErrInvalidConfig, c.FoodSpeedMultiplier)
	}
	if c.FoodValue < 0 || c.BonusValue < 0 || c.ShieldValue < 0 || c.ObstacleValue < 0 {
		return fmt.Errorf("%w: pickup values must not be negative", ErrInvalidConfig)
	}
	if c.FoodGrowth < 0 {
		return fmt.Errorf("%w: food growth %d is negative", ErrInvalidConfig, c.FoodGrowth)
	}
	if c.BonusPeriod < 0 || c.ShieldPeriod < 0 || c.ObstaclePeriod < 0 {
		return fmt.Errorf("%w: spawn periods must not be negative", ErrInvalidConfig)
	}
	return nil
}

// StepInterval is the wall-clock time one step takes at the given delay.
func (c Config) StepInterval(delay float64) time.Duration {
	return time.Duration(delay * float64(c.TickInterval))
}
