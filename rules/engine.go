// Package rules runs the arcade snake simulation: direction buffering, the
// tick clock, and the per-step state machine over the board in package game.
package rules

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/brensch/snekgrid/game"
)

// State is the engine's lifecycle state.
type State uint8

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	if s == GameOver {
		return "game-over"
	}
	return "running"
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for game events. Events are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRand replaces the seeded source built from Config.Seed.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// Engine owns one game session. It is not safe for concurrent use: a caller
// drives it from a single goroutine and reads snapshots between calls.
type Engine struct {
	cfg Config
	log *slog.Logger
	rng *rand.Rand

	clock *Clock
	input Controller

	grid  *game.Occupancy
	snake *game.Snake
	items *game.Spawner

	bonusTimer    game.Waiter
	shieldTimer   game.Waiter
	obstacleTimer game.Waiter

	state      State
	cause      Cause
	score      int
	delay      float64
	growCredit int
	shielded   bool
	steps      int
	session    int
}

// New validates cfg and returns an engine in the Running state.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}
	e := &Engine{
		cfg:   cfg,
		log:   slog.New(slog.DiscardHandler),
		clock: NewClock(cfg.TickInterval),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(cfg.Seed))
	}
	e.init()
	return e, nil
}

func (e *Engine) init() {
	e.grid = game.NewOccupancy(e.cfg.Width, e.cfg.Height)
	e.snake = game.NewSnake(game.Point{X: e.cfg.Width / 2, Y: e.cfg.Height / 2}, e.grid, e.cfg.BufferRadius)
	e.items = game.NewSpawner(e.grid, e.rng)

	e.bonusTimer = game.Waiter{Period: e.cfg.BonusPeriod}
	e.shieldTimer = game.Waiter{Period: e.cfg.ShieldPeriod}
	e.obstacleTimer = game.Waiter{Period: e.cfg.ObstaclePeriod}

	e.input.Reset()
	e.clock.Reset()

	e.state = Running
	e.cause = CauseNone
	e.score = 0
	e.delay = e.cfg.BaseDelay
	e.growCredit = 0
	e.shielded = false
	e.steps = 0

	e.place(game.Food)
}

// Reset discards the session and starts a fresh one on a newly seeded board.
func (e *Engine) Reset() {
	prev := e.score
	e.session++
	e.init()
	e.log.Debug("session reset", "session", e.session, "previous_score", prev)
}

// Step feeds one input and elapsed wall-clock time to the engine and runs every
// simulation step that became due. intent may be game.None. It returns the number
// of steps resolved. While the game is over, Step does nothing.
func (e *Engine) Step(intent game.Direction, elapsed time.Duration) int {
	if e.state == GameOver {
		return 0
	}
	e.input.Submit(intent)
	e.clock.Add(elapsed)

	n := 0
	for n < e.cfg.MaxCatchUp && e.clock.Take(e.delay) {
		e.advance()
		n++
		if e.state == GameOver {
			e.clock.Reset()
			return n
		}
	}
	if n == e.cfg.MaxCatchUp {
		e.clock.Trim(e.delay)
	}
	return n
}

// Turn buffers d for the next step without advancing the clock. It reports
// whether d was accepted; reversals and game.None are not.
func (e *Engine) Turn(d game.Direction) bool {
	if e.state == GameOver {
		return false
	}
	return e.input.Submit(d)
}

// Advance runs exactly one simulation step regardless of the clock.
func (e *Engine) Advance(intent game.Direction) {
	if e.state == GameOver {
		return
	}
	e.input.Submit(intent)
	e.advance()
}

func (e *Engine) advance() {
	dir := e.input.Resolve()
	if dir == game.None {
		return
	}
	e.steps++

	next := e.snake.Head().Add(dir)

	if !e.grid.InBounds(next) {
		e.die(CauseWallCollision, next)
		return
	}

	if e.items.IsObstacle(next) {
		if !e.shielded {
			e.die(CauseObstacleCollision, next)
			return
		}
		e.shielded = false
		e.items.RemoveObstacle(next)
		e.score += e.cfg.ObstacleValue
		e.log.Debug("shield absorbed obstacle", "cell", next, "score", e.score)
	}

	// The tail only vacates when there is no grow-credit left to spend.
	if e.growCredit > 0 && e.snake.Len() > 1 && next == e.snake.Tail() {
		e.die(CauseSelfCollision, next)
		return
	}
	if !e.snake.Grow(next) {
		e.die(CauseSelfCollision, next)
		return
	}

	e.pickups(next)
	e.timers()

	if e.growCredit > 0 {
		e.growCredit--
	} else {
		e.snake.Shrink()
	}
}

func (e *Engine) pickups(head game.Point) {
	if p, ok := e.items.At(game.Food); ok && p == head {
		e.items.Clear(game.Food)
		e.score += e.cfg.FoodValue
		e.growCredit += e.cfg.FoodGrowth
		e.setDelay(e.delay * e.cfg.FoodSpeedMultiplier)
	}
	if !e.items.Has(game.Food) {
		e.place(game.Food)
	}

	if p, ok := e.items.At(game.Bonus); ok && p == head {
		e.items.Clear(game.Bonus)
		e.score += e.cfg.BonusValue
		e.growCredit += e.cfg.BonusValue
		e.setDelay(e.delay + e.cfg.BonusSpeedIncrement)
	}

	if p, ok := e.items.At(game.Shield); ok && p == head {
		e.items.Clear(game.Shield)
		e.score += e.cfg.ShieldValue
		e.shielded = true
	}
}

func (e *Engine) timers() {
	if e.bonusTimer.Tick() && !e.items.Has(game.Bonus) {
		e.place(game.Bonus)
	}
	if !e.shielded && e.shieldTimer.Tick() && !e.items.Has(game.Shield) {
		e.place(game.Shield)
	}
	if e.obstacleTimer.Tick() {
		e.place(game.Obstacle)
	}
}

func (e *Engine) place(k game.Kind) {
	if _, ok := e.items.Place(k); !ok {
		e.log.Debug("no free cell for spawn", "kind", k.String(), "free", e.grid.Free())
	}
}

func (e *Engine) setDelay(d float64) {
	if d < e.cfg.MinDelay {
		d = e.cfg.MinDelay
	}
	if e.cfg.MaxDelay > 0 && d > e.cfg.MaxDelay {
		d = e.cfg.MaxDelay
	}
	e.delay = d
}

func (e *Engine) die(cause Cause, at game.Point) {
	e.state = GameOver
	e.cause = cause
	e.log.Debug("game over", "cause", string(cause), "cell", at, "score", e.score, "length", e.snake.Len(), "steps", e.steps)
}

func (e *Engine) State() State   { return e.state }
func (e *Engine) Alive() bool    { return e.state == Running }
func (e *Engine) Config() Config { return e.cfg }

// Snapshot copies the state a renderer needs.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Snake:      e.snake.Body(),
		Obstacles:  e.items.Obstacles(),
		Score:      e.score,
		Alive:      e.state == Running,
		Shielded:   e.shielded,
		GrowCredit: e.growCredit,
		Delay:      e.delay,
		Direction:  e.input.Committed(),
		Cause:      e.cause,
		Steps:      e.steps,
		Session:    e.session,
	}
	s.Food = e.itemPtr(game.Food)
	s.Bonus = e.itemPtr(game.Bonus)
	s.Shield = e.itemPtr(game.Shield)
	return s
}

func (e *Engine) itemPtr(k game.Kind) *game.Point {
	p, ok := e.items.At(k)
	if !ok {
		return nil
	}
	return &p
}
