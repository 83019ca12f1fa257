package main

import (
	"context"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/brensch/snekgrid/game"
	"github.com/brensch/snekgrid/rules"
	"github.com/brensch/snekgrid/trace"
)

func smallRun(t *testing.T) runConfig {
	t.Helper()
	cfg := rules.DefaultConfig()
	cfg.Width, cfg.Height = 12, 12
	cfg.BonusPeriod, cfg.ShieldPeriod, cfg.ObstaclePeriod = 20, 30, 10
	return runConfig{game: cfg, games: 6, workers: 3, maxSteps: 300, wander: 0.2}
}

func TestPilot_AvoidsWallAndReversal(t *testing.T) {
	p := &pilot{rng: rand.New(rand.NewSource(1)), width: 5, height: 5, wander: 1}
	s := rules.Snapshot{
		Snake:     []game.Point{{X: 0, Y: 0}},
		Direction: game.Up,
		Alive:     true,
	}
	for i := 0; i < 50; i++ {
		if d := p.next(s); d != game.Right {
			t.Fatalf("move %d: got %v, only right is safe", i, d)
		}
	}
}

func TestPilot_AvoidsBodyButFollowsTail(t *testing.T) {
	p := &pilot{rng: rand.New(rand.NewSource(1)), width: 5, height: 5}
	// Head at (1,1) heading left with body below and tail to the left.
	s := rules.Snapshot{
		Snake:     []game.Point{{X: 0, Y: 1}, {X: 0, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}},
		Direction: game.Up,
	}
	food := game.Point{X: 0, Y: 0}
	s.Food = &food
	if d := p.next(s); d != game.Left && d != game.Up {
		t.Fatalf("got %v", d)
	}

	s.GrowCredit = 1
	s.Food = nil
	for i := 0; i < 20; i++ {
		if d := p.next(s); d == game.Left {
			t.Fatalf("moved onto a tail that stays")
		}
	}
}

func TestPilot_HeadsForFood(t *testing.T) {
	p := &pilot{rng: rand.New(rand.NewSource(1)), width: 9, height: 9}
	food := game.Point{X: 7, Y: 4}
	s := rules.Snapshot{Snake: []game.Point{{X: 4, Y: 4}}, Food: &food}
	if d := p.next(s); d != game.Right {
		t.Fatalf("got %v want right", d)
	}
}

func TestRun_WritesOneTracePerGame(t *testing.T) {
	rc := smallRun(t)
	rc.outDir = t.TempDir()
	var tot totals
	if err := run(context.Background(), rc, slog.New(slog.DiscardHandler), &tot); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := tot.games.Load(); got != int64(rc.games) {
		t.Fatalf("games=%d want=%d", got, rc.games)
	}

	files, err := filepath.Glob(filepath.Join(rc.outDir, "*.parquet"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(files) != rc.games {
		t.Fatalf("trace files=%d want=%d", len(files), rc.games)
	}
	if left, _ := os.ReadDir(filepath.Join(rc.outDir, "tmp")); len(left) != 0 {
		t.Fatalf("%d temp files left behind", len(left))
	}

	var steps int64
	for _, f := range files {
		rows, err := trace.ReadFile(f)
		if err != nil {
			t.Fatalf("ReadFile %s: %v", f, err)
		}
		last := rows[len(rows)-1]
		if int(last.Step) != len(rows)-1 {
			t.Fatalf("%s: last step %d with %d rows", f, last.Step, len(rows))
		}
		steps += int64(last.Step)
	}
	if steps != tot.steps.Load() {
		t.Fatalf("trace steps=%d totals=%d", steps, tot.steps.Load())
	}
}

func TestRun_SameSeedSameResults(t *testing.T) {
	rc := smallRun(t)
	rc.workers = 1
	var a, b totals
	if err := run(context.Background(), rc, slog.New(slog.DiscardHandler), &a); err != nil {
		t.Fatalf("run: %v", err)
	}
	rc.workers = 4
	if err := run(context.Background(), rc, slog.New(slog.DiscardHandler), &b); err != nil {
		t.Fatalf("run: %v", err)
	}
	if a.steps.Load() != b.steps.Load() || a.best.Load() != b.best.Load() {
		t.Fatalf("worker count changed results: steps %d/%d best %d/%d",
			a.steps.Load(), b.steps.Load(), a.best.Load(), b.best.Load())
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var tot totals
	if err := run(ctx, smallRun(t), slog.New(slog.DiscardHandler), &tot); err == nil {
		t.Fatalf("run ignored cancellation")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	rc := smallRun(t)
	rc.game.Width = 1
	var tot totals
	if err := run(context.Background(), rc, slog.New(slog.DiscardHandler), &tot); err == nil {
		t.Fatalf("invalid board accepted")
	}
}
