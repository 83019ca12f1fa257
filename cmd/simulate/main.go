package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brensch/snekgrid/logging"
	"github.com/brensch/snekgrid/rules"
	"github.com/brensch/snekgrid/trace"
)

type runConfig struct {
	game     rules.Config
	games    int
	workers  int
	maxSteps int
	wander   float64
	outDir   string
}

type gameResult struct {
	Index  int
	GameID string
	Steps  int
	Score  int
	Length int
	Cause  rules.Cause
	Path   string
}

type totals struct {
	games  atomic.Int64
	steps  atomic.Int64
	deaths atomic.Int64
	best   atomic.Int64
}

func main() {
	rc := runConfig{game: rules.DefaultConfig()}
	rc.game.RegisterFlags(flag.CommandLine)
	flag.IntVar(&rc.games, "games", 100, "Number of games to simulate")
	flag.IntVar(&rc.workers, "workers", runtime.NumCPU(), "Games simulated concurrently")
	flag.IntVar(&rc.maxSteps, "max-steps", 5000, "Stop a game after this many steps if it is still running")
	flag.Float64Var(&rc.wander, "wander", 0.1, "Probability the autopilot takes a random safe move")
	flag.StringVar(&rc.outDir, "out-dir", "", "If set, write one parquet trace per game under this directory")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "Log format: text, json or pretty")
	flag.Parse()

	logger, err := logging.New(os.Stderr, logging.Options{Format: *logFormat, Level: *logLevel})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	var t totals
	if err := run(ctx, rc, logger, &t); err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}
	logger.Info("simulation done",
		"games", t.games.Load(),
		"steps", t.steps.Load(),
		"deaths", t.deaths.Load(),
		"best_score", t.best.Load(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}

// run plays rc.games games on at most rc.workers goroutines. Each engine is
// created and driven by a single goroutine. The first error cancels the rest.
func run(ctx context.Context, rc runConfig, logger *slog.Logger, t *totals) error {
	if err := rc.game.Validate(); err != nil {
		return err
	}
	if rc.games < 0 {
		return fmt.Errorf("games %d is negative", rc.games)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(rc.workers, 1))

	for i := 0; i < rc.games; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := playGame(gctx, rc, i, logger)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			t.games.Add(1)
			t.steps.Add(int64(res.Steps))
			if res.Cause != rules.CauseNone {
				t.deaths.Add(1)
			}
			for {
				cur := t.best.Load()
				if int64(res.Score) <= cur || t.best.CompareAndSwap(cur, int64(res.Score)) {
					break
				}
			}
			logger.Info("game finished",
				"game", res.Index,
				"id", res.GameID,
				"steps", res.Steps,
				"score", res.Score,
				"length", res.Length,
				"cause", res.Cause,
				"trace", res.Path,
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// playGame runs game i with seed rc.game.Seed+i until it ends, hits
// rc.maxSteps or ctx is cancelled.
func playGame(ctx context.Context, rc runConfig, i int, logger *slog.Logger) (gameResult, error) {
	cfg := rc.game
	cfg.Seed += int64(i)
	e, err := rules.New(cfg, rules.WithLogger(logger.With("game", i)))
	if err != nil {
		return gameResult{}, err
	}

	var w *trace.Writer
	var rec *trace.Recorder
	if rc.outDir != "" {
		w, err = trace.NewWriter(rc.outDir, fmt.Sprintf("game_%06d", i))
		if err != nil {
			return gameResult{}, err
		}
		rec = trace.NewRecorder(w, cfg)
	}
	abort := func(err error) (gameResult, error) {
		if w != nil {
			_, _ = w.Finalize()
		}
		return gameResult{}, err
	}

	p := &pilot{rng: rand.New(rand.NewSource(cfg.Seed ^ 0x5eed)), width: cfg.Width, height: cfg.Height, wander: rc.wander}
	s := e.Snapshot()
	for e.Alive() && (rc.maxSteps <= 0 || s.Steps < rc.maxSteps) {
		if err := ctx.Err(); err != nil {
			return abort(err)
		}
		if rec != nil {
			if err := rec.Record(s); err != nil {
				return abort(err)
			}
		}
		e.Advance(p.next(s))
		s = e.Snapshot()
	}

	res := gameResult{
		Index:  i,
		Steps:  s.Steps,
		Score:  s.Score,
		Length: len(s.Snake),
		Cause:  s.Cause,
	}
	if rec != nil {
		res.GameID = rec.GameID
		if err := rec.Record(s); err != nil {
			return abort(err)
		}
		if res.Path, err = w.Finalize(); err != nil {
			return gameResult{}, err
		}
	}
	return res, nil
}
