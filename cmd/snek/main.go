package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/snekgrid/logging"
	"github.com/brensch/snekgrid/rules"
	"github.com/brensch/snekgrid/trace"
)

func main() {
	cfg := rules.DefaultConfig()
	cfg.RegisterFlags(flag.CommandLine)
	logPath := flag.String("log", "", "Write logs to this file (the terminal belongs to the board)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error")
	logFormat := flag.String("log-format", "text", "Log format: text, json or pretty")
	traceDir := flag.String("trace-dir", "", "If set, record every step as parquet under this directory")
	flag.Parse()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var out io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open log file: %v", err)
		}
		defer f.Close()
		out = f
	}
	logger, err := logging.New(out, logging.Options{Format: *logFormat, Level: *logLevel})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	engine, err := rules.New(cfg, rules.WithLogger(logger))
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	var rec *trace.Recorder
	var tw *trace.Writer
	if *traceDir != "" {
		tw, err = trace.NewWriter(*traceDir, fmt.Sprintf("snek_%d", time.Now().UnixNano()))
		if err != nil {
			log.Fatalf("trace: %v", err)
		}
		rec = trace.NewRecorder(tw, cfg)
	}

	logger.Info("session start", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed, "trace", *traceDir != "")
	m := newModel(engine, logger, rec)
	m.record()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, runErr := p.Run()

	if tw != nil {
		path, err := tw.Finalize()
		if err != nil {
			logger.Error("trace finalize failed", "err", err)
		} else if path != "" {
			logger.Info("trace written", "path", path, "rows", tw.Rows())
			fmt.Fprintf(os.Stderr, "trace written to %s\n", path)
		}
	}
	if runErr != nil {
		logger.Error("program exited", "err", runErr)
		log.Fatal(runErr)
	}
	logger.Info("session end", "best", m.best, "steps", engine.Snapshot().Steps)
}
