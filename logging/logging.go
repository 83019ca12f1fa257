// Package logging builds the slog loggers used by the snekgrid binaries.
package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Options selects the output format and minimum level.
// Format is one of "text", "json" or "pretty"; Level is a slog level name.
type Options struct {
	Format    string
	Level     string
	AddSource bool
}

// New returns a logger writing to w.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	ho := &slog.HandlerOptions{Level: level, AddSource: opts.AddSource}

	var h slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		h = slog.NewTextHandler(w, ho)
	case "json":
		h = slog.NewJSONHandler(w, ho)
	case "pretty":
		h = NewPrettyJSONHandler(w, ho)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	return slog.New(h), nil
}

// ParseLevel maps "debug", "info", "warn" or "error" (any case) to a slog level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse log level %q: %w", s, err)
	}
	return l, nil
}

// PrettyJSONHandler prints each record as an indented JSON object.
// It renders through a slog.JSONHandler and reindents the result, so attribute
// handling matches the stock JSON output exactly.
type PrettyJSONHandler struct {
	out   io.Writer
	mu    *sync.Mutex
	buf   *bytes.Buffer
	inner slog.Handler
}

func NewPrettyJSONHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyJSONHandler {
	buf := &bytes.Buffer{}
	return &PrettyJSONHandler{
		out:   w,
		mu:    &sync.Mutex{},
		buf:   buf,
		inner: slog.NewJSONHandler(buf, opts),
	}
}

func (h *PrettyJSONHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *PrettyJSONHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, bytes.TrimRight(h.buf.Bytes(), "\n"), "", "  "); err != nil {
		// Fall back to the compact line rather than dropping the record.
		_, werr := h.out.Write(h.buf.Bytes())
		return werr
	}
	pretty.WriteByte('\n')
	_, err := h.out.Write(pretty.Bytes())
	return err
}

// Derived handlers share the buffer and lock, so they serialize with the parent.
func (h *PrettyJSONHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	return &clone
}

func (h *PrettyJSONHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	return &clone
}
