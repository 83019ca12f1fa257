package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	for _, format := range []string{"", "text", "json", "pretty", "JSON"} {
		var buf bytes.Buffer
		l, err := New(&buf, Options{Format: format})
		if err != nil {
			t.Fatalf("format %q: %v", format, err)
		}
		l.Info("step", "score", 3)
		if !strings.Contains(buf.String(), "score") {
			t.Fatalf("format %q: output %q missing attribute", format, buf.String())
		}
	}
	if _, err := New(&bytes.Buffer{}, Options{Format: "xml"}); err == nil {
		t.Fatalf("unknown format accepted")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q)=%v,%v want=%v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("bad level accepted")
	}
}

func TestPrettyJSONHandler_IndentsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l.With("game", "g1").WithGroup("snake").Debug("game over", "length", 4, "cause", "wall-collision")

	out := buf.String()
	if !strings.Contains(out, "\n  \"") {
		t.Fatalf("output not indented: %q", out)
	}
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not one JSON object: %v\n%s", err, out)
	}
	if rec["msg"] != "game over" || rec["game"] != "g1" {
		t.Fatalf("record=%v", rec)
	}
	snake, ok := rec["snake"].(map[string]any)
	if !ok || snake["length"] != float64(4) {
		t.Fatalf("group missing: %v", rec)
	}
}

func TestPrettyJSONHandler_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyJSONHandler(&buf, nil))
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}
}
