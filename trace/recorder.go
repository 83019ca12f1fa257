package trace

import (
	"github.com/google/uuid"

	"github.com/brensch/snekgrid/rules"
)

// Recorder turns engine snapshots into rows, one per resolved step.
// Snapshots taken between steps (idle ticks, repeated frames) are skipped.
type Recorder struct {
	GameID string
	Width  int
	Height int

	w        *Writer
	session  int
	lastStep int
}

// NewRecorder writes to w under a fresh game id.
func NewRecorder(w *Writer, cfg rules.Config) *Recorder {
	return &Recorder{
		GameID:   uuid.NewString(),
		Width:    cfg.Width,
		Height:   cfg.Height,
		w:        w,
		lastStep: -1,
	}
}

// Record writes s if it is the result of a step not seen before.
func (r *Recorder) Record(s rules.Snapshot) error {
	if s.Session != r.session {
		r.session = s.Session
		r.lastStep = -1
	}
	if s.Steps == r.lastStep {
		return nil
	}
	r.lastStep = s.Steps
	return r.w.Write(FromSnapshot(r.GameID, r.Width, r.Height, s))
}
