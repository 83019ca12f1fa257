// Package trace records resolved simulation steps as parquet rows.
//
// A trace is a diagnostic log for offline analysis and soak runs; nothing reads
// it back into an engine.
package trace

import (
	"github.com/brensch/snekgrid/game"
	"github.com/brensch/snekgrid/rules"
)

// Schema is stored in every file's key/value metadata.
const Schema = "snek_step_v1"

// StepRow is one (game, step) snapshot.
//
// Optional items use -1 coordinates when absent. Body coordinates are tail first.
type StepRow struct {
	GameID  string `parquet:"game_id,dict"`
	Session int32  `parquet:"session"`
	Step    int32  `parquet:"step"`
	Width   int32  `parquet:"width"`
	Height  int32  `parquet:"height"`

	Direction string  `parquet:"direction,dict"`
	Score     int32   `parquet:"score"`
	Alive     bool    `parquet:"alive"`
	Cause     string  `parquet:"cause,dict"`
	Shielded  bool    `parquet:"shielded"`
	Credit    int32   `parquet:"grow_credit"`
	Delay     float32 `parquet:"delay"`

	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`

	FoodX   int32 `parquet:"food_x"`
	FoodY   int32 `parquet:"food_y"`
	BonusX  int32 `parquet:"bonus_x"`
	BonusY  int32 `parquet:"bonus_y"`
	ShieldX int32 `parquet:"shield_x"`
	ShieldY int32 `parquet:"shield_y"`

	ObstacleX []int32 `parquet:"obstacle_x"`
	ObstacleY []int32 `parquet:"obstacle_y"`
}

// FromSnapshot flattens a snapshot into a row.
func FromSnapshot(gameID string, width, height int, s rules.Snapshot) StepRow {
	row := StepRow{
		GameID:    gameID,
		Session:   int32(s.Session),
		Step:      int32(s.Steps),
		Width:     int32(width),
		Height:    int32(height),
		Direction: s.Direction.String(),
		Score:     int32(s.Score),
		Alive:     s.Alive,
		Cause:     string(s.Cause),
		Shielded:  s.Shielded,
		Credit:    int32(s.GrowCredit),
		Delay:     float32(s.Delay),
	}
	row.BodyX, row.BodyY = split(s.Snake)
	row.ObstacleX, row.ObstacleY = split(s.Obstacles)
	row.FoodX, row.FoodY = coords(s.Food)
	row.BonusX, row.BonusY = coords(s.Bonus)
	row.ShieldX, row.ShieldY = coords(s.Shield)
	return row
}

// Head returns the last body cell.
func (r StepRow) Head() game.Point {
	n := len(r.BodyX) - 1
	return game.Point{X: int(r.BodyX[n]), Y: int(r.BodyY[n])}
}

func split(ps []game.Point) ([]int32, []int32) {
	xs := make([]int32, len(ps))
	ys := make([]int32, len(ps))
	for i, p := range ps {
		xs[i] = int32(p.X)
		ys[i] = int32(p.Y)
	}
	return xs, ys
}

func coords(p *game.Point) (int32, int32) {
	if p == nil {
		return -1, -1
	}
	return int32(p.X), int32(p.Y)
}
