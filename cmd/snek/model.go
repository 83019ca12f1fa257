package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snekgrid/game"
	"github.com/brensch/snekgrid/rules"
	"github.com/brensch/snekgrid/trace"
)

// TickMsg carries the wall-clock time of a frame.
type TickMsg time.Time

func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type styles struct {
	board    lipgloss.Style
	head     lipgloss.Style
	body     lipgloss.Style
	shielded lipgloss.Style
	food     lipgloss.Style
	bonus    lipgloss.Style
	shield   lipgloss.Style
	obstacle lipgloss.Style
	strip    lipgloss.Style
	over     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		board:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")),
		head:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		body:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		shielded: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		food:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		bonus:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		shield:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		obstacle: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		strip:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")).PaddingLeft(1),
		over:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true).PaddingLeft(1),
	}
}

type model struct {
	engine *rules.Engine
	cfg    rules.Config
	log    *slog.Logger
	rec    *trace.Recorder
	styles styles

	last   time.Time
	paused bool
	best   int
	err    error
}

func newModel(e *rules.Engine, log *slog.Logger, rec *trace.Recorder) *model {
	return &model{
		engine: e,
		cfg:    e.Config(),
		log:    log,
		rec:    rec,
		styles: defaultStyles(),
	}
}

func (m *model) Init() tea.Cmd {
	return tickCmd(m.cfg.TickInterval)
}

var keyDirections = map[string]game.Direction{
	"up": game.Up, "w": game.Up, "k": game.Up,
	"down": game.Down, "s": game.Down, "j": game.Down,
	"left": game.Left, "a": game.Left, "h": game.Left,
	"right": game.Right, "d": game.Right, "l": game.Right,
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if d, ok := keyDirections[key]; ok {
			// Each key goes to the controller as it arrives, so a reversal
			// pressed after a valid turn cannot replace it.
			m.engine.Turn(d)
			return m, nil
		}
		switch key {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
			m.log.Debug("pause toggled", "paused", m.paused)
		case "r":
			if !m.engine.Alive() {
				m.engine.Reset()
				m.record()
			}
		}
	case TickMsg:
		now := time.Time(msg)
		elapsed := time.Duration(0)
		if !m.last.IsZero() {
			elapsed = now.Sub(m.last)
		}
		m.last = now
		if !m.paused {
			if n := m.engine.Step(game.None, elapsed); n > 0 {
				m.record()
			}
		}
		if s := m.engine.Snapshot(); s.Score > m.best {
			m.best = s.Score
		}
		return m, tickCmd(m.cfg.TickInterval)
	}
	return m, nil
}

func (m *model) record() {
	if m.rec == nil || m.err != nil {
		return
	}
	if err := m.rec.Record(m.engine.Snapshot()); err != nil {
		m.err = err
		m.log.Error("trace write failed", "err", err)
	}
}

func (m *model) View() string {
	s := m.engine.Snapshot()
	st := m.styles

	cells := make([][]string, m.cfg.Height)
	for y := range cells {
		cells[y] = make([]string, m.cfg.Width)
		for x := range cells[y] {
			cells[y][x] = " "
		}
	}
	put := func(p *game.Point, glyph string) {
		if p != nil && p.X >= 0 && p.X < m.cfg.Width && p.Y >= 0 && p.Y < m.cfg.Height {
			cells[p.Y][p.X] = glyph
		}
	}
	for i := range s.Obstacles {
		put(&s.Obstacles[i], st.obstacle.Render("#"))
	}
	put(s.Food, st.food.Render("*"))
	put(s.Bonus, st.bonus.Render("$"))
	put(s.Shield, st.shield.Render("+"))

	bodyStyle := st.body
	if s.Shielded {
		bodyStyle = st.shielded
	}
	for i := range s.Snake {
		glyph := bodyStyle.Render("o")
		if i == len(s.Snake)-1 {
			glyph = st.head.Render("@")
		}
		put(&s.Snake[i], glyph)
	}

	rows := make([]string, len(cells))
	for y, row := range cells {
		rows[y] = strings.Join(row, "")
	}
	board := st.board.Render(strings.Join(rows, "\n"))

	shield := "-"
	if s.Shielded {
		shield = "on"
	}
	strip := st.strip.Render(fmt.Sprintf("score %d   best %d   length %d   shield %s   speed %.2f",
		s.Score, m.best, len(s.Snake), shield, s.Delay))

	var footer string
	switch {
	case !s.Alive:
		footer = st.over.Render(fmt.Sprintf("game over (%s): r to restart, q to quit", s.Cause))
	case m.paused:
		footer = st.strip.Render("paused: p to resume")
	case s.Direction == game.None:
		footer = st.strip.Render("arrows / wasd / hjkl to move")
	}
	return lipgloss.JoinVertical(lipgloss.Left, board, strip, footer)
}
