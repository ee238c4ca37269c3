package terminal

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity/turn"
	"chosenoffset.com/scavenger/internal/game"
	"chosenoffset.com/scavenger/internal/render"
	"chosenoffset.com/scavenger/internal/simulation"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want render.Key
		ok   bool
	}{
		{tcell.KeyUp, 0, render.KeyUp, true},
		{tcell.KeyLeft, 0, render.KeyLeft, true},
		{tcell.KeyEnter, 0, render.KeyEnter, true},
		{tcell.KeyEscape, 0, render.KeyEscape, true},
		{tcell.KeyCtrlC, 0, render.KeyEscape, true},
		{tcell.KeyRune, 'w', render.KeyW, true},
		{tcell.KeyRune, 'D', render.KeyD, true},
		{tcell.KeyRune, 'r', render.KeyR, true},
		{tcell.KeyRune, 'q', render.KeyEscape, true},
		{tcell.KeyRune, 'x', 0, false},
		{tcell.KeyTab, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := mapKey(tt.key, tt.r)
		if ok != tt.ok || got != tt.want {
			t.Errorf("mapKey(%v, %q) = %v, %v; want %v, %v", tt.key, tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestInputHoldWindow(t *testing.T) {
	now := time.Unix(0, 0)
	in := NewInput(100 * time.Millisecond)
	in.now = func() time.Time { return now }

	in.press(render.KeyRight)
	if !in.IsKeyPressed(render.KeyRight) {
		t.Fatal("key not held right after press")
	}
	now = now.Add(99 * time.Millisecond)
	if !in.IsKeyPressed(render.KeyRight) {
		t.Error("key released inside the hold window")
	}
	now = now.Add(time.Millisecond)
	if in.IsKeyPressed(render.KeyRight) {
		t.Error("key still held after the hold window")
	}
	if in.IsKeyPressed(render.KeyLeft) {
		t.Error("never pressed key reported held")
	}
}

func TestInputJustPressedLastsOneFrame(t *testing.T) {
	in := NewInput(0)
	in.press(render.KeyR)
	if in.IsKeyJustPressed(render.KeyR) {
		t.Error("just pressed before the frame started")
	}
	in.Frame()
	if !in.IsKeyJustPressed(render.KeyR) {
		t.Error("press missing from its frame")
	}
	in.Frame()
	if in.IsKeyJustPressed(render.KeyR) {
		t.Error("press leaked into the next frame")
	}
}

func TestHandleEventIgnoresNonKeys(t *testing.T) {
	in := NewInput(0)
	if in.HandleEvent(tcell.NewEventResize(80, 24)) {
		t.Error("resize handled as a key")
	}
}

func newTestRunner(t *testing.T, tweak func(*simulation.Config)) (*Runner, tcell.SimulationScreen) {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Board.Seed = 3
	if tweak != nil {
		tweak(cfg)
	}
	s, err := game.NewSession(game.Options{Config: cfg})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)
	return NewRunner(screen, s), screen
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestViewDrawsDayCardThenBoard(t *testing.T) {
	r, screen := newTestRunner(t, nil)
	r.View.Draw(screen)
	if row := rowText(screen, 5, 20); !strings.HasPrefix(row, "Day 1") {
		t.Errorf("overlay row = %q, want Day 1 card", row)
	}

	if err := r.Game.Session.Tick(r.Game.Session.Config().Turn.LevelStartDelay, grid.DirNone); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	r.View.Draw(screen)

	cells := []struct {
		x, y int
		want rune
	}{
		{0, 0, glyphOuterWall},
		{9, 9, glyphOuterWall},
		{1, 1, glyphPlayer},
		{8, 8, glyphExit},
		{2, 1, glyphFloor}, // the edge row is never scattered
	}
	for _, c := range cells {
		if got, _, _, _ := screen.GetContent(c.x, c.y); got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if row := rowText(screen, 11, 20); !strings.HasPrefix(row, "Food: 100") {
		t.Errorf("HUD row = %q", row)
	}
}

func TestRunnerStepMovesOnKey(t *testing.T) {
	r, screen := newTestRunner(t, nil)
	if err := r.Game.Session.Tick(r.Game.Session.Config().Turn.LevelStartDelay, grid.DirNone); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	r.Input.press(render.KeyD)
	if err := r.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if got := r.Game.Session.Stage().Player.Position(); got != (grid.Position{X: 1, Y: 0}) {
		t.Fatalf("player at %v, want (1,0)", got)
	}
	if got, _, _, _ := screen.GetContent(2, 1); got != glyphPlayer {
		t.Errorf("cell (2,1) = %q, want player", got)
	}
	if r.Game.Session.Phase() != turn.PhaseEnemyTurn {
		t.Errorf("phase = %s, want enemy_turn", r.Game.Session.Phase())
	}
}

func TestRunnerStepQuit(t *testing.T) {
	r, _ := newTestRunner(t, nil)
	r.Input.press(render.KeyEscape)
	if err := r.Step(); err != render.ErrQuit {
		t.Errorf("Step() = %v, want ErrQuit", err)
	}
}

func TestWallGlyph(t *testing.T) {
	tests := []struct {
		remaining, durability int
		want                  rune
	}{
		{3, 3, '█'},
		{2, 3, '▓'},
		{1, 3, '▒'},
		{1, 4, '░'},
		{5, 0, '█'},
	}
	for _, tt := range tests {
		if got := wallGlyph(tt.remaining, tt.durability); got != tt.want {
			t.Errorf("wallGlyph(%d, %d) = %q, want %q", tt.remaining, tt.durability, got, tt.want)
		}
	}
}
