package game

import (
	"time"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity/turn"
	"chosenoffset.com/scavenger/internal/render"
)

// HUDHeight is the strip below the board reserved for the HUD.
const HUDHeight = 48

// Game drives a Session from the windowed engine loop.
type Game struct {
	ScreenWidth  int
	ScreenHeight int
	TileSize     int
	TPS          int

	Session  *Session
	Renderer render.Renderer
	InputMgr render.InputManager

	floor render.Image
}

// NewGame sizes the logical screen to the board plus the HUD strip.
func NewGame(s *Session, r render.Renderer, input render.InputManager) *Game {
	disp := s.Config().Display
	tile := disp.TileSize
	if tile <= 0 {
		tile = 32
	}
	tps := disp.TPS
	if tps <= 0 {
		tps = 60
	}
	b := s.Bounds()
	return &Game{
		ScreenWidth:  b.Width() * tile,
		ScreenHeight: b.Height()*tile + HUDHeight,
		TileSize:     tile,
		TPS:          tps,
		Session:      s,
		Renderer:     r,
		InputMgr:     input,
	}
}

// Update handles game logic updates.
func (g *Game) Update() error {
	if g.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return render.ErrQuit
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyM) {
		g.Session.ToggleMute()
	}
	if g.Session.Phase() == turn.PhaseGameOver &&
		(g.InputMgr.IsKeyJustPressed(render.KeyR) || g.InputMgr.IsKeyJustPressed(render.KeyEnter)) {
		g.Session.Restart()
	}

	dt := time.Second / time.Duration(g.TPS)
	return g.Session.Tick(dt, Intent(g.InputMgr))
}

// Layout returns the game's logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenWidth, g.ScreenHeight
}

// Intent reads the held movement keys. Horizontal wins over vertical and
// opposite keys cancel out.
func Intent(in render.InputManager) grid.Direction {
	held := func(keys ...render.Key) bool {
		for _, k := range keys {
			if in.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	dx, dy := 0, 0
	if held(render.KeyRight, render.KeyD) {
		dx++
	}
	if held(render.KeyLeft, render.KeyA) {
		dx--
	}
	if held(render.KeyDown, render.KeyS) {
		dy++
	}
	if held(render.KeyUp, render.KeyW) {
		dy--
	}
	switch {
	case dx > 0:
		return grid.DirEast
	case dx < 0:
		return grid.DirWest
	case dy > 0:
		return grid.DirSouth
	case dy < 0:
		return grid.DirNorth
	}
	return grid.DirNone
}
