package terminal

import (
	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/game"
	"chosenoffset.com/scavenger/internal/ui/hud"
)

// Glyphs
const (
	glyphFloor     = '.'
	glyphOuterWall = '#'
	glyphFood      = 'f'
	glyphSoda      = 's'
	glyphExit      = '>'
	glyphPlayer    = '@'
)

// Wall glyphs from fresh to nearly down.
var wallGlyphs = []rune{'█', '▓', '▒', '░'}

var (
	styleBase      = tcell.StyleDefault
	styleFloor     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOuterWall = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
	styleWall      = tcell.StyleDefault.Foreground(tcell.NewRGBColor(133, 94, 66))
	styleFood      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSoda      = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleExit      = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleGain      = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleLoss      = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTitle     = tcell.StyleDefault.Bold(true)
)

// View draws a session onto a tcell screen. The board sits at the top-left
// with the HUD lines under it.
type View struct {
	Session *game.Session
}

// Draw renders the current frame and shows it.
func (v *View) Draw(screen tcell.Screen) {
	screen.Clear()
	h := v.Session.HUD()
	b := v.Session.Bounds()

	if o := h.Overlay(); o.Visible {
		v.drawOverlay(screen, o, b)
	} else {
		v.drawBoard(screen, b)
		v.drawPopups(screen, h, b)
	}
	v.drawHUD(screen, h, b)
	screen.Show()
}

func (v *View) cell(p grid.Position, b grid.Bounds) (int, int) {
	return p.X - b.Min.X, p.Y - b.Min.Y
}

func (v *View) drawBoard(screen tcell.Screen, b grid.Bounds) {
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			sx, sy := v.cell(grid.Position{X: x, Y: y}, b)
			screen.SetContent(sx, sy, glyphFloor, nil, styleFloor)
		}
	}
	stage := v.Session.Stage()
	if stage == nil {
		return
	}
	// Later occupants in a cell draw over earlier ones.
	for _, o := range stage.Board.Occupants() {
		glyph, style := v.glyph(o)
		sx, sy := v.cell(o.Position(), b)
		screen.SetContent(sx, sy, glyph, nil, style)
	}
}

func (v *View) glyph(o entity.Occupant) (rune, tcell.Style) {
	switch t := o.(type) {
	case *entity.Wall:
		if t.Kind() == entity.KindOuterWall {
			return glyphOuterWall, styleOuterWall
		}
		return wallGlyph(t.Remaining(), v.Session.Config().Board.WallDurability), styleWall
	case *entity.Pickup:
		if t.Kind() == entity.KindSoda {
			return glyphSoda, styleSoda
		}
		return glyphFood, styleFood
	case *entity.Exit:
		return glyphExit, styleExit
	case *entity.Player:
		return glyphPlayer, stylePlayer
	case *entity.Enemy:
		variant := t.Variant()
		c := v.Session.EnemyColor(variant.Name)
		glyph := variant.Glyph
		if glyph == 0 {
			glyph = 'E'
		}
		return glyph, tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))).Bold(true)
	}
	return '?', styleBase
}

// wallGlyph picks a lighter block the more damage a wall has taken.
func wallGlyph(remaining, durability int) rune {
	if durability <= 0 || remaining >= durability {
		return wallGlyphs[0]
	}
	i := (durability - remaining) * len(wallGlyphs) / durability
	if i >= len(wallGlyphs) {
		i = len(wallGlyphs) - 1
	}
	return wallGlyphs[i]
}

func (v *View) drawPopups(screen tcell.Screen, h *hud.HUD, b grid.Bounds) {
	for _, p := range h.Popups() {
		style := styleGain
		if !p.Gain {
			style = styleLoss
		}
		sx, sy := v.cell(p.Pos, b)
		putString(screen, sx+1, sy, p.Text, style)
	}
}

func (v *View) drawHUD(screen tcell.Screen, h *hud.HUD, b grid.Bounds) {
	row := b.Height() + 1
	foodStyle := styleBase
	switch h.FoodLevel() {
	case hud.FoodLow:
		foodStyle = styleBase.Foreground(tcell.ColorYellow)
	case hud.FoodCritical:
		foodStyle = styleLoss
	}
	putString(screen, 0, row, h.FoodText(), foodStyle)
	day := h.DayText()
	putString(screen, b.Width()*2-len(day), row, day, styleBase)
	if best := h.BestText(); best != "" {
		putString(screen, 0, row+1, best, styleBase)
	}
	if v.Session.Muted() {
		putString(screen, b.Width()*2-len("muted"), row+1, "muted", styleFloor)
	}
}

func (v *View) drawOverlay(screen tcell.Screen, o hud.Overlay, b grid.Bounds) {
	mid := b.Height() / 2
	putString(screen, 0, mid, o.Title, styleTitle)
	if o.Subtitle != "" {
		putString(screen, 0, mid+2, o.Subtitle, styleBase)
	}
}

func putString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	if x < 0 {
		x = 0
	}
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
