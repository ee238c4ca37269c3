package game

import (
	"image/color"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/render"
	"chosenoffset.com/scavenger/internal/ui/hud"
)

var (
	colorBackground = color.RGBA{20, 12, 28, 255}
	colorFloorA     = color.RGBA{68, 48, 52, 255}
	colorFloorB     = color.RGBA{62, 44, 48, 255}
	colorOuterWall  = color.RGBA{36, 28, 30, 255}
	colorWall       = color.RGBA{133, 94, 66, 255}
	colorWallEdge   = color.RGBA{90, 60, 40, 255}
	colorFood       = color.RGBA{120, 200, 80, 255}
	colorSoda       = color.RGBA{80, 160, 230, 255}
	colorExit       = color.RGBA{10, 8, 12, 255}
	colorExitEdge   = color.RGBA{230, 200, 80, 255}
	colorPlayer     = color.RGBA{200, 200, 50, 255}
	colorPlayerCore = color.RGBA{255, 255, 100, 255}
	colorText       = color.RGBA{255, 255, 255, 255}
	colorLoss       = color.RGBA{255, 90, 90, 255}
	colorPanel      = color.RGBA{0, 0, 0, 200}
	colorBarBack    = color.RGBA{60, 60, 60, 255}
	colorOverlay    = color.RGBA{0, 0, 0, 255}
)

// Draw renders the game to the screen.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(colorBackground)

	// The floor never changes; render it once and blit it every frame.
	b := g.Session.Bounds()
	w, h := b.Width()*g.TileSize, b.Height()*g.TileSize
	if g.floor == nil || needsResize(g.floor, w, h) {
		if g.floor != nil {
			g.floor.Dispose()
		}
		g.floor = g.Renderer.NewImage(w, h)
		g.drawFloor(g.floor)
	}
	screen.DrawImage(g.floor, 0, 0)
	if stage := g.Session.Stage(); stage != nil {
		for _, o := range stage.Board.Occupants() {
			g.drawOccupant(screen, o)
		}
	}
	g.drawPopups(screen)
	g.drawHUD(screen)
	g.drawOverlay(screen)
}

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

// cellOrigin returns the top-left pixel of a cell.
func (g *Game) cellOrigin(p grid.Position) (float32, float32) {
	b := g.Session.Bounds()
	return float32((p.X - b.Min.X) * g.TileSize), float32((p.Y - b.Min.Y) * g.TileSize)
}

func (g *Game) drawFloor(screen render.Image) {
	b := g.Session.Bounds()
	ts := float32(g.TileSize)
	for y := b.Min.Y; y <= b.Max.Y; y++ {
		for x := b.Min.X; x <= b.Max.X; x++ {
			clr := colorFloorA
			if (x+y)%2 != 0 {
				clr = colorFloorB
			}
			px, py := g.cellOrigin(grid.Position{X: x, Y: y})
			g.Renderer.FillRect(screen, px, py, ts, ts, clr)
		}
	}
}

func (g *Game) drawOccupant(screen render.Image, o entity.Occupant) {
	ts := float32(g.TileSize)
	px, py := g.cellOrigin(o.Position())
	cx, cy := px+ts/2, py+ts/2

	switch v := o.(type) {
	case *entity.Wall:
		if v.Kind() == entity.KindOuterWall {
			g.Renderer.FillRect(screen, px, py, ts, ts, colorOuterWall)
			return
		}
		g.Renderer.FillRect(screen, px+1, py+1, ts-2, ts-2, wallShade(v.Remaining(), g.Session.Config().Board.WallDurability))
		g.Renderer.StrokeRect(screen, px+1, py+1, ts-2, ts-2, 2, colorWallEdge)
	case *entity.Pickup:
		clr := colorFood
		if v.Kind() == entity.KindSoda {
			clr = colorSoda
		}
		g.Renderer.FillCircle(screen, cx, cy, ts/5, clr)
	case *entity.Exit:
		g.Renderer.FillRect(screen, px+ts/6, py+ts/6, ts*2/3, ts*2/3, colorExit)
		g.Renderer.StrokeRect(screen, px+ts/6, py+ts/6, ts*2/3, ts*2/3, 2, colorExitEdge)
	case *entity.Player:
		g.Renderer.FillCircle(screen, cx, cy, ts*7/16, colorPlayer)
		g.Renderer.FillCircle(screen, cx, cy, ts*5/16, colorPlayerCore)
		// Eye toward the facing side.
		ex := cx + ts/6
		if v.Facing == grid.DirWest {
			ex = cx - ts/6
		}
		g.Renderer.FillCircle(screen, ex, cy-ts/10, ts/16, colorBackground)
	case *entity.Enemy:
		variant := v.Variant()
		g.Renderer.FillRect(screen, px+ts/8, py+ts/8, ts*3/4, ts*3/4, g.Session.EnemyColor(variant.Name))
		glyph := string(variant.Glyph)
		w, h := g.Renderer.MeasureText(glyph, 1)
		g.Renderer.DrawText(screen, glyph, int(cx)-w/2, int(cy)-h/2, colorText, 1)
	}
}

// wallShade darkens walls as they lose durability.
func wallShade(remaining, durability int) color.RGBA {
	c := colorWall
	for i := remaining; i < durability && i >= 0; i++ {
		c.R = c.R * 4 / 5
		c.G = c.G * 4 / 5
		c.B = c.B * 4 / 5
	}
	return c
}

func (g *Game) drawPopups(screen render.Image) {
	for _, p := range g.Session.HUD().Popups() {
		px, py := g.cellOrigin(p.Pos)
		rise := float32(p.Progress()) * float32(g.TileSize) / 2
		alpha := uint8(255 * (1 - p.Progress()))
		clr := color.RGBA{colorFood.R, colorFood.G, colorFood.B, alpha}
		if !p.Gain {
			clr = color.RGBA{colorLoss.R, colorLoss.G, colorLoss.B, alpha}
		}
		g.Renderer.DrawText(screen, p.Text, int(px)+2, int(py-rise), clr, 1)
	}
}

func (g *Game) drawHUD(screen render.Image) {
	h := g.Session.HUD()
	top := float32(g.ScreenHeight - HUDHeight)
	width := float32(g.ScreenWidth)

	// Panel background
	g.Renderer.FillRect(screen, 0, top, width, HUDHeight, colorPanel)

	// Food bar
	barX, barY := float32(8), top+6
	barW, barH := width-16, float32(8)
	g.Renderer.FillRect(screen, barX, barY, barW, barH, colorBarBack)
	g.Renderer.FillRect(screen, barX, barY, barW*float32(h.FoodRatio()), barH, foodColor(h.FoodLevel()))

	g.Renderer.DrawText(screen, h.FoodText(), 8, int(top)+18, colorText, 1)
	day := h.DayText()
	dw, _ := g.Renderer.MeasureText(day, 1)
	g.Renderer.DrawText(screen, day, g.ScreenWidth-dw-8, int(top)+18, colorText, 1)
	if best := h.BestText(); best != "" {
		g.Renderer.DrawText(screen, best, 8, int(top)+32, colorText, 1)
	}
	if g.Session.Muted() {
		mw, _ := g.Renderer.MeasureText("muted", 1)
		g.Renderer.DrawText(screen, "muted", g.ScreenWidth-mw-8, int(top)+32, colorText, 1)
	}
}

func foodColor(level hud.FoodLevel) color.RGBA {
	switch level {
	case hud.FoodGood:
		return color.RGBA{50, 200, 50, 255}
	case hud.FoodLow:
		return color.RGBA{200, 200, 50, 255}
	default:
		return color.RGBA{200, 50, 50, 255}
	}
}

func (g *Game) drawOverlay(screen render.Image) {
	o := g.Session.HUD().Overlay()
	if !o.Visible {
		return
	}
	g.Renderer.FillRect(screen, 0, 0, float32(g.ScreenWidth), float32(g.ScreenHeight), colorOverlay)

	tw, th := g.Renderer.MeasureText(o.Title, 2)
	y := g.ScreenHeight/2 - th
	g.Renderer.DrawText(screen, o.Title, (g.ScreenWidth-tw)/2, y, colorText, 2)
	if o.Subtitle != "" {
		sw, _ := g.Renderer.MeasureText(o.Subtitle, 1)
		g.Renderer.DrawText(screen, o.Subtitle, (g.ScreenWidth-sw)/2, y+th+12, colorText, 1)
	}
}
