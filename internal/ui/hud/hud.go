// Package hud holds what the heads-up display shows: the food line and bar,
// the day banner, the best score and floating gain popups. It is fed by
// game callbacks and read by both front-ends; it draws nothing itself.
package hud

import (
	"fmt"
	"time"

	"chosenoffset.com/scavenger/internal/core/gamestate"
	"chosenoffset.com/scavenger/internal/core/grid"
)

// DefaultPopupTTL is how long a gain popup stays up.
const DefaultPopupTTL = 600 * time.Millisecond

// FoodLevel buckets the food ratio for bar coloring.
type FoodLevel int

const (
	FoodGood     FoodLevel = iota // above 60% of the starting food
	FoodLow                       // above 30%
	FoodCritical                  // 30% or less
)

// Overlay is the full-screen card shown between levels and at game over.
type Overlay struct {
	Visible  bool
	Title    string
	Subtitle string
}

// Popup is a floating gain or loss over a cell.
type Popup struct {
	Text string
	Pos  grid.Position
	Age  time.Duration
	TTL  time.Duration
	Gain bool
}

// Progress returns how far the popup is through its life, 0 to 1.
func (p Popup) Progress() float64 {
	if p.TTL <= 0 {
		return 1
	}
	f := float64(p.Age) / float64(p.TTL)
	if f > 1 {
		f = 1
	}
	return f
}

// HUD manages the heads-up display state
type HUD struct {
	startingFood int
	food         int
	delta        int
	day          int
	best         gamestate.Record
	setup        bool
	gameOver     bool

	popups   []Popup
	popupTTL time.Duration
}

// New creates a HUD for a game starting with startingFood.
func New(startingFood int) *HUD {
	return &HUD{
		startingFood: startingFood,
		food:         startingFood,
		day:          1,
		setup:        true,
		popupTTL:     DefaultPopupTTL,
	}
}

// FoodChanged updates the food line. Deltas the controller does not notify
// clear the previous one.
func (h *HUD) FoodChanged(c gamestate.FoodChange) {
	h.food = c.Food
	if c.Notify {
		h.delta = c.Delta
	} else {
		h.delta = 0
	}
}

// LevelStarted shows the day card.
func (h *HUD) LevelStarted(day int) {
	h.day = day
	h.setup = true
	h.gameOver = false
	h.popups = h.popups[:0]
}

// PlayStarted hides the day card.
func (h *HUD) PlayStarted() {
	h.setup = false
}

// GameOver shows the starvation card.
func (h *HUD) GameOver(day int) {
	h.day = day
	h.gameOver = true
	h.setup = false
}

// BestScore updates the best score line.
func (h *HUD) BestScore(r gamestate.Record) {
	h.best = r
}

// Gain floats delta over pos.
func (h *HUD) Gain(pos grid.Position, delta int) {
	if delta == 0 {
		return
	}
	h.popups = append(h.popups, Popup{
		Text: signed(delta),
		Pos:  pos,
		TTL:  h.popupTTL,
		Gain: delta > 0,
	})
}

// Update ages popups by dt and drops expired ones.
func (h *HUD) Update(dt time.Duration) {
	kept := h.popups[:0]
	for _, p := range h.popups {
		p.Age += dt
		if p.Age < p.TTL {
			kept = append(kept, p)
		}
	}
	h.popups = kept
}

// Food returns the displayed food points.
func (h *HUD) Food() int { return h.food }

// Day returns the displayed day.
func (h *HUD) Day() int { return h.day }

// FoodText returns "Food: N", prefixed by the last notified delta.
func (h *HUD) FoodText() string {
	if h.delta != 0 {
		return fmt.Sprintf("%s Food: %d", signed(h.delta), h.food)
	}
	return fmt.Sprintf("Food: %d", h.food)
}

// FoodRatio returns food over starting food, clamped to [0, 1].
func (h *HUD) FoodRatio() float64 {
	if h.startingFood <= 0 {
		return 0
	}
	r := float64(h.food) / float64(h.startingFood)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// FoodLevel returns the bar color bucket.
func (h *HUD) FoodLevel() FoodLevel {
	switch r := h.FoodRatio(); {
	case r > 0.6:
		return FoodGood
	case r > 0.3:
		return FoodLow
	default:
		return FoodCritical
	}
}

// DayText returns the corner day label.
func (h *HUD) DayText() string {
	return fmt.Sprintf("Day %d", h.day)
}

// BestText returns the best score line, empty before any game is recorded.
func (h *HUD) BestText() string {
	if h.best.Score <= 0 {
		return ""
	}
	if h.best.PlayerName == "" {
		return fmt.Sprintf("Best: %d days", h.best.Score)
	}
	return fmt.Sprintf("Best: %d days (%s)", h.best.Score, h.best.PlayerName)
}

// Overlay returns the current full-screen card.
func (h *HUD) Overlay() Overlay {
	switch {
	case h.gameOver:
		return Overlay{
			Visible:  true,
			Title:    fmt.Sprintf("After %d days, you starved.", h.day),
			Subtitle: "Press R to play again",
		}
	case h.setup:
		return Overlay{Visible: true, Title: fmt.Sprintf("Day %d", h.day)}
	}
	return Overlay{}
}

// Popups returns the live popups, oldest first.
func (h *HUD) Popups() []Popup {
	out := make([]Popup, len(h.popups))
	copy(out, h.popups)
	return out
}

func signed(d int) string {
	if d > 0 {
		return fmt.Sprintf("+%d", d)
	}
	return fmt.Sprintf("%d", d)
}
