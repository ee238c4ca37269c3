package terminal

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/scavenger/internal/game"
	"chosenoffset.com/scavenger/internal/render"
)

// Runner drives a game from a tcell screen.
type Runner struct {
	Screen tcell.Screen
	Game   *game.Game
	Input  *Input
	View   *View
}

// NewRunner wires a session to screen. The screen must already be initialized.
func NewRunner(screen tcell.Screen, s *game.Session) *Runner {
	in := NewInput(DefaultHold)
	return &Runner{
		Screen: screen,
		Game:   game.NewGame(s, nil, in),
		Input:  in,
		View:   &View{Session: s},
	}
}

// Run polls key events and ticks the game at its TPS until the player
// quits, ctx is cancelled or the game fails.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(r.Game.TPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := r.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	r.View.Draw(r.Screen)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				r.Screen.Sync()
				continue
			}
			r.Input.HandleEvent(ev)
		case <-ticker.C:
			if err := r.Step(); err != nil {
				if errors.Is(err, render.ErrQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// Step runs one frame: input, update, draw.
func (r *Runner) Step() error {
	r.Input.Frame()
	if err := r.Game.Update(); err != nil {
		return err
	}
	r.View.Draw(r.Screen)
	return nil
}
