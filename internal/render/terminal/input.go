// Package terminal runs the game in a text terminal with tcell: key events
// feed a render.InputManager and each frame the board is drawn as glyphs.
package terminal

import (
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"chosenoffset.com/scavenger/internal/render"
)

// DefaultHold is how long a key counts as held after its last press or
// repeat. Terminals report presses only, never releases.
const DefaultHold = 150 * time.Millisecond

// Input implements render.InputManager from tcell key events. It is used
// from the game loop goroutine only.
type Input struct {
	hold time.Duration
	now  func() time.Time

	last    map[render.Key]time.Time
	pending map[render.Key]bool
	frame   map[render.Key]bool
}

// NewInput creates an input manager holding keys for hold.
func NewInput(hold time.Duration) *Input {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Input{
		hold:    hold,
		now:     time.Now,
		last:    make(map[render.Key]time.Time),
		pending: make(map[render.Key]bool),
		frame:   make(map[render.Key]bool),
	}
}

// HandleEvent records a key event and reports whether it mapped to a game key.
func (in *Input) HandleEvent(ev tcell.Event) bool {
	kev, ok := ev.(*tcell.EventKey)
	if !ok {
		return false
	}
	key, ok := mapKey(kev.Key(), kev.Rune())
	if !ok {
		return false
	}
	in.press(key)
	return true
}

func (in *Input) press(key render.Key) {
	in.last[key] = in.now()
	in.pending[key] = true
}

// Frame starts a new frame: keys pressed since the previous call become
// the just-pressed set.
func (in *Input) Frame() {
	in.frame, in.pending = in.pending, in.frame
	clear(in.pending)
}

// IsKeyPressed returns whether the key was pressed within the hold window.
func (in *Input) IsKeyPressed(key render.Key) bool {
	t, ok := in.last[key]
	return ok && in.now().Sub(t) < in.hold
}

// IsKeyJustPressed returns whether the key was pressed during the last frame.
func (in *Input) IsKeyJustPressed(key render.Key) bool {
	return in.frame[key]
}

func mapKey(k tcell.Key, r rune) (render.Key, bool) {
	switch k {
	case tcell.KeyUp:
		return render.KeyUp, true
	case tcell.KeyDown:
		return render.KeyDown, true
	case tcell.KeyLeft:
		return render.KeyLeft, true
	case tcell.KeyRight:
		return render.KeyRight, true
	case tcell.KeyEnter:
		return render.KeyEnter, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return render.KeyEscape, true
	case tcell.KeyRune:
		switch unicode.ToLower(r) {
		case 'w':
			return render.KeyW, true
		case 'a':
			return render.KeyA, true
		case 's':
			return render.KeyS, true
		case 'd':
			return render.KeyD, true
		case 'r':
			return render.KeyR, true
		case 'm':
			return render.KeyM, true
		case 'q':
			return render.KeyEscape, true
		}
	}
	return 0, false
}
