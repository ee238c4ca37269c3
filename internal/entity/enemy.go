package entity

import (
	"fmt"
	"time"

	"chosenoffset.com/scavenger/internal/core/grid"
)

// Variant describes one enemy type.
type Variant struct {
	Name      string
	Damage    int           // food points taken from the player per attack
	MoveTime  time.Duration // pause after this enemy's turn
	SkipTurns int           // turns sat out before each acting turn
	Glyph     rune          // terminal glyph
}

// Enemy is an autonomous mover that attacks the player.
type Enemy struct {
	base
	variant Variant
	skipped int
}

// NewEnemy creates an enemy of the given variant. seq only needs to be
// unique within a level.
func NewEnemy(seq int, v Variant, pos grid.Position) *Enemy {
	return &Enemy{
		base:    base{id: fmt.Sprintf("enemy-%d", seq), kind: KindEnemy, pos: pos},
		variant: v,
	}
}

// Enemies expose nothing to other movers; the player cannot chop them.
func (e *Enemy) Capabilities() Capability      { return CapNone }
func (e *Enemy) Blocking() bool                { return true }
func (e *Enemy) Resolves() Capability          { return CapDamageableByEnemy }
func (e *Enemy) MoveTime() time.Duration       { return e.variant.MoveTime }
func (e *Enemy) AttackDamage() int             { return e.variant.Damage }
func (e *Enemy) Variant() Variant              { return e.variant }
func (e *Enemy) SetPosition(pos grid.Position) { e.pos = pos }

// SkipTurn advances the skip counter and reports whether this turn is sat out.
// With SkipTurns n the enemy acts once every n+1 turns, starting after n
// skipped turns.
func (e *Enemy) SkipTurn() bool {
	if e.skipped < e.variant.SkipTurns {
		e.skipped++
		return true
	}
	e.skipped = 0
	return false
}
