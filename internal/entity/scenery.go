package entity

import (
	"fmt"

	"chosenoffset.com/scavenger/internal/core/grid"
)

// Wall is a blocking occupant. Inner walls are chopped down by the player;
// outer walls expose no capability and cannot be damaged.
type Wall struct {
	base
	durability int
	damage     int
}

// NewWall creates a destructible wall that falls once accumulated damage
// reaches durability.
func NewWall(seq int, pos grid.Position, durability int) *Wall {
	if durability < 1 {
		durability = 1
	}
	return &Wall{
		base:       base{id: fmt.Sprintf("wall-%d", seq), kind: KindWall, pos: pos},
		durability: durability,
	}
}

// NewOuterWall creates an indestructible border wall.
func NewOuterWall(pos grid.Position) *Wall {
	return &Wall{base: base{id: fmt.Sprintf("outer-%d-%d", pos.X, pos.Y), kind: KindOuterWall, pos: pos}}
}

func (w *Wall) Blocking() bool { return true }

func (w *Wall) Capabilities() Capability {
	if w.kind == KindOuterWall {
		return CapNone
	}
	return CapDamageableByPlayer
}

// Remaining returns the damage the wall can still take.
func (w *Wall) Remaining() int {
	if w.durability-w.damage < 0 {
		return 0
	}
	return w.durability - w.damage
}

// Interact applies the source's attack damage to the wall.
func (w *Wall) Interact(c Capability, source Mover) Interaction {
	if !w.Capabilities().Has(c) {
		return Interaction{}
	}
	loss := 1
	if a, ok := source.(Attacker); ok {
		loss = a.AttackDamage()
	}
	w.damage += loss
	return Interaction{Damage: loss, Destroyed: w.damage >= w.durability}
}

// foodReceiver is implemented by movers that can eat pickups.
type foodReceiver interface {
	GainFood(points int)
}

// exitReacher is implemented by movers that can leave the level.
type exitReacher interface {
	ReachExit()
}

// Pickup is a food or soda item restoring food on entry.
type Pickup struct {
	base
	points int
}

// NewFood creates a food pickup.
func NewFood(seq int, pos grid.Position, points int) *Pickup {
	return &Pickup{base: base{id: fmt.Sprintf("food-%d", seq), kind: KindFood, pos: pos}, points: points}
}

// NewSoda creates a soda pickup.
func NewSoda(seq int, pos grid.Position, points int) *Pickup {
	return &Pickup{base: base{id: fmt.Sprintf("soda-%d", seq), kind: KindSoda, pos: pos}, points: points}
}

func (p *Pickup) Capabilities() Capability { return CapFoodGain }
func (p *Pickup) Blocking() bool           { return false }
func (p *Pickup) Points() int              { return p.points }

// Enter feeds the source and consumes the pickup. Movers that cannot eat
// walk over it.
func (p *Pickup) Enter(source Mover) TriggerResult {
	r, ok := source.(foodReceiver)
	if !ok {
		return TriggerResult{}
	}
	r.GainFood(p.points)
	return TriggerResult{FoodGained: p.points, Consumed: true}
}

// Exit ends the level when the player enters it.
type Exit struct {
	base
}

// NewExit creates the level exit.
func NewExit(pos grid.Position) *Exit {
	return &Exit{base: base{id: "exit", kind: KindExit, pos: pos}}
}

func (e *Exit) Capabilities() Capability { return CapLevelExit }
func (e *Exit) Blocking() bool           { return false }

// Enter signals the level exit for movers that can leave.
func (e *Exit) Enter(source Mover) TriggerResult {
	r, ok := source.(exitReacher)
	if !ok {
		return TriggerResult{}
	}
	r.ReachExit()
	return TriggerResult{LevelExit: true}
}
