// Package entity provides the occupants of the grid: the player, enemies,
// walls, pickups and the level exit.
//
// Occupants do not share a class hierarchy. Each one exposes a capability
// set, and movers declare the single capability they resolve a bump against.
// Movement dispatches on the intersection of the two.
package entity

import (
	"strings"
	"time"

	"chosenoffset.com/scavenger/internal/core/grid"
)

// Kind identifies the kind of occupant, mainly for presentation.
type Kind string

const (
	KindPlayer    Kind = "player"
	KindEnemy     Kind = "enemy"
	KindWall      Kind = "wall"
	KindOuterWall Kind = "outer_wall"
	KindFood      Kind = "food"
	KindSoda      Kind = "soda"
	KindExit      Kind = "exit"
)

// Capability is a bit set of interactions an occupant exposes.
type Capability uint8

const (
	CapDamageableByPlayer Capability = 1 << iota // walls the player can chop
	CapDamageableByEnemy                         // the player, attacked by enemies
	CapFoodGain                                  // pickups restoring food on entry
	CapLevelExit                                 // ends the level on entry
)

// CapNone is the empty capability set.
const CapNone Capability = 0

// Has reports whether every bit of want is present. The empty set is never had.
func (c Capability) Has(want Capability) bool {
	return want != CapNone && c&want == want
}

// String lists the capability names joined by '|'.
func (c Capability) String() string {
	if c == CapNone {
		return "none"
	}
	var names []string
	if c&CapDamageableByPlayer != 0 {
		names = append(names, "damageable_by_player")
	}
	if c&CapDamageableByEnemy != 0 {
		names = append(names, "damageable_by_enemy")
	}
	if c&CapFoodGain != 0 {
		names = append(names, "food_gain")
	}
	if c&CapLevelExit != 0 {
		names = append(names, "level_exit")
	}
	return strings.Join(names, "|")
}

// Occupant is anything placed on a board cell.
type Occupant interface {
	ID() string
	Kind() Kind
	Position() grid.Position
	Capabilities() Capability
	// Blocking occupants stop movement into their cell; the others are
	// scenery entered by the mover.
	Blocking() bool
}

// Mover is an occupant able to attempt one-cell moves.
type Mover interface {
	Occupant
	SetPosition(p grid.Position)
	// Resolves returns the capability this mover interacts with when it
	// bumps into a blocking occupant.
	Resolves() Capability
	MoveTime() time.Duration
}

// Interaction is the result of a bump handler, reported to presentation.
type Interaction struct {
	Damage    int
	Destroyed bool // the target should be removed from the board
}

// Interactable is a blocking occupant with a bump handler.
type Interactable interface {
	Occupant
	Interact(c Capability, source Mover) Interaction
}

// TriggerResult is the result of entering a non-blocking occupant.
type TriggerResult struct {
	FoodGained int
	Consumed   bool // the trigger should be removed from the board
	LevelExit  bool
}

// Trigger is a non-blocking occupant that reacts when a mover enters its cell.
type Trigger interface {
	Occupant
	Enter(source Mover) TriggerResult
}

// Attacker is implemented by movers that deal damage when they interact.
type Attacker interface {
	AttackDamage() int
}

// Resources is the long-lived state player interactions feed into.
type Resources interface {
	ApplyFoodDelta(delta int) int
	OnLevelExitReached()
}

type base struct {
	id   string
	kind Kind
	pos  grid.Position
}

func (b *base) ID() string              { return b.id }
func (b *base) Kind() Kind              { return b.kind }
func (b *base) Position() grid.Position { return b.pos }
