package entity

import (
	"time"

	"chosenoffset.com/scavenger/internal/core/grid"
)

// Player is the controlled mover. It chops walls and is the target of enemy
// attacks; its food lives in Resources, not on the per-level instance.
type Player struct {
	base
	wallDamage int
	moveTime   time.Duration
	resources  Resources

	// Facing is the last horizontal direction moved, for sprite flipping.
	Facing grid.Direction
}

// NewPlayer creates the player for one level.
func NewPlayer(pos grid.Position, wallDamage int, moveTime time.Duration, res Resources) *Player {
	if wallDamage < 1 {
		wallDamage = 1
	}
	return &Player{
		base:       base{id: "player", kind: KindPlayer, pos: pos},
		wallDamage: wallDamage,
		moveTime:   moveTime,
		resources:  res,
		Facing:     grid.DirEast,
	}
}

func (p *Player) Capabilities() Capability { return CapDamageableByEnemy }
func (p *Player) Blocking() bool           { return true }
func (p *Player) Resolves() Capability     { return CapDamageableByPlayer }
func (p *Player) MoveTime() time.Duration  { return p.moveTime }

// AttackDamage is the damage dealt to a wall per chop.
func (p *Player) AttackDamage() int { return p.wallDamage }

// SetPosition implements Mover.
func (p *Player) SetPosition(pos grid.Position) {
	if pos.X > p.pos.X {
		p.Facing = grid.DirEast
	} else if pos.X < p.pos.X {
		p.Facing = grid.DirWest
	}
	p.pos = pos
}

// Interact handles an enemy attack by losing the attacker's damage in food.
func (p *Player) Interact(c Capability, source Mover) Interaction {
	if c != CapDamageableByEnemy {
		return Interaction{}
	}
	damage := 1
	if a, ok := source.(Attacker); ok {
		damage = a.AttackDamage()
	}
	p.LoseFood(damage)
	return Interaction{Damage: damage}
}

// LoseFood subtracts loss from the shared food total.
func (p *Player) LoseFood(loss int) {
	if p.resources != nil && loss > 0 {
		p.resources.ApplyFoodDelta(-loss)
	}
}

// GainFood adds points to the shared food total.
func (p *Player) GainFood(points int) {
	if p.resources != nil && points > 0 {
		p.resources.ApplyFoodDelta(points)
	}
}

// ReachExit reports that the player entered the level exit.
func (p *Player) ReachExit() {
	if p.resources != nil {
		p.resources.OnLevelExitReached()
	}
}
