// Package roster tracks the enemies active in the current level, in
// registration order.
package roster

import "chosenoffset.com/scavenger/internal/entity"

// Roster is an ordered, append-only list of enemies for one level.
// Registration order is turn order.
type Roster struct {
	enemies []*entity.Enemy
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{enemies: make([]*entity.Enemy, 0)}
}

// Register appends an enemy. Registering the same enemy twice is ignored.
func (r *Roster) Register(e *entity.Enemy) {
	if e == nil {
		return
	}
	for _, existing := range r.enemies {
		if existing == e {
			return
		}
	}
	r.enemies = append(r.enemies, e)
}

// Clear drops every enemy at once, ahead of a level setup.
func (r *Roster) Clear() {
	r.enemies = r.enemies[:0:0]
}

// Len returns the number of registered enemies.
func (r *Roster) Len() int { return len(r.enemies) }

// At returns the enemy at turn index i.
func (r *Roster) At(i int) *entity.Enemy { return r.enemies[i] }

// Enemies returns a copy of the roster in turn order.
func (r *Roster) Enemies() []*entity.Enemy {
	out := make([]*entity.Enemy, len(r.enemies))
	copy(out, r.enemies)
	return out
}
