// Package board holds the occupants of one level on a bounded grid.
// Blocking occupants (player, enemies, walls) own their cell exclusively;
// triggers (pickups, exit) share cells with whoever walks onto them.
package board

import (
	"fmt"
	"sort"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
)

// Board is the cell map for a single level.
type Board struct {
	bounds   grid.Bounds
	blockers map[grid.Position]entity.Occupant
	triggers map[grid.Position][]entity.Trigger
}

// New creates an empty board covering bounds.
func New(bounds grid.Bounds) *Board {
	return &Board{
		bounds:   bounds,
		blockers: make(map[grid.Position]entity.Occupant),
		triggers: make(map[grid.Position][]entity.Trigger),
	}
}

// Bounds returns the valid cell rectangle.
func (b *Board) Bounds() grid.Bounds { return b.bounds }

// Contains reports whether p is a cell of this board.
func (b *Board) Contains(p grid.Position) bool { return b.bounds.Contains(p) }

// Place puts an occupant on its current position.
func (b *Board) Place(o entity.Occupant) error {
	p := o.Position()
	if !b.bounds.Contains(p) {
		return fmt.Errorf("failed to place %s: %v is outside the board", o.ID(), p)
	}
	if o.Blocking() {
		if existing, ok := b.blockers[p]; ok {
			return fmt.Errorf("failed to place %s: %v already holds %s", o.ID(), p, existing.ID())
		}
		b.blockers[p] = o
		return nil
	}
	t, ok := o.(entity.Trigger)
	if !ok {
		return fmt.Errorf("failed to place %s: non-blocking occupants must be triggers", o.ID())
	}
	b.triggers[p] = append(b.triggers[p], t)
	return nil
}

// BlockerAt returns the blocking occupant of p, if any.
func (b *Board) BlockerAt(p grid.Position) (entity.Occupant, bool) {
	o, ok := b.blockers[p]
	return o, ok
}

// TriggersAt returns a copy of the triggers on p in placement order.
func (b *Board) TriggersAt(p grid.Position) []entity.Trigger {
	ts := b.triggers[p]
	if len(ts) == 0 {
		return nil
	}
	out := make([]entity.Trigger, len(ts))
	copy(out, ts)
	return out
}

// Relocate moves a blocking mover to an empty cell and updates its position.
// The caller has already checked the destination is free and in bounds.
func (b *Board) Relocate(m entity.Mover, to grid.Position) {
	if cur, ok := b.blockers[m.Position()]; ok && cur == entity.Occupant(m) {
		delete(b.blockers, m.Position())
	}
	m.SetPosition(to)
	b.blockers[to] = m
}

// Remove takes an occupant off the board.
func (b *Board) Remove(o entity.Occupant) {
	p := o.Position()
	if o.Blocking() {
		if cur, ok := b.blockers[p]; ok && cur == o {
			delete(b.blockers, p)
		}
		return
	}
	ts := b.triggers[p]
	for i, t := range ts {
		if entity.Occupant(t) == o {
			ts = append(ts[:i], ts[i+1:]...)
			break
		}
	}
	if len(ts) == 0 {
		delete(b.triggers, p)
	} else {
		b.triggers[p] = ts
	}
}

// Occupants returns every occupant in draw order: row by row, triggers
// before the blocker standing on them.
func (b *Board) Occupants() []entity.Occupant {
	cells := make([]grid.Position, 0, len(b.blockers)+len(b.triggers))
	seen := make(map[grid.Position]bool)
	for p := range b.triggers {
		cells = append(cells, p)
		seen[p] = true
	}
	for p := range b.blockers {
		if !seen[p] {
			cells = append(cells, p)
		}
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})

	out := make([]entity.Occupant, 0, len(cells))
	for _, p := range cells {
		for _, t := range b.triggers[p] {
			out = append(out, t)
		}
		if o, ok := b.blockers[p]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Stage is a fully set up level handed back by the level builder.
type Stage struct {
	Level  int
	Board  *Board
	Player *entity.Player
	Exit   *entity.Exit
}
