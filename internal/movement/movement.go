// Package movement implements the single-step move shared by every mover:
// step one cell, or bump the blocking occupant and let it react.
package movement

import (
	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
)

// Result is the outcome class of a move attempt.
type Result int

const (
	Moved      Result = iota // position updated by one cell
	Interacted               // the blocking occupant's handler fired
	Blocked                  // nothing happened
)

func (r Result) String() string {
	switch r {
	case Moved:
		return "moved"
	case Interacted:
		return "interacted"
	default:
		return "blocked"
	}
}

// Cue names the presentation effect for an outcome.
type Cue string

const (
	CueNone   Cue = ""
	CueStep   Cue = "step"   // a mover walked one cell
	CueChop   Cue = "chop"   // the player hit a wall
	CueAttack Cue = "attack" // an enemy hit the player
	CueBump   Cue = "bump"   // blocked
	CueEat    Cue = "eat"
	CueDrink  Cue = "drink"
	CueExit   Cue = "exit"
)

// Space is the board as seen by movement.
type Space interface {
	Contains(p grid.Position) bool
	BlockerAt(p grid.Position) (entity.Occupant, bool)
	TriggersAt(p grid.Position) []entity.Trigger
	Relocate(m entity.Mover, to grid.Position)
	Remove(o entity.Occupant)
}

// Outcome reports what a move attempt did.
type Outcome struct {
	Mover       entity.Mover
	Direction   grid.Direction
	Result      Result
	From, To    grid.Position
	Target      entity.Occupant   // blocking occupant hit, nil when none
	Capability  entity.Capability // capability resolved on Interacted
	Interaction entity.Interaction
}

// Cue returns the presentation effect for the outcome.
func (o Outcome) Cue() Cue {
	switch o.Result {
	case Moved:
		return CueStep
	case Interacted:
		switch o.Capability {
		case entity.CapDamageableByPlayer:
			return CueChop
		case entity.CapDamageableByEnemy:
			return CueAttack
		}
		return CueNone
	default:
		return CueBump
	}
}

// TargetKind returns the kind of the occupant hit, or "" when nothing was hit.
func (o Outcome) TargetKind() entity.Kind {
	if o.Target == nil {
		return ""
	}
	return o.Target.Kind()
}

// AttemptMove moves m one cell along d, or resolves a bump against the
// blocking occupant of the destination. Exactly one of {position changed,
// handler fired} happens, or neither. Leaving the board is Blocked.
func AttemptMove(s Space, m entity.Mover, d grid.Direction) Outcome {
	from := m.Position()
	out := Outcome{Mover: m, Direction: d, From: from, To: from, Result: Blocked}
	if d == grid.DirNone {
		return out
	}

	to := from.Add(d)
	if !s.Contains(to) {
		return out
	}

	target, hit := s.BlockerAt(to)
	if !hit {
		s.Relocate(m, to)
		out.Result = Moved
		out.To = to
		return out
	}

	out.Target = target
	want := m.Resolves()
	ia, ok := target.(entity.Interactable)
	if !ok || !target.Capabilities().Has(want) {
		return out
	}

	out.Result = Interacted
	out.Capability = want
	out.Interaction = ia.Interact(want, m)
	if out.Interaction.Destroyed {
		s.Remove(target)
	}
	return out
}

// TriggerEvent reports one trigger fired by a mover entering its cell.
type TriggerEvent struct {
	Mover   entity.Mover
	Trigger entity.Trigger
	Result  entity.TriggerResult
}

// Cue returns the presentation effect for the trigger.
func (e TriggerEvent) Cue() Cue {
	switch {
	case e.Result.LevelExit:
		return CueExit
	case e.Result.FoodGained > 0 && e.Trigger.Kind() == entity.KindSoda:
		return CueDrink
	case e.Result.FoodGained > 0:
		return CueEat
	}
	return CueNone
}

// ResolveTriggers fires every trigger on the mover's cell in placement order
// and removes consumed ones. Triggers that ignore the mover are left alone
// and not reported.
func ResolveTriggers(s Space, m entity.Mover) []TriggerEvent {
	var events []TriggerEvent
	for _, t := range s.TriggersAt(m.Position()) {
		res := t.Enter(m)
		if res.Consumed {
			s.Remove(t)
		}
		if res == (entity.TriggerResult{}) {
			continue
		}
		events = append(events, TriggerEvent{Mover: m, Trigger: t, Result: res})
	}
	return events
}
