package movement

import (
	"testing"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/world/board"
)

type foodLedger struct {
	food  int
	exits int
}

func (f *foodLedger) ApplyFoodDelta(delta int) int {
	f.food += delta
	return delta
}

func (f *foodLedger) OnLevelExitReached() { f.exits++ }

func setupMoveBoard() *board.Board {
	return board.New(grid.Bounds{Min: grid.Position{X: 0, Y: 0}, Max: grid.Position{X: 4, Y: 4}})
}

func place(t *testing.T, b *board.Board, occupants ...entity.Occupant) {
	t.Helper()
	for _, o := range occupants {
		if err := b.Place(o); err != nil {
			t.Fatalf("place %s: %v", o.ID(), err)
		}
	}
}

func TestAttemptMoveIntoEmptyCell(t *testing.T) {
	b := setupMoveBoard()
	player := entity.NewPlayer(grid.Position{X: 2, Y: 2}, 1, 0, nil)
	place(t, b, player)

	out := AttemptMove(b, player, grid.DirEast)
	if out.Result != Moved {
		t.Fatalf("expected Moved, got %s", out.Result)
	}
	if player.Position() != (grid.Position{X: 3, Y: 2}) || out.To != player.Position() {
		t.Fatalf("player at %v, outcome To %v", player.Position(), out.To)
	}
	if _, ok := b.BlockerAt(grid.Position{X: 2, Y: 2}); ok {
		t.Error("old cell still holds the player")
	}
	if out.Cue() != CueStep {
		t.Errorf("Cue() = %q, want %q", out.Cue(), CueStep)
	}
}

func TestAttemptMoveChopsWall(t *testing.T) {
	b := setupMoveBoard()
	player := entity.NewPlayer(grid.Position{X: 1, Y: 1}, 1, 0, nil)
	wall := entity.NewWall(1, grid.Position{X: 1, Y: 0}, 2)
	place(t, b, player, wall)

	out := AttemptMove(b, player, grid.DirNorth)
	if out.Result != Interacted || out.TargetKind() != entity.KindWall {
		t.Fatalf("first chop = %s on %q", out.Result, out.TargetKind())
	}
	if out.Interaction.Destroyed {
		t.Fatal("wall fell on the first chop")
	}
	if player.Position() != (grid.Position{X: 1, Y: 1}) {
		t.Fatal("player moved while chopping")
	}

	out = AttemptMove(b, player, grid.DirNorth)
	if !out.Interaction.Destroyed {
		t.Fatal("wall should fall on the second chop")
	}
	if _, ok := b.BlockerAt(wall.Position()); ok {
		t.Fatal("destroyed wall still on the board")
	}
	if out.Cue() != CueChop {
		t.Errorf("Cue() = %q, want %q", out.Cue(), CueChop)
	}

	if out = AttemptMove(b, player, grid.DirNorth); out.Result != Moved {
		t.Fatalf("after the wall fell expected Moved, got %s", out.Result)
	}
}

func TestEnemyBlockedByWall(t *testing.T) {
	b := setupMoveBoard()
	enemy := entity.NewEnemy(1, entity.Variant{Damage: 10}, grid.Position{X: 2, Y: 2})
	wall := entity.NewWall(1, grid.Position{X: 3, Y: 2}, 3)
	place(t, b, enemy, wall)

	out := AttemptMove(b, enemy, grid.DirEast)
	if out.Result != Blocked {
		t.Fatalf("expected Blocked, got %s", out.Result)
	}
	if wall.Remaining() != 3 {
		t.Error("enemy damaged a wall")
	}
	if out.Cue() != CueBump {
		t.Errorf("Cue() = %q", out.Cue())
	}
}

func TestEnemyAttacksPlayer(t *testing.T) {
	b := setupMoveBoard()
	ledger := &foodLedger{food: 50}
	player := entity.NewPlayer(grid.Position{X: 2, Y: 1}, 1, 0, ledger)
	enemy := entity.NewEnemy(1, entity.Variant{Damage: 20}, grid.Position{X: 2, Y: 2})
	place(t, b, player, enemy)

	out := AttemptMove(b, enemy, grid.DirNorth)
	if out.Result != Interacted || out.Capability != entity.CapDamageableByEnemy {
		t.Fatalf("outcome = %s/%s", out.Result, out.Capability)
	}
	if ledger.food != 30 {
		t.Errorf("food = %d, want 30", ledger.food)
	}
	if out.Cue() != CueAttack {
		t.Errorf("Cue() = %q", out.Cue())
	}
}

func TestPlayerBlockedByEnemyAndOuterWall(t *testing.T) {
	b := setupMoveBoard()
	player := entity.NewPlayer(grid.Position{X: 1, Y: 1}, 1, 0, nil)
	enemy := entity.NewEnemy(1, entity.Variant{}, grid.Position{X: 2, Y: 1})
	outer := entity.NewOuterWall(grid.Position{X: 0, Y: 1})
	place(t, b, player, enemy, outer)

	for _, d := range []grid.Direction{grid.DirEast, grid.DirWest} {
		if out := AttemptMove(b, player, d); out.Result != Blocked {
			t.Errorf("%s: expected Blocked, got %s", d, out.Result)
		}
	}
}

func TestLeavingBoundsIsBlocked(t *testing.T) {
	b := setupMoveBoard()
	player := entity.NewPlayer(grid.Position{X: 0, Y: 0}, 1, 0, nil)
	place(t, b, player)

	for _, d := range []grid.Direction{grid.DirNorth, grid.DirWest, grid.DirNone} {
		out := AttemptMove(b, player, d)
		if out.Result != Blocked || out.Target != nil {
			t.Errorf("%s: outcome %s target %v", d, out.Result, out.Target)
		}
	}
	if player.Position() != (grid.Position{}) {
		t.Errorf("player moved to %v", player.Position())
	}
}

// Every attempt either moves exactly one cell, fires one handler, or does
// nothing at all.
func TestAttemptMoveHasExactlyOneEffect(t *testing.T) {
	for _, d := range grid.Directions {
		b := setupMoveBoard()
		ledger := &foodLedger{food: 100}
		player := entity.NewPlayer(grid.Position{X: 2, Y: 2}, 1, 0, ledger)
		place(t, b, player,
			entity.NewWall(1, grid.Position{X: 2, Y: 1}, 3),
			entity.NewEnemy(1, entity.Variant{Damage: 5}, grid.Position{X: 3, Y: 2}),
			entity.NewOuterWall(grid.Position{X: 1, Y: 2}),
		)
		enemy, _ := b.BlockerAt(grid.Position{X: 3, Y: 2})

		for _, m := range []entity.Mover{player, enemy.(entity.Mover)} {
			before := m.Position()
			foodBefore := ledger.food
			out := AttemptMove(b, m, d)

			moved := m.Position() != before
			if moved {
				dx, dy := d.Delta()
				if m.Position() != (grid.Position{X: before.X + dx, Y: before.Y + dy}) {
					t.Errorf("%s %s: moved more than one cell", m.ID(), d)
				}
			}
			handled := out.Result == Interacted
			if moved && handled {
				t.Errorf("%s %s: moved and interacted in one call", m.ID(), d)
			}
			if (out.Result == Moved) != moved {
				t.Errorf("%s %s: result %s disagrees with movement", m.ID(), d, out.Result)
			}
			if out.Result == Blocked && ledger.food != foodBefore {
				t.Errorf("%s %s: blocked move changed food", m.ID(), d)
			}
		}
	}
}

func TestResolveTriggersConsumesPickups(t *testing.T) {
	b := setupMoveBoard()
	ledger := &foodLedger{food: 10}
	player := entity.NewPlayer(grid.Position{X: 1, Y: 1}, 1, 0, ledger)
	soda := entity.NewSoda(1, grid.Position{X: 2, Y: 1}, 20)
	place(t, b, player, soda)

	if out := AttemptMove(b, player, grid.DirEast); out.Result != Moved {
		t.Fatalf("pickups must not block, got %s", out.Result)
	}
	events := ResolveTriggers(b, player)
	if len(events) != 1 || events[0].Cue() != CueDrink {
		t.Fatalf("events = %+v", events)
	}
	if ledger.food != 30 {
		t.Errorf("food = %d, want 30", ledger.food)
	}
	if ts := b.TriggersAt(soda.Position()); len(ts) != 0 {
		t.Error("soda not consumed")
	}
}

func TestResolveTriggersIgnoresEnemies(t *testing.T) {
	b := setupMoveBoard()
	ledger := &foodLedger{}
	enemy := entity.NewEnemy(1, entity.Variant{}, grid.Position{X: 1, Y: 1})
	exit := entity.NewExit(grid.Position{X: 1, Y: 2})
	food := entity.NewFood(1, grid.Position{X: 1, Y: 2}, 10)
	place(t, b, enemy, exit, food)

	AttemptMove(b, enemy, grid.DirSouth)
	if events := ResolveTriggers(b, enemy); len(events) != 0 {
		t.Fatalf("enemy fired triggers: %+v", events)
	}
	if len(b.TriggersAt(exit.Position())) != 2 || ledger.exits != 0 {
		t.Error("enemy disturbed the triggers")
	}
}
