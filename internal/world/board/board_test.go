package board

import (
	"testing"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
)

func newTestBoard() *Board {
	return New(grid.Bounds{Min: grid.Position{X: -1, Y: -1}, Max: grid.Position{X: 4, Y: 4}})
}

func TestPlaceRejectsSharedBlockingCell(t *testing.T) {
	b := newTestBoard()
	if err := b.Place(entity.NewWall(1, grid.Position{X: 1, Y: 1}, 3)); err != nil {
		t.Fatalf("Place wall: %v", err)
	}
	if err := b.Place(entity.NewEnemy(1, entity.Variant{}, grid.Position{X: 1, Y: 1})); err == nil {
		t.Fatal("expected an error placing a second blocker on the same cell")
	}
	if err := b.Place(entity.NewFood(1, grid.Position{X: 1, Y: 1}, 10)); err != nil {
		t.Fatalf("a trigger may share a cell: %v", err)
	}
	if err := b.Place(entity.NewWall(2, grid.Position{X: 9, Y: 9}, 3)); err == nil {
		t.Fatal("expected an out of bounds error")
	}
}

func TestRelocateMovesBlocker(t *testing.T) {
	b := newTestBoard()
	e := entity.NewEnemy(1, entity.Variant{}, grid.Position{X: 0, Y: 0})
	if err := b.Place(e); err != nil {
		t.Fatal(err)
	}
	b.Relocate(e, grid.Position{X: 1, Y: 0})

	if _, ok := b.BlockerAt(grid.Position{X: 0, Y: 0}); ok {
		t.Error("old cell still occupied")
	}
	if got, ok := b.BlockerAt(grid.Position{X: 1, Y: 0}); !ok || got != entity.Occupant(e) {
		t.Error("enemy not found on its new cell")
	}
	if e.Position() != (grid.Position{X: 1, Y: 0}) {
		t.Errorf("enemy position = %v", e.Position())
	}
}

func TestRemoveTrigger(t *testing.T) {
	b := newTestBoard()
	food := entity.NewFood(1, grid.Position{X: 2, Y: 2}, 10)
	soda := entity.NewSoda(1, grid.Position{X: 2, Y: 2}, 20)
	_ = b.Place(food)
	_ = b.Place(soda)

	b.Remove(food)
	ts := b.TriggersAt(grid.Position{X: 2, Y: 2})
	if len(ts) != 1 || entity.Occupant(ts[0]) != entity.Occupant(soda) {
		t.Fatalf("triggers after remove = %v", ts)
	}
	b.Remove(soda)
	if ts := b.TriggersAt(grid.Position{X: 2, Y: 2}); ts != nil {
		t.Fatalf("expected no triggers, got %v", ts)
	}
}

func TestOccupantsDrawOrder(t *testing.T) {
	b := newTestBoard()
	exit := entity.NewExit(grid.Position{X: 3, Y: 3})
	player := entity.NewPlayer(grid.Position{X: 0, Y: 0}, 1, 0, nil)
	enemy := entity.NewEnemy(1, entity.Variant{}, grid.Position{X: 3, Y: 3})
	for _, o := range []entity.Occupant{enemy, exit, player} {
		if err := b.Place(o); err != nil {
			t.Fatal(err)
		}
	}
	got := b.Occupants()
	want := []entity.Occupant{player, exit, enemy}
	if len(got) != len(want) {
		t.Fatalf("Occupants() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d = %s, want %s", i, got[i].ID(), want[i].ID())
		}
	}
}
