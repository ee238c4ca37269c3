package roster

import (
	"testing"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
)

func TestRegisterKeepsOrder(t *testing.T) {
	r := New()
	a := entity.NewEnemy(1, entity.Variant{}, grid.Position{X: 1})
	b := entity.NewEnemy(2, entity.Variant{}, grid.Position{X: 2})
	c := entity.NewEnemy(3, entity.Variant{}, grid.Position{X: 3})
	r.Register(a)
	r.Register(b)
	r.Register(c)
	r.Register(b) // duplicate

	got := r.Enemies()
	if len(got) != 3 {
		t.Fatalf("Len = %d, want 3", len(got))
	}
	for i, want := range []*entity.Enemy{a, b, c} {
		if got[i] != want || r.At(i) != want {
			t.Errorf("index %d = %s, want %s", i, got[i].ID(), want.ID())
		}
	}
}

func TestClearEmptiesRoster(t *testing.T) {
	r := New()
	r.Register(entity.NewEnemy(1, entity.Variant{}, grid.Position{}))
	snapshot := r.Enemies()
	r.Clear()
	if r.Len() != 0 {
		t.Fatalf("Len after Clear = %d", r.Len())
	}
	if len(snapshot) != 1 {
		t.Error("Clear mutated an earlier snapshot")
	}
	r.Register(nil)
	if r.Len() != 0 {
		t.Error("nil enemy was registered")
	}
}
