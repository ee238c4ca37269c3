package turn

import (
	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/movement"
)

// processEnemyAI runs one enemy turn: close the horizontal gap first, and
// only when that was impossible or unnecessary, the vertical one. At most
// one attempt per axis.
func (m *Manager) processEnemyAI(e *entity.Enemy) {
	if e.SkipTurn() {
		if m.OnEnemyTurn != nil {
			m.OnEnemyTurn(e, true)
		}
		return
	}
	if m.OnEnemyTurn != nil {
		m.OnEnemyTurn(e, false)
	}

	target := m.stage.Player.Position()
	pos := e.Position()

	acted := false
	if target.X != pos.X {
		out := movement.AttemptMove(m.stage.Board, e, grid.Toward(pos, target, true))
		m.emitMove(out)
		acted = out.Result != movement.Blocked
	}
	if !acted {
		out := movement.AttemptMove(m.stage.Board, e, grid.Toward(pos, target, false))
		m.emitMove(out)
	}
}
