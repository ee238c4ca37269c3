package turn

import (
	"fmt"
	"time"

	"chosenoffset.com/scavenger/internal/core/gamestate"
	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/core/timer"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/entity/roster"
	"chosenoffset.com/scavenger/internal/logging"
	"chosenoffset.com/scavenger/internal/movement"
	"chosenoffset.com/scavenger/internal/world/board"
)

// LevelBuilder sets up a level: it places every occupant on a fresh board
// and registers each enemy in the roster, in turn order.
type LevelBuilder interface {
	SetupLevel(level int, r *roster.Roster) (*board.Stage, error)
}

// Resources is the long-lived game state the scheduler drives.
type Resources interface {
	ApplyFoodDelta(delta int) int
	Level() int
	AdvanceLevel()
	Restart()
	Bind(l gamestate.Lifecycle)
}

// Manager is the turn scheduler. It is advanced only by Tick and is not
// safe for concurrent use.
type Manager struct {
	phase      Phase
	timing     Timing
	turnNumber int

	resources Resources
	builder   LevelBuilder
	roster    *roster.Roster
	queue     *timer.Queue
	stage     *board.Stage
	err       error
	log       logging.Logger

	// Callbacks
	OnPhaseChange func(from, to Phase)
	OnLevelStart  func(stage *board.Stage)
	OnMove        func(out movement.Outcome)
	OnTrigger     func(ev movement.TriggerEvent)
	OnEnemyTurn   func(e *entity.Enemy, skipped bool)
}

// NewManager creates a scheduler in the setup phase and binds it to the
// resources as their lifecycle target.
func NewManager(res Resources, builder LevelBuilder, r *roster.Roster, timing Timing, log logging.Logger) *Manager {
	if log == nil {
		log = logging.Noop()
	}
	if r == nil {
		r = roster.New()
	}
	m := &Manager{
		phase:     PhaseSetup,
		timing:    timing,
		resources: res,
		builder:   builder,
		roster:    r,
		queue:     timer.NewQueue(),
		log:       log.With(logging.String("component", "turn")),
	}
	if res != nil {
		res.Bind(m)
	}
	return m
}

// Start sets up the current level.
func (m *Manager) Start() error {
	if m.resources == nil {
		m.fail(fmt.Errorf("turn scheduler has no game state: %w", ErrMissingCollaborator))
		return m.err
	}
	m.beginSetup()
	return m.err
}

// Tick advances the scheduler by dt and applies at most one player move
// intent. Intents outside the player turn are dropped. A non-nil error
// means the level is broken and the game cannot continue.
func (m *Manager) Tick(dt time.Duration, intent grid.Direction) error {
	if m.err != nil {
		return m.err
	}
	m.queue.Advance(dt)
	if m.err != nil {
		return m.err
	}
	if intent != grid.DirNone {
		m.handlePlayerIntent(intent)
	}
	return m.err
}

// RequestRestart restarts the game. It only applies during game over and
// reports whether it did.
func (m *Manager) RequestRestart() bool {
	if m.phase != PhaseGameOver {
		m.log.Debug("restart ignored", logging.String("phase", m.phase.String()))
		return false
	}
	m.resources.Restart()
	return true
}

// GetPhase returns the current phase
func (m *Manager) GetPhase() Phase { return m.phase }

// IsPlayerTurn returns true if it's the player's turn to input
func (m *Manager) IsPlayerTurn() bool { return m.phase == PhasePlayerTurn }

// GetTurnNumber returns the number of completed enemy phases this game.
func (m *Manager) GetTurnNumber() int { return m.turnNumber }

// Stage returns the level being played, nil before the first setup.
func (m *Manager) Stage() *board.Stage { return m.stage }

// Roster returns the enemy roster.
func (m *Manager) Roster() *roster.Roster { return m.roster }

// Pending returns the names of the scheduled continuations.
func (m *Manager) Pending() []string { return m.queue.PendingNames() }

// Err returns the fatal error that stopped the scheduler, if any.
func (m *Manager) Err() error { return m.err }

// GameOver implements gamestate.Lifecycle. It drops any pending enemy
// moves, setup delay or level transition.
func (m *Manager) GameOver() {
	m.queue.CancelAll()
	m.setPhase(PhaseGameOver)
}

// Restarted implements gamestate.Lifecycle.
func (m *Manager) Restarted() {
	m.queue.CancelAll()
	m.turnNumber = 0
	m.beginSetup()
}

// LevelExitReached implements gamestate.Lifecycle. Input is blocked until
// the next level has been set up.
func (m *Manager) LevelExitReached() {
	m.setPhase(PhaseSetup)
	m.queue.After(m.timing.NextLevelDelay, "next-level", func() {
		m.resources.AdvanceLevel()
		m.beginSetup()
	})
}

func (m *Manager) beginSetup() {
	m.setPhase(PhaseSetup)
	m.roster.Clear()
	m.stage = nil

	if m.builder == nil {
		m.fail(fmt.Errorf("no level builder: %w", ErrMissingCollaborator))
		return
	}
	level := m.resources.Level()
	stage, err := m.builder.SetupLevel(level, m.roster)
	if err != nil {
		m.fail(fmt.Errorf("failed to set up day %d: %w", level, err))
		return
	}
	if err := validateStage(stage); err != nil {
		m.fail(fmt.Errorf("failed to set up day %d: %w", level, err))
		return
	}
	m.stage = stage
	m.log.Info("level ready", logging.Int("day", level), logging.Int("enemies", m.roster.Len()))
	if m.OnLevelStart != nil {
		m.OnLevelStart(stage)
	}

	m.queue.After(m.timing.LevelStartDelay, "level-start", func() {
		m.setPhase(PhasePlayerTurn)
	})
}

func validateStage(stage *board.Stage) error {
	switch {
	case stage == nil:
		return fmt.Errorf("level builder returned no stage: %w", ErrMissingCollaborator)
	case stage.Board == nil:
		return fmt.Errorf("stage has no board: %w", ErrMissingCollaborator)
	case stage.Player == nil:
		return fmt.Errorf("stage has no player: %w", ErrMissingCollaborator)
	case stage.Exit == nil:
		return fmt.Errorf("stage has no exit: %w", ErrMissingCollaborator)
	}
	return nil
}

// handlePlayerIntent moves the player, charges the step and hands the turn
// to the enemies. The step is paid before the destination's pickups and
// exit fire, so a player who starves on the step never reaches them. The
// hand-over happens whatever the move did, unless the step cost or a
// trigger ended the game or the level.
func (m *Manager) handlePlayerIntent(dir grid.Direction) {
	if m.phase != PhasePlayerTurn {
		m.log.Debug("move ignored", logging.String("phase", m.phase.String()), logging.String("dir", dir.String()))
		return
	}

	player := m.stage.Player
	out := movement.AttemptMove(m.stage.Board, player, dir)
	m.emitMove(out)

	m.resources.ApplyFoodDelta(-gamestate.StepCost)
	if m.phase != PhasePlayerTurn {
		return
	}

	if out.Result == movement.Moved {
		for _, ev := range movement.ResolveTriggers(m.stage.Board, player) {
			if m.OnTrigger != nil {
				m.OnTrigger(ev)
			}
		}
		if m.phase != PhasePlayerTurn {
			return
		}
	}
	m.beginEnemyPhase()
}

func (m *Manager) beginEnemyPhase() {
	m.setPhase(PhaseEnemyTurn)
	m.queue.After(m.timing.TurnDelay, "enemy-phase", func() {
		if m.roster.Len() == 0 {
			m.queue.After(m.timing.TurnDelay, "enemy-idle", m.endEnemyPhase)
			return
		}
		m.runEnemy(0)
	})
}

// runEnemy gives enemy i its turn and schedules the next one after that
// enemy's move time. A game over during the move ends the chain.
func (m *Manager) runEnemy(i int) {
	if i >= m.roster.Len() {
		m.endEnemyPhase()
		return
	}
	e := m.roster.At(i)
	epoch := m.queue.Epoch()
	m.processEnemyAI(e)
	if m.queue.Epoch() != epoch || m.phase != PhaseEnemyTurn {
		return
	}
	m.queue.After(e.MoveTime(), "enemy-move", func() {
		m.runEnemy(i + 1)
	})
}

func (m *Manager) endEnemyPhase() {
	m.turnNumber++
	m.setPhase(PhasePlayerTurn)
}

func (m *Manager) emitMove(out movement.Outcome) {
	if m.OnMove != nil {
		m.OnMove(out)
	}
}

func (m *Manager) setPhase(to Phase) {
	from := m.phase
	if from == to {
		return
	}
	m.phase = to
	m.log.Debug("phase changed", logging.String("from", from.String()), logging.String("to", to.String()))
	if m.OnPhaseChange != nil {
		m.OnPhaseChange(from, to)
	}
}

func (m *Manager) fail(err error) {
	m.err = err
	m.queue.CancelAll()
	m.log.Error("turn scheduler stopped", logging.Err(err))
}
