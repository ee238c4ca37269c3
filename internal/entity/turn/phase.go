// Package turn provides the turn scheduler: strict alternation between the
// player's move and a batched, timed enemy phase, gated by level setup and
// game over.
package turn

import (
	"errors"
	"time"
)

// Phase represents the current phase of a turn
type Phase int

const (
	PhaseSetup     Phase = iota // Level being prepared, input ignored
	PhasePlayerTurn             // Waiting for player input
	PhaseEnemyTurn              // Enemies taking their turns
	PhaseGameOver               // Starved, waiting for a restart
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseEnemyTurn:
		return "enemy_turn"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ErrMissingCollaborator reports a level that cannot be played: no level
// builder, or a stage without a player, board or exit.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Timing holds the scheduler delays.
type Timing struct {
	LevelStartDelay time.Duration // title card before the first player turn
	NextLevelDelay  time.Duration // pause between reaching the exit and the next setup
	TurnDelay       time.Duration // pause before enemies move; doubled when there are none
}

// DefaultTiming is the standard game pacing.
func DefaultTiming() Timing {
	return Timing{
		LevelStartDelay: 2 * time.Second,
		NextLevelDelay:  time.Second,
		TurnDelay:       100 * time.Millisecond,
	}
}
