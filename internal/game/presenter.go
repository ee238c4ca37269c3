package game

import (
	"chosenoffset.com/scavenger/internal/core/gamestate"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/entity/turn"
	"chosenoffset.com/scavenger/internal/logging"
	"chosenoffset.com/scavenger/internal/movement"
	"chosenoffset.com/scavenger/internal/world/board"
)

// present hooks the HUD, sound cues, metrics and logs onto the controller
// and scheduler callbacks.
func (s *Session) present() {
	s.ctrl.OnFoodChanged = func(c gamestate.FoodChange) {
		s.hud.FoodChanged(c)
		s.metrics.SetFood(c.Food)
	}
	s.ctrl.OnBestScore = s.hud.BestScore
	s.ctrl.OnGameOver = func(day int) {
		s.hud.GameOver(day)
		s.metrics.ObserveGameOver(day)
		if s.sounds != nil && !s.muted {
			s.sounds.PlayGameOver()
		}
	}

	s.turns.OnPhaseChange = func(from, to turn.Phase) {
		s.metrics.ObservePhase(to.String())
		if to == turn.PhasePlayerTurn && from == turn.PhaseSetup {
			s.hud.PlayStarted()
		}
	}
	s.turns.OnLevelStart = func(stage *board.Stage) {
		s.hud.LevelStarted(stage.Level)
		s.metrics.ObserveLevelStart(stage.Level)
	}
	s.turns.OnMove = s.moved
	s.turns.OnTrigger = s.triggered
	s.turns.OnEnemyTurn = func(e *entity.Enemy, skipped bool) {
		if skipped {
			s.log.Debug("enemy skipped turn", logging.String("enemy", e.ID()))
		}
	}
}

func (s *Session) moved(out movement.Outcome) {
	s.metrics.ObserveMove(string(out.Mover.Kind()), out.Result.String())
	s.play(out.Cue())

	// Attacks land on the player; show the loss where it happened.
	if out.Result == movement.Interacted && out.Capability == entity.CapDamageableByEnemy {
		s.hud.Gain(out.Target.Position(), -out.Interaction.Damage)
	}
	s.log.Debug("move",
		logging.String("mover", out.Mover.ID()),
		logging.String("dir", out.Direction.String()),
		logging.String("result", out.Result.String()),
		logging.String("target", string(out.TargetKind())),
	)
}

func (s *Session) triggered(ev movement.TriggerEvent) {
	s.play(ev.Cue())
	if ev.Result.FoodGained > 0 {
		s.hud.Gain(ev.Trigger.Position(), ev.Result.FoodGained)
	}
	s.log.Debug("trigger",
		logging.String("trigger", ev.Trigger.ID()),
		logging.Int("food_gained", ev.Result.FoodGained),
		logging.Any("level_exit", ev.Result.LevelExit),
	)
}

func (s *Session) play(cue movement.Cue) {
	if s.sounds == nil || s.muted || cue == movement.CueNone {
		return
	}
	s.sounds.PlayCue(cue)
}
