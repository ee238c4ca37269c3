package game

import (
	"fmt"
	"image/color"
	"time"

	"chosenoffset.com/scavenger/internal/core/gamestate"
	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity/roster"
	"chosenoffset.com/scavenger/internal/entity/turn"
	"chosenoffset.com/scavenger/internal/logging"
	"chosenoffset.com/scavenger/internal/movement"
	"chosenoffset.com/scavenger/internal/observability"
	"chosenoffset.com/scavenger/internal/render"
	"chosenoffset.com/scavenger/internal/simulation"
	"chosenoffset.com/scavenger/internal/ui/hud"
	"chosenoffset.com/scavenger/internal/world/board"
	"chosenoffset.com/scavenger/internal/world/level"
)

// fallbackEnemyColor is used for variants without a parseable color.
var fallbackEnemyColor = color.RGBA{255, 100, 100, 255}

// Sounds plays presentation cues. Implementations must not block.
type Sounds interface {
	PlayCue(cue movement.Cue)
	PlayGameOver()
}

// Options configures a Session.
type Options struct {
	Config  *simulation.Config
	Logger  logging.Logger
	Scores  gamestate.ScoreStore        // nil keeps no best score
	Sounds  Sounds                      // nil is silent
	Metrics *observability.GameCollector // nil records nothing
}

// Session is one running game, independent of the front-end that shows it.
// It is not safe for concurrent use; front-ends drive it from one loop.
type Session struct {
	cfg     *simulation.Config
	log     logging.Logger
	ctrl    *gamestate.Controller
	gen     *level.Generator
	turns   *turn.Manager
	hud     *hud.HUD
	sounds  Sounds
	metrics *observability.GameCollector
	colors  map[string]color.RGBA
	muted   bool
}

// NewSession wires the controller, the level generator and the turn
// scheduler, and hooks presentation onto their callbacks.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = simulation.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = logging.Noop()
	}

	s := &Session{
		cfg:     cfg,
		log:     log.With(logging.String("component", "session")),
		hud:     hud.New(cfg.Food.Starting),
		sounds:  opts.Sounds,
		metrics: opts.Metrics,
		colors:  make(map[string]color.RGBA, len(cfg.Enemies)),
	}
	for _, e := range cfg.Enemies {
		c, err := render.ParseHexColor(e.Color)
		if err != nil {
			s.log.Warn("enemy color ignored", logging.String("variant", e.Name), logging.Err(err))
			c = fallbackEnemyColor
		}
		s.colors[e.Name] = c
	}

	s.ctrl = gamestate.NewController(gamestate.Options{
		StartingFood: cfg.Food.Starting,
		PlayerName:   cfg.Player.Name,
		Scores:       opts.Scores,
		Logger:       log,
	})
	s.gen = level.NewGenerator(level.ConfigFromSimulation(cfg), s.ctrl, log)
	s.turns = turn.NewManager(s.ctrl, s.gen, roster.New(), cfg.Timing(), log)
	s.present()

	if opts.Scores != nil {
		s.hud.BestScore(opts.Scores.LoadBestScore())
	}
	s.metrics.SetFood(s.ctrl.Food())
	return s, nil
}

// Start sets up day one.
func (s *Session) Start() error {
	return s.turns.Start()
}

// Tick advances the session by dt with the held movement intent.
func (s *Session) Tick(dt time.Duration, intent grid.Direction) error {
	s.hud.Update(dt)
	return s.turns.Tick(dt, intent)
}

// Restart starts a new game if the current one is over.
func (s *Session) Restart() bool {
	return s.turns.RequestRestart()
}

// ToggleMute silences or restores sound cues.
func (s *Session) ToggleMute() bool {
	s.muted = !s.muted
	s.log.Info("mute toggled", logging.Any("muted", s.muted))
	return s.muted
}

// Muted reports whether sound cues are silenced.
func (s *Session) Muted() bool { return s.muted }

// Config returns the rules the session runs with.
func (s *Session) Config() *simulation.Config { return s.cfg }

// HUD returns the heads-up display model.
func (s *Session) HUD() *hud.HUD { return s.hud }

// Stage returns the current level, nil before the first setup.
func (s *Session) Stage() *board.Stage { return s.turns.Stage() }

// Phase returns the scheduler phase.
func (s *Session) Phase() turn.Phase { return s.turns.GetPhase() }

// Controller returns the food economy and lifecycle.
func (s *Session) Controller() *gamestate.Controller { return s.ctrl }

// Turns returns the turn scheduler.
func (s *Session) Turns() *turn.Manager { return s.turns }

// Bounds returns the playable area.
func (s *Session) Bounds() grid.Bounds { return s.gen.Bounds() }

// EnemyColor returns the display color of the named variant.
func (s *Session) EnemyColor(variant string) color.RGBA {
	if c, ok := s.colors[variant]; ok {
		return c
	}
	return fallbackEnemyColor
}
