// Package gamestate owns the state that outlives a level: food points, the
// day counter and the best score. It decides when the game is over and
// asks the turn scheduler to change phase; it never changes phase itself.
package gamestate

import (
	"fmt"

	"chosenoffset.com/scavenger/internal/logging"
)

// StepCost is the food spent by every player move attempt.
const StepCost = 1

// Record is a persisted best score.
type Record struct {
	Score      int
	PlayerName string
}

// ScoreStore persists the best score. LoadBestScore never fails; a missing
// or unreadable store yields the zero Record.
type ScoreStore interface {
	LoadBestScore() Record
	RecordScore(score int, name string) error
}

// Lifecycle receives the transitions the controller triggers.
type Lifecycle interface {
	GameOver()
	Restarted()
	LevelExitReached()
}

// FoodChange is sent to observers after every applied delta.
type FoodChange struct {
	Food   int
	Delta  int
	Notify bool // false for the per-step decay
}

// Options configures a Controller.
type Options struct {
	StartingFood int
	PlayerName   string
	Scores       ScoreStore
	Logger       logging.Logger
}

// Controller is the food economy and game lifecycle.
type Controller struct {
	startingFood int
	playerName   string
	food         int
	level        int
	over         bool
	best         Record

	scores    ScoreStore
	lifecycle Lifecycle
	log       logging.Logger

	// Callbacks
	OnFoodChanged func(change FoodChange)
	OnGameOver    func(level int)
	OnBestScore   func(best Record)
}

// NewController creates the controller for a new game on day 1.
func NewController(opts Options) *Controller {
	log := opts.Logger
	if log == nil {
		log = logging.Noop()
	}
	return &Controller{
		startingFood: opts.StartingFood,
		playerName:   opts.PlayerName,
		food:         opts.StartingFood,
		level:        1,
		scores:       opts.Scores,
		log:          log.With(logging.String("component", "gamestate")),
	}
}

// Bind attaches the scheduler that carries out lifecycle transitions.
func (c *Controller) Bind(l Lifecycle) {
	c.lifecycle = l
}

// Food returns the current food points.
func (c *Controller) Food() int { return c.food }

// StartingFood returns the food a new game starts with.
func (c *Controller) StartingFood() int { return c.startingFood }

// Level returns the current day, starting at 1.
func (c *Controller) Level() int { return c.level }

// IsOver reports whether the game has ended.
func (c *Controller) IsOver() bool { return c.over }

// Best returns the best score as of the last level or game boundary.
func (c *Controller) Best() Record { return c.best }

// ApplyFoodDelta adds delta to the food points and ends the game when the
// total drops to zero or below. It returns the delta the UI should show:
// the per-step decay of exactly -1 is returned as 0 and not notified.
func (c *Controller) ApplyFoodDelta(delta int) int {
	if delta == 0 {
		return 0
	}
	c.food += delta

	notifyDelta := delta
	if delta == -StepCost {
		notifyDelta = 0
	}
	if c.OnFoodChanged != nil {
		c.OnFoodChanged(FoodChange{Food: c.food, Delta: delta, Notify: notifyDelta != 0})
	}

	if c.food <= 0 {
		c.TriggerGameOver()
	}
	return notifyDelta
}

// TriggerGameOver ends the game once; later calls do nothing until Restart.
func (c *Controller) TriggerGameOver() {
	if c.over {
		return
	}
	c.over = true
	c.log.Info("game over", logging.Int("day", c.level), logging.Int("food", c.food))

	if c.scores != nil {
		if err := c.scores.RecordScore(c.level, c.playerName); err != nil {
			c.log.Warn("failed to record score", logging.Err(fmt.Errorf("day %d: %w", c.level, err)))
		}
	}
	c.refreshBest()

	if c.OnGameOver != nil {
		c.OnGameOver(c.level)
	}
	if c.lifecycle != nil {
		c.lifecycle.GameOver()
	}
}

// Restart resets the food points and day counter and sends the scheduler
// back to level setup.
func (c *Controller) Restart() {
	c.food = c.startingFood
	c.level = 1
	c.over = false
	c.log.Info("restart", logging.Int("food", c.food))

	if c.OnFoodChanged != nil {
		c.OnFoodChanged(FoodChange{Food: c.food})
	}
	if c.lifecycle != nil {
		c.lifecycle.Restarted()
	}
}

// OnLevelExitReached starts the transition to the next day, unless the
// player starved on the same move.
func (c *Controller) OnLevelExitReached() {
	if c.over || c.food <= 0 {
		c.log.Debug("level exit ignored", logging.Int("food", c.food))
		return
	}
	c.refreshBest()
	if c.lifecycle != nil {
		c.lifecycle.LevelExitReached()
	}
}

// AdvanceLevel moves to the next day. The scheduler calls it when the
// delayed level transition fires.
func (c *Controller) AdvanceLevel() {
	c.level++
}

func (c *Controller) refreshBest() {
	if c.scores == nil {
		return
	}
	c.best = c.scores.LoadBestScore()
	if c.OnBestScore != nil {
		c.OnBestScore(c.best)
	}
}
