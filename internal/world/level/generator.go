// Package level scatters a playable day: an open board ringed by outer
// walls, the player in one corner, the exit in the opposite one, and a
// random fill of destructible walls, pickups and enemies in between.
package level

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"chosenoffset.com/scavenger/internal/core/grid"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/entity/roster"
	"chosenoffset.com/scavenger/internal/logging"
	"chosenoffset.com/scavenger/internal/simulation"
	"chosenoffset.com/scavenger/internal/world/board"
)

// GeneratorConfig holds configuration for level generation
type GeneratorConfig struct {
	Columns        int // Playable width; the outer walls sit at -1 and Columns
	Rows           int // Playable height
	MinWalls       int
	MaxWalls       int
	MinPickups     int
	MaxPickups     int
	SodaChance     float64 // Probability a pickup is soda
	WallDurability int
	FoodPoints     int
	SodaPoints     int
	WallDamage     int
	PlayerMoveTime time.Duration
	Variants       []entity.Variant
	Seed           int64 // Random seed (0 = use current time)
}

// ConfigFromSimulation maps the game rules to a generator config.
func ConfigFromSimulation(c *simulation.Config) GeneratorConfig {
	return GeneratorConfig{
		Columns:        c.Board.Columns,
		Rows:           c.Board.Rows,
		MinWalls:       c.Board.Walls.Min,
		MaxWalls:       c.Board.Walls.Max,
		MinPickups:     c.Board.Pickups.Min,
		MaxPickups:     c.Board.Pickups.Max,
		SodaChance:     c.Board.SodaChance,
		WallDurability: c.Board.WallDurability,
		FoodPoints:     c.Food.PerFood,
		SodaPoints:     c.Food.PerSoda,
		WallDamage:     c.Player.WallDamage,
		PlayerMoveTime: c.Player.MoveTime,
		Variants:       c.Variants(),
		Seed:           c.Board.Seed,
	}
}

// Generator builds levels for the turn scheduler.
type Generator struct {
	config    GeneratorConfig
	rng       *rand.Rand
	resources entity.Resources
	log       logging.Logger
}

// NewGenerator creates a new level generator. Every player it creates
// reports food and exits to res.
func NewGenerator(config GeneratorConfig, res entity.Resources, log logging.Logger) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if log == nil {
		log = logging.Noop()
	}
	return &Generator{
		config:    config,
		rng:       rand.New(rand.NewSource(seed)),
		resources: res,
		log:       log.With(logging.String("component", "level")),
	}
}

// Bounds returns the board rectangle including the outer walls.
func (g *Generator) Bounds() grid.Bounds {
	return grid.Bounds{
		Min: grid.Position{X: -1, Y: -1},
		Max: grid.Position{X: g.config.Columns, Y: g.config.Rows},
	}
}

// EnemyCount returns the number of enemies on a day: log2 of the day,
// rounded down.
func EnemyCount(level int) int {
	if level < 2 {
		return 0
	}
	return int(math.Log2(float64(level)))
}

// SetupLevel implements turn.LevelBuilder.
func (g *Generator) SetupLevel(level int, r *roster.Roster) (*board.Stage, error) {
	cfg := g.config
	if cfg.Columns < 3 || cfg.Rows < 3 {
		return nil, fmt.Errorf("board %dx%d is too small", cfg.Columns, cfg.Rows)
	}
	if len(cfg.Variants) == 0 {
		return nil, fmt.Errorf("no enemy variants configured")
	}

	b := board.New(g.Bounds())
	var occupants []entity.Occupant
	for _, p := range g.outerRing() {
		occupants = append(occupants, entity.NewOuterWall(p))
	}

	player := entity.NewPlayer(grid.Position{X: 0, Y: 0}, cfg.WallDamage, cfg.PlayerMoveTime, g.resources)
	exit := entity.NewExit(grid.Position{X: cfg.Columns - 1, Y: cfg.Rows - 1})
	occupants = append(occupants, player, exit)

	cells := g.innerCells()
	take := func() (grid.Position, bool) {
		if len(cells) == 0 {
			return grid.Position{}, false
		}
		p := cells[len(cells)-1]
		cells = cells[:len(cells)-1]
		return p, true
	}

	walls := g.between(cfg.MinWalls, cfg.MaxWalls)
	for i := 0; i < walls; i++ {
		p, ok := take()
		if !ok {
			break
		}
		occupants = append(occupants, entity.NewWall(i, p, cfg.WallDurability))
	}

	pickups := g.between(cfg.MinPickups, cfg.MaxPickups)
	for i := 0; i < pickups; i++ {
		p, ok := take()
		if !ok {
			break
		}
		if g.rng.Float64() < cfg.SodaChance {
			occupants = append(occupants, entity.NewSoda(i, p, cfg.SodaPoints))
		} else {
			occupants = append(occupants, entity.NewFood(i, p, cfg.FoodPoints))
		}
	}

	enemies := EnemyCount(level)
	for i := 0; i < enemies; i++ {
		p, ok := take()
		if !ok {
			g.log.Warn("board full, dropping enemies", logging.Int("day", level), logging.Int("placed", i))
			break
		}
		v := cfg.Variants[g.rng.Intn(len(cfg.Variants))]
		e := entity.NewEnemy(i, v, p)
		r.Register(e)
		occupants = append(occupants, e)
	}

	for _, o := range occupants {
		if err := b.Place(o); err != nil {
			return nil, fmt.Errorf("failed to build day %d: %w", level, err)
		}
	}

	g.log.Debug("level generated",
		logging.Int("day", level),
		logging.Int("walls", walls),
		logging.Int("pickups", pickups),
		logging.Int("enemies", r.Len()))

	return &board.Stage{Level: level, Board: b, Player: player, Exit: exit}, nil
}

// between returns a random count in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

func (g *Generator) outerRing() []grid.Position {
	cols, rows := g.config.Columns, g.config.Rows
	var ring []grid.Position
	for y := -1; y <= rows; y++ {
		for x := -1; x <= cols; x++ {
			if x == -1 || x == cols || y == -1 || y == rows {
				ring = append(ring, grid.Position{X: x, Y: y})
			}
		}
	}
	return ring
}

// innerCells returns the scatter cells in random order. The edge rows and
// columns of the playable area stay clear so the exit is always reachable.
func (g *Generator) innerCells() []grid.Position {
	var cells []grid.Position
	for x := 1; x < g.config.Columns-1; x++ {
		for y := 1; y < g.config.Rows-1; y++ {
			cells = append(cells, grid.Position{X: x, Y: y})
		}
	}
	g.rng.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	return cells
}
