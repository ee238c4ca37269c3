// Package simulation provides configuration for the game rules.
// Embedded defaults are overlaid by an optional YAML file so each run can
// tune pacing, the food economy, the board and the enemy roster.
package simulation

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"chosenoffset.com/scavenger/internal/core/gamestate"
	"chosenoffset.com/scavenger/internal/entity"
	"chosenoffset.com/scavenger/internal/entity/turn"
	"chosenoffset.com/scavenger/internal/logging"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game rules
type Config struct {
	Turn        TurnConfig        `yaml:"turn"`
	Food        FoodConfig        `yaml:"food"`
	Player      PlayerConfig      `yaml:"player"`
	Board       BoardConfig       `yaml:"board"`
	Enemies     []EnemyConfig     `yaml:"enemies"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Logging     LoggingConfig     `yaml:"logging"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Audio       AudioConfig       `yaml:"audio"`
	Display     DisplayConfig     `yaml:"display"`
}

// TurnConfig defines the scheduler delays
type TurnConfig struct {
	LevelStartDelay time.Duration `yaml:"level_start_delay"`
	NextLevelDelay  time.Duration `yaml:"next_level_delay"`
	TurnDelay       time.Duration `yaml:"turn_delay"`
}

// FoodConfig defines the food economy
type FoodConfig struct {
	Starting int `yaml:"starting"` // Food points at the start of a game
	PerFood  int `yaml:"per_food"` // Gain from a food pickup
	PerSoda  int `yaml:"per_soda"` // Gain from a soda pickup
}

// PlayerConfig defines the player
type PlayerConfig struct {
	Name       string        `yaml:"name"`        // Name stored with a best score
	WallDamage int           `yaml:"wall_damage"` // Durability removed per chop
	MoveTime   time.Duration `yaml:"move_time"`
}

// Range is an inclusive integer range
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// BoardConfig defines the level layout
type BoardConfig struct {
	Columns        int     `yaml:"columns"`
	Rows           int     `yaml:"rows"`
	Walls          Range   `yaml:"walls"`
	Pickups        Range   `yaml:"pickups"`
	SodaChance     float64 `yaml:"soda_chance"` // Probability a pickup is soda rather than food
	WallDurability int     `yaml:"wall_durability"`
	Seed           int64   `yaml:"seed"` // 0 seeds from the clock
}

// EnemyConfig defines one enemy variant
type EnemyConfig struct {
	Name      string        `yaml:"name"`
	Damage    int           `yaml:"damage"`
	MoveTime  time.Duration `yaml:"move_time"`
	SkipTurns int           `yaml:"skip_turns"`
	Glyph     string        `yaml:"glyph"`
	Color     string        `yaml:"color"` // #rrggbb
}

// LeaderboardConfig defines where scores are kept
type LeaderboardConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig selects the log level and handler
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// AudioConfig configures sound cues
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// DisplayConfig configures the windowed front-end
type DisplayConfig struct {
	TileSize int `yaml:"tile_size"`
	Scale    int `yaml:"scale"`
	TPS      int `yaml:"tps"`
}

// DefaultConfig returns the embedded defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("simulation: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// LoadConfig loads the defaults and overlays the YAML file at path. Only
// keys present in the file are changed; a non-empty enemies list replaces
// the default roster. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects rules the game cannot run with.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Turn.LevelStartDelay >= 0 && c.Turn.NextLevelDelay >= 0 && c.Turn.TurnDelay >= 0,
		"turn delays must not be negative")
	check(c.Food.Starting > 0, "food.starting must be positive, got %d", c.Food.Starting)
	check(c.Food.PerFood >= 0 && c.Food.PerSoda >= 0, "food gains must not be negative")
	check(c.Player.WallDamage > 0, "player.wall_damage must be positive, got %d", c.Player.WallDamage)

	b := c.Board
	check(b.Columns >= 3 && b.Rows >= 3, "board must be at least 3x3, got %dx%d", b.Columns, b.Rows)
	check(b.Walls.Min >= 0 && b.Walls.Min <= b.Walls.Max, "board.walls range %d..%d is invalid", b.Walls.Min, b.Walls.Max)
	check(b.Pickups.Min >= 0 && b.Pickups.Min <= b.Pickups.Max, "board.pickups range %d..%d is invalid", b.Pickups.Min, b.Pickups.Max)
	check(b.SodaChance >= 0 && b.SodaChance <= 1, "board.soda_chance must be in [0,1], got %v", b.SodaChance)
	check(b.WallDurability > 0, "board.wall_durability must be positive, got %d", b.WallDurability)
	if b.Columns >= 3 && b.Rows >= 3 {
		inner := c.InnerCells()
		check(b.Walls.Max+b.Pickups.Max <= inner,
			"board has %d inner cells, fewer than %d walls and %d pickups", inner, b.Walls.Max, b.Pickups.Max)
	}

	check(len(c.Enemies) > 0, "at least one enemy variant is required")
	for i, e := range c.Enemies {
		check(e.Name != "", "enemies[%d] has no name", i)
		// A hit equal to the step cost would not be shown.
		check(e.Damage > gamestate.StepCost, "enemy %q: damage must be greater than %d, got %d", e.Name, gamestate.StepCost, e.Damage)
		check(e.MoveTime >= 0, "enemy %q: move_time must not be negative", e.Name)
		check(e.SkipTurns >= 0, "enemy %q: skip_turns must not be negative", e.Name)
	}

	check(c.Display.TileSize > 0 && c.Display.Scale > 0 && c.Display.TPS > 0,
		"display tile_size, scale and tps must be positive")

	return errors.Join(errs...)
}

// InnerCells returns the number of cells scattered with walls, pickups and
// enemies: the board minus its edge rows and columns.
func (c *Config) InnerCells() int {
	return (c.Board.Columns - 2) * (c.Board.Rows - 2)
}

// Timing returns the scheduler delays.
func (c *Config) Timing() turn.Timing {
	return turn.Timing{
		LevelStartDelay: c.Turn.LevelStartDelay,
		NextLevelDelay:  c.Turn.NextLevelDelay,
		TurnDelay:       c.Turn.TurnDelay,
	}
}

// Variants returns the enemy variants in configuration order.
func (c *Config) Variants() []entity.Variant {
	out := make([]entity.Variant, len(c.Enemies))
	for i, e := range c.Enemies {
		out[i] = e.Variant()
	}
	return out
}

// Variant converts the config entry to an entity variant.
func (e EnemyConfig) Variant() entity.Variant {
	glyph := 'E'
	for _, r := range e.Glyph {
		glyph = r
		break
	}
	return entity.Variant{
		Name:      e.Name,
		Damage:    e.Damage,
		MoveTime:  e.MoveTime,
		SkipTurns: e.SkipTurns,
		Glyph:     glyph,
	}
}

// LoggerConfig returns the logging settings.
func (c *Config) LoggerConfig() logging.Config {
	return logging.Config{Level: c.Logging.Level, Format: c.Logging.Format}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
