package simulation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scavenger.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Food.Starting != 100 || cfg.Food.PerFood != 10 || cfg.Food.PerSoda != 20 {
		t.Errorf("food = %+v", cfg.Food)
	}
	if cfg.Turn.TurnDelay != 100*time.Millisecond || cfg.Turn.LevelStartDelay != 2*time.Second {
		t.Errorf("turn = %+v", cfg.Turn)
	}
	if cfg.Board.Columns != 8 || cfg.Board.Rows != 8 || cfg.Board.WallDurability != 3 {
		t.Errorf("board = %+v", cfg.Board)
	}
	if len(cfg.Enemies) != 2 || cfg.Enemies[0].Damage != 10 || cfg.Enemies[1].Damage != 20 {
		t.Errorf("enemies = %+v", cfg.Enemies)
	}
	if cfg.Metrics.Listen != "" {
		t.Errorf("metrics enabled by default: %q", cfg.Metrics.Listen)
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := writeFile(t, `
food:
  starting: 40
turn:
  turn_delay: 250ms
enemies:
  - name: rat
    damage: 5
    glyph: "r"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Food.Starting != 40 {
		t.Errorf("starting food = %d, want 40", cfg.Food.Starting)
	}
	if cfg.Food.PerSoda != 20 {
		t.Errorf("per_soda lost in overlay: %d", cfg.Food.PerSoda)
	}
	if cfg.Turn.TurnDelay != 250*time.Millisecond || cfg.Turn.NextLevelDelay != time.Second {
		t.Errorf("turn = %+v", cfg.Turn)
	}
	vs := cfg.Variants()
	if len(vs) != 1 || vs[0].Name != "rat" || vs[0].Glyph != 'r' || vs[0].SkipTurns != 0 {
		t.Errorf("variants = %+v", vs)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
	if _, err := LoadConfig(writeFile(t, "food: [1, 2")); err == nil {
		t.Error("malformed yaml accepted")
	}
	if _, err := LoadConfig(writeFile(t, "turn:\n  turn_delay: soon\n")); err == nil {
		t.Error("bad duration accepted")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"defaults", func(*Config) {}, ""},
		{"tiny board", func(c *Config) { c.Board.Columns = 2 }, "at least 3x3"},
		{"inverted walls", func(c *Config) { c.Board.Walls = Range{Min: 4, Max: 2} }, "board.walls"},
		{"crowded board", func(c *Config) { c.Board.Walls = Range{Min: 30, Max: 36} }, "inner cells"},
		{"no enemies", func(c *Config) { c.Enemies = nil }, "enemy variant"},
		{"harmless enemy", func(c *Config) { c.Enemies[0].Damage = 0 }, "damage must be greater"},
		{"enemy hit like a step", func(c *Config) { c.Enemies[0].Damage = 1 }, "damage must be greater than 1"},
		{"smallest visible hit", func(c *Config) { c.Enemies[0].Damage = 2 }, ""},
		{"no food", func(c *Config) { c.Food.Starting = 0 }, "food.starting"},
		{"negative delay", func(c *Config) { c.Turn.TurnDelay = -time.Millisecond }, "turn delays"},
		{"soda chance", func(c *Config) { c.Board.SodaChance = 1.5 }, "soda_chance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestWriteYAMLLoadsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Board.Seed = 42
	cfg.Player.Name = "ada"
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Board.Seed != 42 || got.Player.Name != "ada" || got.Turn.TurnDelay != cfg.Turn.TurnDelay {
		t.Errorf("reloaded config differs: board %+v player %+v", got.Board, got.Player)
	}
}

func TestTiming(t *testing.T) {
	cfg := DefaultConfig()
	tm := cfg.Timing()
	if tm.TurnDelay != cfg.Turn.TurnDelay || tm.NextLevelDelay != time.Second {
		t.Errorf("timing = %+v", tm)
	}
}
