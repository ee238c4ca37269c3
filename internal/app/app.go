// Package app builds a ready-to-run game session from command-line flags:
// config, logger, score store, sound, metrics and the session itself. Both
// front-end commands start here.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"chosenoffset.com/scavenger/internal/audio"
	"chosenoffset.com/scavenger/internal/game"
	"chosenoffset.com/scavenger/internal/leaderboard"
	"chosenoffset.com/scavenger/internal/logging"
	"chosenoffset.com/scavenger/internal/observability"
	"chosenoffset.com/scavenger/internal/simulation"
	"github.com/prometheus/client_golang/prometheus"
)

// Flags are the options shared by every front-end.
type Flags struct {
	ConfigPath  string
	MetricsAddr string
	Seed        int64
	Mute        bool
	WriteConfig string
}

// ParseFlags parses args into Flags.
func ParseFlags(name string, args []string, output io.Writer) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to a YAML file overriding the default rules")
	fs.StringVar(&f.MetricsAddr, "metrics", "", "HTTP address for Prometheus /metrics (overrides metrics.listen)")
	fs.Int64Var(&f.Seed, "seed", 0, "Board seed (overrides board.seed; 0 keeps the config value)")
	fs.BoolVar(&f.Mute, "mute", false, "Disable sound")
	fs.StringVar(&f.WriteConfig, "write-config", "", "Write the effective config to this path and exit")
	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	return f, nil
}

// App is a built session and the services around it.
type App struct {
	Config  *simulation.Config
	Log     logging.Logger
	Session *game.Session

	sounds     *audio.SoundManager
	metricsSrv *http.Server
}

// Options carries process-level dependencies into New.
type Options struct {
	LogOutput io.Writer
	// Registerer receives the game metrics; nil uses a private registry.
	Registerer prometheus.Registerer
}

// LoadConfig reads the config named by the flags and applies overrides.
func LoadConfig(f Flags) (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if f.ConfigPath != "" {
		var err error
		if cfg, err = simulation.LoadConfig(f.ConfigPath); err != nil {
			return nil, err
		}
	}
	if f.Seed != 0 {
		cfg.Board.Seed = f.Seed
	}
	if f.MetricsAddr != "" {
		cfg.Metrics.Listen = f.MetricsAddr
	}
	if f.Mute {
		cfg.Audio.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// New builds the session described by cfg. Sound and the metrics server
// are best effort: failures are logged and the game runs without them.
func New(cfg *simulation.Config, opts Options) (*App, error) {
	logCfg := cfg.LoggerConfig()
	logCfg.Output = opts.LogOutput
	log := logging.NewFromEnv(logCfg)

	a := &App{Config: cfg, Log: log}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := observability.NewGameCollector(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise metrics collector: %w", err)
	}
	a.metricsSrv = serveMetrics(cfg.Metrics.Listen, metrics, log)

	var sounds game.Sounds
	if cfg.Audio.Enabled {
		a.sounds = audio.NewSoundManager(cfg.Audio.Volume, log)
		if err := a.sounds.Initialize(); err != nil {
			log.Warn("audio initialization failed, running silent", logging.Err(err))
		}
		sounds = a.sounds
	}

	a.Session, err = game.NewSession(game.Options{
		Config:  cfg,
		Logger:  log,
		Scores:  leaderboard.Open(cfg.Leaderboard.Path, log),
		Sounds:  sounds,
		Metrics: metrics,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := a.Session.Start(); err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to start game: %w", err)
	}
	log.Info("game started",
		logging.Int("columns", cfg.Board.Columns),
		logging.Int("rows", cfg.Board.Rows),
		logging.Any("seed", cfg.Board.Seed),
	)
	return a, nil
}

// Close stops sound and the metrics server.
func (a *App) Close() {
	if a.sounds != nil {
		a.sounds.Cleanup()
	}
	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.metricsSrv.Shutdown(ctx)
	}
}

func serveMetrics(addr string, collector *observability.GameCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server exited", logging.Err(err))
		}
	}()

	log.Info("serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
