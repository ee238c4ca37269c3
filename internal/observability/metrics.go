// Package observability exposes game metrics to Prometheus.
package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GameCollector bundles the game's Prometheus metrics. A nil collector
// accepts every call and records nothing.
type GameCollector struct {
	gatherer prometheus.Gatherer

	Moves            *prometheus.CounterVec
	PhaseTransitions *prometheus.CounterVec
	GameOvers        prometheus.Counter
	LevelsStarted    prometheus.Counter
	DaysSurvived     prometheus.Histogram
	FoodPoints       prometheus.Gauge
	Level            prometheus.Gauge
}

// NewGameCollector registers game metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewGameCollector(reg prometheus.Registerer) (*GameCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	moves, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scavenger_moves_total",
		Help: "Move attempts, labeled by mover kind and result.",
	}, []string{"mover", "result"}), "scavenger_moves_total")
	if err != nil {
		return nil, err
	}

	phases, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scavenger_phase_transitions_total",
		Help: "Turn phase transitions, labeled by the phase entered.",
	}, []string{"phase"}), "scavenger_phase_transitions_total")
	if err != nil {
		return nil, err
	}

	gameOvers, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scavenger_game_overs_total",
		Help: "Games ended by starvation.",
	}), "scavenger_game_overs_total")
	if err != nil {
		return nil, err
	}

	levels, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scavenger_levels_started_total",
		Help: "Levels set up, including restarts.",
	}), "scavenger_levels_started_total")
	if err != nil {
		return nil, err
	}

	days, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scavenger_days_survived",
		Help:    "Days survived per finished game.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21, 34},
	}), "scavenger_days_survived")
	if err != nil {
		return nil, err
	}

	food, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scavenger_food_points",
		Help: "Current food points.",
	}), "scavenger_food_points")
	if err != nil {
		return nil, err
	}

	level, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scavenger_level",
		Help: "Current day.",
	}), "scavenger_level")
	if err != nil {
		return nil, err
	}

	return &GameCollector{
		gatherer:         gatherer,
		Moves:            moves,
		PhaseTransitions: phases,
		GameOvers:        gameOvers,
		LevelsStarted:    levels,
		DaysSurvived:     days,
		FoodPoints:       food,
		Level:            level,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *GameCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler exposes a ready-to-use /metrics handler.
func (c *GameCollector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveMove counts one move attempt.
func (c *GameCollector) ObserveMove(mover, result string) {
	if c == nil || c.Moves == nil {
		return
	}
	c.Moves.WithLabelValues(mover, result).Inc()
}

// ObservePhase counts entering phase.
func (c *GameCollector) ObservePhase(phase string) {
	if c == nil || c.PhaseTransitions == nil {
		return
	}
	c.PhaseTransitions.WithLabelValues(phase).Inc()
}

// ObserveGameOver counts a finished game lasting days.
func (c *GameCollector) ObserveGameOver(days int) {
	if c == nil {
		return
	}
	if c.GameOvers != nil {
		c.GameOvers.Inc()
	}
	if c.DaysSurvived != nil {
		c.DaysSurvived.Observe(float64(days))
	}
}

// ObserveLevelStart counts a level setup and updates the day gauge.
func (c *GameCollector) ObserveLevelStart(level int) {
	if c == nil {
		return
	}
	if c.LevelsStarted != nil {
		c.LevelsStarted.Inc()
	}
	if c.Level != nil {
		c.Level.Set(float64(level))
	}
}

// SetFood updates the food gauge.
func (c *GameCollector) SetFood(food int) {
	if c == nil || c.FoodPoints == nil {
		return
	}
	c.FoodPoints.Set(float64(food))
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
