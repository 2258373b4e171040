// Package optimizer searches for a sensor layout maximizing movement weighted
// coverage of a target list. It drives the generic genetic engine with the
// sensor operators and the coverage model.
package optimizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/vigil/coverage"
	"github.com/lixenwraith/vigil/genetic"
	"github.com/lixenwraith/vigil/genetic/tracking"
	"github.com/lixenwraith/vigil/parameter"
	"github.com/lixenwraith/vigil/sensor"
)

// Result is the outcome of one run
type Result struct {
	RunID   string        `json:"run_id"`
	Seed    uint64        `json:"seed"`
	Best    sensor.Layout `json:"best"`
	Fitness float64       `json:"fitness"`
	// History holds one entry per generation plus the final evaluation
	History       []genetic.PoolStats[float64] `json:"history"`
	Summary       tracking.MetricBundle        `json:"summary"`
	Contributions []coverage.Contribution      `json:"contributions"`
}

// Option customizes a run
type Option func(*options)

type options struct {
	logger       *slog.Logger
	progress     genetic.ProgressFunc[float64]
	installation []sensor.Layout
}

// WithLogger sets the run logger, runs are silent by default
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithProgress receives the best fitness every report interval
func WithProgress(progress genetic.ProgressFunc[float64]) Option {
	return func(o *options) {
		o.progress = progress
	}
}

// WithInstallation seeds generation 0 with existing layouts
// Layouts are clamped to bounds and must match the configured sensor count
func WithInstallation(layouts ...sensor.Layout) Option {
	return func(o *options) {
		o.installation = append(o.installation, layouts...)
	}
}

// Run optimizes a layout of cfg.Sensors sensors for targets
// ctx is only consulted between generations
func Run(ctx context.Context, targets []sensor.Target, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := ValidateTargets(targets); err != nil {
		return nil, fmt.Errorf("invalid targets: %w", err)
	}

	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	bounds := sensor.DefaultBounds(cfg.GridSize)
	outside := 0
	for i, layout := range o.installation {
		if len(layout) != cfg.Sensors {
			return nil, fmt.Errorf("installation %d has %d sensors, want %d: %w", i+1, len(layout), cfg.Sensors, ErrInstallation)
		}
		for _, s := range layout {
			if !bounds.Contains(s) {
				outside++
			}
		}
	}

	engine := genetic.NewEngine[sensor.Layout, float64](
		coverage.Evaluator(targets),
		sensor.Initializer(cfg.Sensors, bounds),
		newSelector(cfg),
		sensor.Recombiner{},
		sensor.Mutator{Bounds: bounds},
		genetic.EngineConfig{
			PoolSize:         cfg.PopulationSize,
			EliteCount:       cfg.EliteCount,
			PerturbationRate: cfg.MutationRate,
			MaxIterations:    cfg.Generations,
			ReportInterval:   cfg.ReportInterval,
			Seed:             cfg.Seed,
		},
	)
	engine.SetCodec(sensor.Codec{Bounds: bounds})
	engine.InjectPopulation(o.installation...)

	runID := uuid.NewString()
	logger := o.logger.With("run_id", runID)
	logger.Info("run started",
		"seed", engine.Seed(),
		"sensors", cfg.Sensors,
		"targets", len(targets),
		"population", cfg.PopulationSize,
		"generations", cfg.Generations,
		"selection", selectionName(cfg),
		"installed", len(o.installation),
	)

	if outside > 0 {
		logger.Warn("installed sensors clamped to bounds", "sensors", outside)
	}

	engine.SetProgress(func(generation int, best float64) {
		logger.Info("generation", "n", generation, "best", best)
		if o.progress != nil {
			o.progress(generation, best)
		}
	})

	start := time.Now()
	best, err := engine.Run(ctx)
	if err != nil {
		logger.Warn("run aborted", "error", err)
		return nil, err
	}

	history := engine.History()
	result := &Result{
		RunID:         runID,
		Seed:          engine.Seed(),
		Best:          best.Data,
		Fitness:       best.Score,
		History:       history,
		Summary:       summarize(history, best.Score),
		Contributions: coverage.Breakdown(best.Data, targets),
	}

	logger.Info("run finished",
		"fitness", result.Fitness,
		"improvements", result.Summary.Get(tracking.MetricImprovements, 0),
		"elapsed", time.Since(start),
	)
	for i, s := range result.Best {
		logger.Debug("sensor", "n", i+1, "x", s.X, "y", s.Y, "range", s.Range)
	}

	return result, nil
}

func selectionName(cfg Config) string {
	if cfg.Selection == "" {
		return parameter.SelectionWindow
	}
	return cfg.Selection
}

func newSelector(cfg Config) genetic.Selector[sensor.Layout, float64] {
	switch cfg.Selection {
	case parameter.SelectionTournament:
		return &genetic.TournamentSelector[sensor.Layout, float64]{TournamentSize: cfg.TournamentSize}
	case parameter.SelectionRoulette:
		return &genetic.RouletteSelector[sensor.Layout, float64]{}
	default:
		return &genetic.WindowSelector[sensor.Layout, float64]{Window: cfg.ParentPool}
	}
}

// summarize folds the generation history into run level metrics
func summarize(history []genetic.PoolStats[float64], fitness float64) tracking.MetricBundle {
	var collector tracking.Collector = tracking.NewStandardCollector()

	improvements := 0
	for i, stats := range history {
		improved := 0.0
		if i > 0 && stats.BestScore > history[i-1].BestScore {
			improved = 1
			improvements++
		}
		collector.Collect(tracking.MetricBundle{
			tracking.MetricBestScore:   stats.BestScore,
			tracking.MetricWorstScore:  stats.WorstScore,
			tracking.MetricMeanScore:   stats.AverageScore,
			tracking.MetricStdDevScore: stats.StdDevScore,
			tracking.MetricDiversity:   stats.Diversity,
			tracking.MetricImproved:    improved,
		}, stats.Elapsed)
	}

	return collector.Finalize(tracking.MetricBundle{
		tracking.MetricImprovements: float64(improvements),
		"fitness":                   fitness,
	})
}
