package optimizer

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/vigil/parameter"
	"github.com/lixenwraith/vigil/sensor"
)

// Configuration errors, wrapped with the offending value by Validate
var (
	ErrSensorCount    = errors.New("sensor count must be at least 1")
	ErrPopulationSize = errors.New("population size must be at least 2")
	ErrGenerations    = errors.New("generations must not be negative")
	ErrMutationRate   = errors.New("mutation rate must be within [0, 1]")
	ErrGridSize       = errors.New("grid size must be positive and finite")
	ErrEliteCount     = errors.New("elite count must be within [0, population size]")
	ErrParentPool     = errors.New("parent pool must be within [1, population size]")
	ErrReportInterval = errors.New("report interval must not be negative")
	ErrSelection      = errors.New("unknown selection strategy")
	ErrTargetMovement = errors.New("target movement must be non-negative and finite")
	ErrTargetPosition = errors.New("target position must be finite")
	ErrInstallation   = errors.New("installation does not match sensor count")
)

// Config holds the tuning of one optimization run
type Config struct {
	Sensors        int     `toml:"sensors" json:"sensors"`
	GridSize       float64 `toml:"grid_size" json:"grid_size"`
	PopulationSize int     `toml:"population_size" json:"population_size"`
	Generations    int     `toml:"generations" json:"generations"`
	MutationRate   float64 `toml:"mutation_rate" json:"mutation_rate"`
	EliteCount     int     `toml:"elite_count" json:"elite_count"`
	ParentPool     int     `toml:"parent_pool" json:"parent_pool"`
	ReportInterval int     `toml:"report_interval" json:"report_interval"`
	Selection      string  `toml:"selection" json:"selection"`
	TournamentSize int     `toml:"tournament_size" json:"tournament_size"`
	// Seed 0 draws a random seed, reported back in Result
	Seed uint64 `toml:"seed" json:"seed"`
}

// DefaultConfig returns the standard tuning
func DefaultConfig() Config {
	return Config{
		Sensors:        parameter.DefaultSensorCount,
		GridSize:       parameter.GridSize,
		PopulationSize: parameter.GAPoolSize,
		Generations:    parameter.GAGenerations,
		MutationRate:   parameter.GAMutationRate,
		EliteCount:     parameter.GAEliteCount,
		ParentPool:     parameter.GAParentPool,
		ReportInterval: parameter.GAReportInterval,
		Selection:      parameter.SelectionWindow,
		TournamentSize: parameter.GATournamentSize,
	}
}

// Validate reports the first configuration violation
func (c Config) Validate() error {
	switch {
	case c.Sensors < 1:
		return fmt.Errorf("sensors %d: %w", c.Sensors, ErrSensorCount)
	case c.PopulationSize < 2:
		return fmt.Errorf("population %d: %w", c.PopulationSize, ErrPopulationSize)
	case c.Generations < 0:
		return fmt.Errorf("generations %d: %w", c.Generations, ErrGenerations)
	case math.IsNaN(c.MutationRate) || c.MutationRate < 0 || c.MutationRate > 1:
		return fmt.Errorf("mutation rate %v: %w", c.MutationRate, ErrMutationRate)
	case math.IsNaN(c.GridSize) || math.IsInf(c.GridSize, 0) || c.GridSize <= 0:
		return fmt.Errorf("grid size %v: %w", c.GridSize, ErrGridSize)
	case c.EliteCount < 0 || c.EliteCount > c.PopulationSize:
		return fmt.Errorf("elite count %d: %w", c.EliteCount, ErrEliteCount)
	case c.ParentPool < 1 || c.ParentPool > c.PopulationSize:
		return fmt.Errorf("parent pool %d: %w", c.ParentPool, ErrParentPool)
	case c.ReportInterval < 0:
		return fmt.Errorf("report interval %d: %w", c.ReportInterval, ErrReportInterval)
	}

	switch c.Selection {
	case "", parameter.SelectionWindow, parameter.SelectionRoulette:
	case parameter.SelectionTournament:
		if c.TournamentSize < 1 {
			return fmt.Errorf("tournament size %d: %w", c.TournamentSize, ErrSelection)
		}
	default:
		return fmt.Errorf("selection %q: %w", c.Selection, ErrSelection)
	}

	return nil
}

// ValidateTargets rejects targets with non-finite coordinates or negative or non-finite movement
func ValidateTargets(targets []sensor.Target) error {
	for i, t := range targets {
		if !finite(t.X) || !finite(t.Y) {
			return fmt.Errorf("target %d position (%v, %v): %w", i+1, t.X, t.Y, ErrTargetPosition)
		}
		if !finite(t.Movement) || t.Movement < 0 {
			return fmt.Errorf("target %d movement %v: %w", i+1, t.Movement, ErrTargetMovement)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
