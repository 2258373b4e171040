// Package coverage scores sensor layouts against weighted targets.
//
// A target is covered by the single best sensor in range: coverage falls
// linearly from 1 at the sensor center to 0 at its range. The target then
// contributes coverage times its movement. Layout fitness is the sum over
// targets, so it is never negative for non-negative movement.
package coverage

import (
	"math"

	"github.com/lixenwraith/vigil/genetic"
	"github.com/lixenwraith/vigil/genetic/fitness"
	"github.com/lixenwraith/vigil/geometry"
	"github.com/lixenwraith/vigil/sensor"
)

// Coverage returns how well s covers t, in [0, 1]
func Coverage(s sensor.Sensor, t sensor.Target) float64 {
	dist := geometry.Distance(s.X, s.Y, t.X, t.Y)
	return fitness.NormalizeFalloff(s.Range)(dist)
}

// Best returns the index and coverage of the best covering sensor
// Returns -1 when no sensor covers t, ties keep the earlier sensor
func Best(layout sensor.Layout, t sensor.Target) (int, float64) {
	best, bestCoverage := -1, 0.0
	for i, s := range layout {
		dist := geometry.Distance(s.X, s.Y, t.X, t.Y)
		if dist > s.Range {
			continue
		}
		if c := Coverage(s, t); best < 0 || c > bestCoverage {
			best, bestCoverage = i, c
		}
	}
	return best, bestCoverage
}

// Nearest returns the index of and distance to the closest sensor
// An empty layout yields (-1, +Inf)
func Nearest(layout sensor.Layout, t sensor.Target) (int, float64) {
	nearest, nearestDist := -1, math.Inf(1)
	for i, s := range layout {
		if d := geometry.Distance(s.X, s.Y, t.X, t.Y); d < nearestDist {
			nearest, nearestDist = i, d
		}
	}
	if nearest < 0 && len(layout) > 0 {
		nearest = 0
	}
	return nearest, nearestDist
}

// Fitness returns the movement weighted coverage of all targets
func Fitness(layout sensor.Layout, targets []sensor.Target) float64 {
	score := 0.0
	for _, t := range targets {
		_, best := Best(layout, t)
		score += best * t.Movement
	}
	return score
}

// Evaluator binds a target list for the genetic engine
func Evaluator(targets []sensor.Target) genetic.EvaluatorFunc[sensor.Layout, float64] {
	return func(layout sensor.Layout) float64 {
		return Fitness(layout, targets)
	}
}

// Contribution is one target's share of the layout fitness
type Contribution struct {
	Target   int     `json:"target"`
	Sensor   int     `json:"sensor"`
	Coverage float64 `json:"coverage"`
	Score    float64 `json:"score"`
}

// Breakdown returns per-target contributions in target order
// Sensor is -1 for targets outside every sensor range
func Breakdown(layout sensor.Layout, targets []sensor.Target) []Contribution {
	out := make([]Contribution, len(targets))
	for i, t := range targets {
		idx, best := Best(layout, t)
		out[i] = Contribution{
			Target:   i,
			Sensor:   idx,
			Coverage: best,
			Score:    best * t.Movement,
		}
	}
	return out
}
