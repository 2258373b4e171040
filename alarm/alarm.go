// Package alarm turns an observation of a target into an alarm confidence.
//
// Three fuzzy memberships are combined with fixed weights:
//   - movement intensity, stepping up at 3 and 7
//   - distance to the nearest sensor, stepping down past 2 and 4
//   - time of day, night (22:00 to 06:00 inclusive) versus day
//
// The result lies in [0, 1] and is classified into a Status.
package alarm

import (
	"github.com/lixenwraith/vigil/coverage"
	"github.com/lixenwraith/vigil/genetic/fitness"
	"github.com/lixenwraith/vigil/genetic/tracking"
	"github.com/lixenwraith/vigil/parameter"
	"github.com/lixenwraith/vigil/sensor"
)

// Observation metric keys
const (
	MetricMovement = "movement"
	MetricDistance = "distance"
	MetricHour     = "hour"
)

// MovementLevel maps motion intensity to a membership level
var MovementLevel = fitness.NormalizeBelow(parameter.AlarmMovementLevelHigh,
	fitness.Step{Threshold: parameter.AlarmMovementLow, Level: parameter.AlarmMovementLevelLow},
	fitness.Step{Threshold: parameter.AlarmMovementHigh, Level: parameter.AlarmMovementLevelMid},
)

// DistanceLevel maps nearest-sensor distance to a membership level
var DistanceLevel = fitness.NormalizeAbove(parameter.AlarmDistanceLevelNear,
	fitness.Step{Threshold: parameter.AlarmDistanceFar, Level: parameter.AlarmDistanceLevelFar},
	fitness.Step{Threshold: parameter.AlarmDistanceNear, Level: parameter.AlarmDistanceLevelMid},
)

// TimeLevel maps an hour of day to a membership level
func TimeLevel(hour float64) float64 {
	if hour >= parameter.AlarmNightStart || hour <= parameter.AlarmNightEnd {
		return parameter.AlarmTimeLevelNight
	}
	return parameter.AlarmTimeLevelDay
}

// model is summed in movement, distance, time order
var model fitness.Aggregator = &fitness.WeightedAggregator{
	Terms: []fitness.Term{
		{Key: MetricMovement, Weight: parameter.AlarmWeightMovement, Normalize: MovementLevel},
		{Key: MetricDistance, Weight: parameter.AlarmWeightDistance, Normalize: DistanceLevel},
		{Key: MetricHour, Weight: parameter.AlarmWeightTime, Normalize: TimeLevel},
	},
}

// Score returns the alarm confidence for a target moving with the given intensity
// at dist from the nearest sensor during hour. Any hour value is accepted as is.
func Score(movement, dist, hour float64) float64 {
	return model.Calculate(tracking.MetricBundle{
		MetricMovement: movement,
		MetricDistance: dist,
		MetricHour:     hour,
	})
}

// Assessment is the alarm verdict for one target
type Assessment struct {
	Target   int     `json:"target"`
	Movement float64 `json:"movement"`
	Sensor   int     `json:"sensor"`
	Distance float64 `json:"distance"`
	Score    float64 `json:"score"`
	Status   Status  `json:"status"`
	Coverage float64 `json:"coverage"`
}

// Assess scores every target against its nearest sensor of layout, in target order
func Assess(layout sensor.Layout, targets []sensor.Target, hour float64) []Assessment {
	out := make([]Assessment, len(targets))
	for i, t := range targets {
		idx, dist := coverage.Nearest(layout, t)
		_, cov := coverage.Best(layout, t)
		score := Score(t.Movement, dist, hour)
		out[i] = Assessment{
			Target:   i,
			Movement: t.Movement,
			Sensor:   idx,
			Distance: dist,
			Score:    score,
			Status:   Classify(score),
			Coverage: cov,
		}
	}
	return out
}
