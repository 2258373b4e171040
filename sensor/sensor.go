// Package sensor defines the placement domain (sensors, targets, layouts)
// and the population operators the optimizer breeds layouts with.
package sensor

import (
	"fmt"

	"github.com/lixenwraith/vigil/genetic"
	"github.com/lixenwraith/vigil/parameter"
)

// Sensor is a detector at (X, Y) covering a disc of radius Range
type Sensor struct {
	X     float64 `json:"x" toml:"x"`
	Y     float64 `json:"y" toml:"y"`
	Range float64 `json:"range" toml:"range"`
}

func (s Sensor) String() string {
	return fmt.Sprintf("(%.1f, %.1f) r=%.1f", s.X, s.Y, s.Range)
}

// Target is a point of interest weighted by its activity intensity
type Target struct {
	X        float64 `json:"x" toml:"x"`
	Y        float64 `json:"y" toml:"y"`
	Movement float64 `json:"movement" toml:"movement"`
}

// Layout is an ordered set of sensors, index is significant
type Layout []Sensor

// Clone returns a layout sharing no storage with l
func (l Layout) Clone() Layout {
	if l == nil {
		return nil
	}
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Bounds holds the per-gene constraints of a sensor
type Bounds struct {
	X     genetic.ParameterBounds
	Y     genetic.ParameterBounds
	Range genetic.ParameterBounds
	// Spawn bounds the radius of freshly generated sensors
	Spawn genetic.ParameterBounds
}

// DefaultBounds returns sensor bounds for a square plane of side gridSize
func DefaultBounds(gridSize float64) Bounds {
	return Bounds{
		X:     genetic.ParameterBounds{Min: 0, Max: gridSize},
		Y:     genetic.ParameterBounds{Min: 0, Max: gridSize},
		Range: genetic.ParameterBounds{Min: parameter.SensorRangeMin, Max: parameter.SensorRangeMax},
		Spawn: genetic.ParameterBounds{Min: parameter.SensorSpawnRangeMin, Max: parameter.SensorSpawnRangeMax},
	}
}

// Clamp pulls every gene of s into bounds
func (b Bounds) Clamp(s Sensor) Sensor {
	return Sensor{
		X:     b.X.Clamp(s.X),
		Y:     b.Y.Clamp(s.Y),
		Range: b.Range.Clamp(s.Range),
	}
}

// Contains reports whether every gene of s is within bounds
func (b Bounds) Contains(s Sensor) bool {
	return b.X.Contains(s.X) && b.Y.Contains(s.Y) && b.Range.Contains(s.Range)
}
