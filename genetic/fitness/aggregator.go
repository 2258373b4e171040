package fitness

import "github.com/lixenwraith/vigil/genetic/tracking"

// Aggregator calculates a score from collected metrics
type Aggregator interface {
	Calculate(metrics tracking.MetricBundle) float64
}

// NormalizeFunc converts a raw metric to a 0-1 score
type NormalizeFunc func(raw float64) float64

// Step maps raw values past Threshold to Level
type Step struct {
	Threshold float64
	Level     float64
}

// NormalizeBelow returns the Level of the first step whose Threshold exceeds raw, else fallback
// Steps are tested in order with strict comparison
func NormalizeBelow(fallback float64, steps ...Step) NormalizeFunc {
	return func(raw float64) float64 {
		for _, s := range steps {
			if raw < s.Threshold {
				return s.Level
			}
		}
		return fallback
	}
}

// NormalizeAbove returns the Level of the first step whose Threshold raw exceeds, else fallback
// Steps are tested in order with strict comparison
func NormalizeAbove(fallback float64, steps ...Step) NormalizeFunc {
	return func(raw float64) float64 {
		for _, s := range steps {
			if raw > s.Threshold {
				return s.Level
			}
		}
		return fallback
	}
}

// NormalizeFalloff creates a linear falloff: 1 at zero, 0 at and beyond reach
func NormalizeFalloff(reach float64) NormalizeFunc {
	return func(raw float64) float64 {
		if raw > reach {
			return 0
		}
		if reach <= 0 {
			// only raw == 0 reaches a zero-width falloff
			return 1
		}
		v := 1 - raw/reach
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
}
