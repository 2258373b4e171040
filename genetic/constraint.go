package genetic

import "math/rand/v2"

// ParameterBounds defines min/max for a single parameter
type ParameterBounds struct {
	Min, Max float64
}

// Clamp enforces bounds on v
func (b ParameterBounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Contains reports whether v lies within bounds, edges included
func (b ParameterBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Uniform draws a value uniformly from [Min, Max)
func (b ParameterBounds) Uniform(rng *rand.Rand) float64 {
	return b.Min + rng.Float64()*(b.Max-b.Min)
}

// Jitter offsets v uniformly within [-spread, spread) and clamps the result
func (b ParameterBounds) Jitter(v, spread float64, rng *rand.Rand) float64 {
	return b.Clamp(v + (rng.Float64()-0.5)*2*spread)
}
