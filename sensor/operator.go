package sensor

import (
	"math/rand/v2"

	"github.com/lixenwraith/vigil/genetic"
	"github.com/lixenwraith/vigil/parameter"
)

// Random draws one sensor: X, Y uniform over the plane, Range uniform over the spawn bounds
func Random(bounds Bounds, rng *rand.Rand) Sensor {
	x := bounds.X.Uniform(rng)
	y := bounds.Y.Uniform(rng)
	r := bounds.Spawn.Uniform(rng)
	return Sensor{X: x, Y: y, Range: r}
}

// RandomLayout draws n independent sensors
func RandomLayout(n int, bounds Bounds, rng *rand.Rand) Layout {
	layout := make(Layout, n)
	for i := range layout {
		layout[i] = Random(bounds, rng)
	}
	return layout
}

// Perturb returns a sibling of s with X and Y offset by up to one unit and Range by up to half
// a unit, each clamped to bounds. Draw order is X, Y, Range.
func Perturb(s Sensor, bounds Bounds, rng *rand.Rand) Sensor {
	x := bounds.X.Jitter(s.X, parameter.SensorPositionJitter, rng)
	y := bounds.Y.Jitter(s.Y, parameter.SensorPositionJitter, rng)
	r := bounds.Range.Jitter(s.Range, parameter.SensorRangeJitter, rng)
	return Sensor{X: x, Y: y, Range: r}
}

// Crossover builds a child taking each sensor from a or b on an independent fair coin
func Crossover(a, b Layout, rng *rand.Rand) Layout {
	return genetic.Uniform(a, b, parameter.GACrossoverMixProbability, rng)
}

// Mutate returns a sibling layout where each sensor is perturbed with probability rate
func Mutate(l Layout, rate float64, bounds Bounds, rng *rand.Rand) Layout {
	out := make(Layout, len(l))
	for i, s := range l {
		if rng.Float64() < rate {
			s = Perturb(s, bounds, rng)
		}
		out[i] = s
	}
	return out
}

// Mutator adapts Mutate to the genetic engine
type Mutator struct {
	Bounds Bounds
}

// Perturb implements genetic.Perturbator
func (m Mutator) Perturb(l Layout, rate float64, rng *rand.Rand) Layout {
	return Mutate(l, rate, m.Bounds, rng)
}

// Recombiner adapts Crossover to the genetic engine
type Recombiner struct{}

// Combine implements genetic.Combiner, a single parent is copied
func (Recombiner) Combine(parents []genetic.Candidate[Layout, float64], rng *rand.Rand) Layout {
	switch len(parents) {
	case 0:
		return nil
	case 1:
		return parents[0].Data.Clone()
	}
	return Crossover(parents[0].Data, parents[1].Data, rng)
}

// Initializer returns a generator of random layouts of n sensors
func Initializer(n int, bounds Bounds) genetic.InitializerFunc[Layout] {
	return func(rng *rand.Rand) Layout {
		return RandomLayout(n, bounds, rng)
	}
}

// Codec flattens layouts to (x, y, range) triples and repairs them
type Codec struct {
	Bounds Bounds
}

// Encode implements genetic.Codec
func (c Codec) Encode(l Layout) []float64 {
	genome := make([]float64, 0, 3*len(l))
	for _, s := range l {
		genome = append(genome, s.X, s.Y, s.Range)
	}
	return genome
}

// Clamp implements genetic.Codec
func (c Codec) Clamp(l Layout) Layout {
	out := make(Layout, len(l))
	for i, s := range l {
		out[i] = c.Bounds.Clamp(s)
	}
	return out
}
