package fitness

import "github.com/lixenwraith/vigil/genetic/tracking"

// Term is one weighted contribution to an aggregate score
type Term struct {
	Key       string
	Weight    float64
	Normalize NormalizeFunc
}

// WeightedAggregator calculates a score as the weighted sum of metric terms
// Terms are summed in slice order so floating point results are reproducible
type WeightedAggregator struct {
	Terms []Term
}

func (a *WeightedAggregator) Calculate(metrics tracking.MetricBundle) float64 {
	var score float64
	for _, term := range a.Terms {
		raw, ok := metrics[term.Key]
		if !ok {
			continue
		}

		normalized := raw
		if term.Normalize != nil {
			normalized = term.Normalize(raw)
		}

		score += term.Weight * normalized
	}

	return score
}
