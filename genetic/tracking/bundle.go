package tracking

import "time"

// MetricBundle is a generic container for named metrics
// Keys are metric names, values are float64 measurements
type MetricBundle map[string]float64

// Standard metric keys (conventions)
const (
	MetricSamples      = "samples"
	MetricElapsed      = "elapsed_seconds"
	MetricBestScore    = "best_score"
	MetricWorstScore   = "worst_score"
	MetricMeanScore    = "mean_score"
	MetricStdDevScore  = "stddev_score"
	MetricDiversity    = "diversity"
	MetricImproved     = "improved"
	MetricImprovements = "improvements"
)

// Get returns metric value or default if not present
func (b MetricBundle) Get(key string, defaultVal float64) float64 {
	if v, ok := b[key]; ok {
		return v
	}
	return defaultVal
}

// Collector accumulates metrics sample by sample
type Collector interface {
	// Collect records metrics for a single sample that took dt
	Collect(metrics MetricBundle, dt time.Duration)

	// Finalize returns accumulated metrics merged with closing, closing wins on conflict
	Finalize(closing MetricBundle) MetricBundle
}
