package tracking

import "time"

// StandardCollector implements Collector over a series of samples
// For every key it reports avg_, min_, max_ and last_ values
// Flag metrics (value > 0.5) also accumulate time_ and count_ totals
type StandardCollector struct {
	samples   int
	elapsed   time.Duration
	sums      map[string]float64
	counts    map[string]int
	durations map[string]time.Duration
	flags     map[string]int
	mins      map[string]float64
	maxs      map[string]float64
	lasts     map[string]float64
}

// NewStandardCollector creates an empty collector
func NewStandardCollector() *StandardCollector {
	return &StandardCollector{
		sums:      make(map[string]float64),
		counts:    make(map[string]int),
		durations: make(map[string]time.Duration),
		flags:     make(map[string]int),
		mins:      make(map[string]float64),
		maxs:      make(map[string]float64),
		lasts:     make(map[string]float64),
	}
}

func (c *StandardCollector) Collect(metrics MetricBundle, dt time.Duration) {
	c.samples++
	c.elapsed += dt

	for key, value := range metrics {
		c.sums[key] += value

		if c.counts[key] == 0 || value < c.mins[key] {
			c.mins[key] = value
		}
		if c.counts[key] == 0 || value > c.maxs[key] {
			c.maxs[key] = value
		}
		c.counts[key]++
		c.lasts[key] = value

		if value > 0.5 {
			c.durations[key] += dt
			c.flags[key]++
		}
	}
}

func (c *StandardCollector) Finalize(closing MetricBundle) MetricBundle {
	result := make(MetricBundle)

	result[MetricSamples] = float64(c.samples)
	result[MetricElapsed] = c.elapsed.Seconds()

	for key, sum := range c.sums {
		if count := c.counts[key]; count > 0 {
			result["avg_"+key] = sum / float64(count)
		}
	}

	for key, dur := range c.durations {
		result["time_"+key] = dur.Seconds()
	}
	for key, n := range c.flags {
		result["count_"+key] = float64(n)
	}

	for key, val := range c.mins {
		result["min_"+key] = val
	}
	for key, val := range c.maxs {
		result["max_"+key] = val
	}
	for key, val := range c.lasts {
		result["last_"+key] = val
	}

	for key, val := range closing {
		result[key] = val
	}

	return result
}
