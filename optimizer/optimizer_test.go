package optimizer

import (
	"bytes"
	"context"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vigil/coverage"
	"github.com/lixenwraith/vigil/genetic/tracking"
	"github.com/lixenwraith/vigil/sensor"
)

var defaultTargets = []sensor.Target{
	{X: 2, Y: 3, Movement: 8},
	{X: 7, Y: 7, Movement: 5},
	{X: 5, Y: 2, Movement: 9},
	{X: 8, Y: 4, Movement: 3},
}

func seeded(seed uint64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestRun_DeterministicUnderSeed(t *testing.T) {
	a, err := Run(context.Background(), defaultTargets, seeded(2024))
	require.NoError(t, err)
	b, err := Run(context.Background(), defaultTargets, seeded(2024))
	require.NoError(t, err)

	assert.Equal(t, a.Best, b.Best)
	assert.Equal(t, a.Fitness, b.Fitness)
	assert.Equal(t, uint64(2024), a.Seed)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestRun_ResultShape(t *testing.T) {
	res, err := Run(context.Background(), defaultTargets, seeded(7))
	require.NoError(t, err)

	require.Len(t, res.Best, 3)
	bounds := sensor.DefaultBounds(10)
	for _, s := range res.Best {
		assert.True(t, bounds.Contains(s), "sensor out of bounds: %v", s)
	}

	assert.Equal(t, coverage.Fitness(res.Best, defaultTargets), res.Fitness)
	assert.Greater(t, res.Fitness, 0.0)

	require.Len(t, res.History, 51)
	assert.LessOrEqual(t, res.History[0].BestScore, res.History[49].BestScore)
	for i := 1; i < len(res.History); i++ {
		assert.GreaterOrEqual(t, res.History[i].BestScore, res.History[i-1].BestScore)
	}
	assert.Equal(t, res.Fitness, res.History[50].BestScore)

	assert.Equal(t, 51.0, res.Summary[tracking.MetricSamples])
	assert.Equal(t, res.Fitness, res.Summary["last_"+tracking.MetricBestScore])
	require.Len(t, res.Contributions, len(defaultTargets))
}

func TestRun_ProgressEveryInterval(t *testing.T) {
	var gens []int
	var bests []float64
	_, err := Run(context.Background(), defaultTargets, seeded(11), WithProgress(func(g int, best float64) {
		gens = append(gens, g)
		bests = append(bests, best)
	}))
	require.NoError(t, err)

	assert.Equal(t, []int{0, 10, 20, 30, 40}, gens)
	for i := 1; i < len(bests); i++ {
		assert.GreaterOrEqual(t, bests[i], bests[i-1])
	}
}

func TestRun_SeedZeroReported(t *testing.T) {
	res, err := Run(context.Background(), defaultTargets, seeded(0))
	require.NoError(t, err)
	require.NotZero(t, res.Seed)

	replay, err := Run(context.Background(), defaultTargets, seeded(res.Seed))
	require.NoError(t, err)
	assert.Equal(t, res.Best, replay.Best)
}

func TestRun_NoTargets(t *testing.T) {
	res, err := Run(context.Background(), nil, seeded(3))
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Fitness)
	assert.Len(t, res.Best, 3)
}

func TestRun_Installation(t *testing.T) {
	installed := sensor.Layout{
		{X: 2, Y: 3, Range: 5},
		{X: 5, Y: 2, Range: 5},
		{X: 7, Y: 7, Range: 5},
	}
	cfg := seeded(5)
	cfg.Generations = 0

	res, err := Run(context.Background(), defaultTargets, cfg, WithInstallation(installed))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Fitness, coverage.Fitness(installed, defaultTargets))

	_, err = Run(context.Background(), defaultTargets, cfg, WithInstallation(installed[:2]))
	assert.ErrorIs(t, err, ErrInstallation)
}

func TestRun_InstallationClamped(t *testing.T) {
	cfg := seeded(5)
	cfg.Sensors = 1
	cfg.Generations = 0
	cfg.PopulationSize = 2
	cfg.ParentPool = 2
	cfg.MutationRate = 0

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	targets := []sensor.Target{{X: 10, Y: 10, Movement: 100}}
	res, err := Run(context.Background(), targets, cfg, WithLogger(logger), WithInstallation(sensor.Layout{{X: 12, Y: 10, Range: 9}}))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "installed sensors clamped to bounds")

	// clamped to (10, 10) r=5, covering the target perfectly
	assert.Equal(t, sensor.Layout{{X: 10, Y: 10, Range: 5}}, res.Best)
	assert.Equal(t, 100.0, res.Fitness)
}

func TestRun_InvalidInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sensors = 0
	_, err := Run(context.Background(), defaultTargets, cfg)
	assert.ErrorIs(t, err, ErrSensorCount)

	_, err = Run(context.Background(), []sensor.Target{{Movement: -1}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTargetMovement)

	_, err = Run(context.Background(), []sensor.Target{{X: math.NaN(), Y: 1, Movement: 1}}, DefaultConfig())
	assert.ErrorIs(t, err, ErrTargetPosition)
}

func TestRun_DeadlineStopsLargeRun(t *testing.T) {
	cfg := seeded(3)
	cfg.PopulationSize = 20000
	cfg.ParentPool = 10
	cfg.Generations = 1000

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Run(ctx, defaultTargets, cfg)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, defaultTargets, seeded(1))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_Selections(t *testing.T) {
	for _, name := range []string{"window", "tournament", "roulette"} {
		t.Run(name, func(t *testing.T) {
			cfg := seeded(9)
			cfg.Selection = name
			res, err := Run(context.Background(), defaultTargets, cfg)
			require.NoError(t, err)
			assert.LessOrEqual(t, res.History[0].BestScore, res.Fitness)
		})
	}
}

func TestRun_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res, err := Run(context.Background(), defaultTargets, seeded(13), WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "run started")
	assert.Contains(t, out, "run finished")
	assert.Contains(t, out, "run_id="+res.RunID)
}
