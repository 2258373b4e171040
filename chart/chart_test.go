package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/genetic"
	"github.com/lixenwraith/vigil/sensor"
)

var (
	testLayout  = sensor.Layout{{X: 2, Y: 3, Range: 4}, {X: 7, Y: 6, Range: 3}}
	testTargets = []sensor.Target{{X: 2, Y: 3, Movement: 8}, {X: 9, Y: 0, Movement: 1}}
)

func testHistory() []genetic.PoolStats[float64] {
	return []genetic.PoolStats[float64]{
		{Generation: 0, BestScore: 4, AverageScore: 2, WorstScore: 0},
		{Generation: 1, BestScore: 6, AverageScore: 3, WorstScore: 1},
		{Generation: 2, BestScore: 9, AverageScore: 5, WorstScore: 1},
	}
}

func TestHistory(t *testing.T) {
	p, err := History(testHistory())
	require.NoError(t, err)
	assert.Equal(t, "Coverage fitness by generation", p.Title.Text)

	_, err = History(nil)
	assert.ErrorIs(t, err, ErrNoHistory)
}

func TestLayout(t *testing.T) {
	assessments := alarm.Assess(testLayout, testTargets, 23)
	p, err := Layout(testLayout, testTargets, assessments, 10)
	require.NoError(t, err)

	assert.Equal(t, -1.0, p.X.Min)
	assert.Equal(t, 11.0, p.X.Max)
}

func TestLayout_Empty(t *testing.T) {
	_, err := Layout(nil, nil, nil, 10)
	assert.NoError(t, err)
}

func TestCircle(t *testing.T) {
	pts := circle(1, 1, 2, 8)
	require.Len(t, pts, 9)
	assert.InDelta(t, 3.0, pts[0].X, 1e-12)
	assert.InDelta(t, pts[0].X, pts[8].X, 1e-12)
	assert.InDelta(t, pts[0].Y, pts[8].Y, 1e-12)
	assert.InDelta(t, 3.0, pts[2].Y, 1e-12)
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	assessments := alarm.Assess(testLayout, testTargets, 12)

	paths, err := Write(dir, testHistory(), testLayout, testTargets, assessments, 10)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Equal(t, filepath.Join(dir, HistoryFile), paths[0])
}
