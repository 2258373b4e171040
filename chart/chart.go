// Package chart renders run artifacts as PNG images: the fitness history of
// the search and a map of the winning layout.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/genetic"
	"github.com/lixenwraith/vigil/sensor"
)

// File names written by Write
const (
	HistoryFile = "history.png"
	LayoutFile  = "layout.png"
)

const ringSegments = 96

var ErrNoHistory = errors.New("chart: empty history")

var (
	colorBest      = color.RGBA{0, 80, 255, 255}
	colorMean      = color.RGBA{0, 160, 80, 255}
	colorWorst     = color.RGBA{160, 160, 160, 255}
	colorRing      = color.RGBA{0, 120, 255, 50}
	colorSensor    = color.RGBA{0, 60, 160, 255}
	colorNormal    = color.RGBA{0, 150, 0, 255}
	colorAttention = color.RGBA{230, 160, 0, 255}
	colorAlarm     = color.RGBA{220, 0, 0, 255}
)

// History plots best, mean and worst fitness per generation
func History(history []genetic.PoolStats[float64]) (*plot.Plot, error) {
	if len(history) == 0 {
		return nil, ErrNoHistory
	}

	best := make(plotter.XYs, len(history))
	mean := make(plotter.XYs, len(history))
	worst := make(plotter.XYs, len(history))
	for i, s := range history {
		x := float64(s.Generation)
		best[i] = plotter.XY{X: x, Y: s.BestScore}
		mean[i] = plotter.XY{X: x, Y: s.AverageScore}
		worst[i] = plotter.XY{X: x, Y: s.WorstScore}
	}

	p := plot.New()
	p.Title.Text = "Coverage fitness by generation"
	p.X.Label.Text = "generation"
	p.Y.Label.Text = "fitness"
	p.Add(plotter.NewGrid())

	for _, series := range []struct {
		name  string
		xys   plotter.XYs
		color color.Color
	}{
		{"worst", worst, colorWorst},
		{"mean", mean, colorMean},
		{"best", best, colorBest},
	} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return nil, fmt.Errorf("chart: %s line: %w", series.name, err)
		}
		line.Color = series.color
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}
	p.Legend.Top = false

	return p, nil
}

// Layout plots sensor ranges, sensors and targets colored by alarm status
func Layout(layout sensor.Layout, targets []sensor.Target, assessments []alarm.Assessment, gridSize float64) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Sensor layout"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())
	p.X.Min, p.X.Max = -1, gridSize+1
	p.Y.Min, p.Y.Max = -1, gridSize+1

	for i, s := range layout {
		ring, err := plotter.NewPolygon(circle(s.X, s.Y, s.Range, ringSegments))
		if err != nil {
			return nil, fmt.Errorf("chart: sensor %d range: %w", i+1, err)
		}
		ring.Color = colorRing
		ring.LineStyle.Color = colorSensor
		ring.LineStyle.Width = vg.Points(0.5)
		p.Add(ring)
	}

	if len(layout) > 0 {
		pts := make(plotter.XYs, len(layout))
		labels := make([]string, len(layout))
		for i, s := range layout {
			pts[i] = plotter.XY{X: s.X, Y: s.Y}
			labels[i] = fmt.Sprintf("K%d", i+1)
		}
		if err := addPoints(p, "sensor", pts, labels, draw.BoxGlyph{}, colorSensor); err != nil {
			return nil, err
		}
	}

	byStatus := map[alarm.Status]plotter.XYs{}
	labelsByStatus := map[alarm.Status][]string{}
	for i, t := range targets {
		status := alarm.StatusNormal
		if i < len(assessments) {
			status = assessments[i].Status
		}
		byStatus[status] = append(byStatus[status], plotter.XY{X: t.X, Y: t.Y})
		labelsByStatus[status] = append(labelsByStatus[status], fmt.Sprintf("%d", i+1))
	}
	for _, status := range []alarm.Status{alarm.StatusNormal, alarm.StatusAttention, alarm.StatusAlarm} {
		pts := byStatus[status]
		if len(pts) == 0 {
			continue
		}
		if err := addPoints(p, status.String(), pts, labelsByStatus[status], draw.CircleGlyph{}, statusColor(status)); err != nil {
			return nil, err
		}
	}

	return p, nil
}

func addPoints(p *plot.Plot, name string, pts plotter.XYs, labels []string, shape draw.GlyphDrawer, c color.Color) error {
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("chart: %s points: %w", name, err)
	}
	scatter.GlyphStyle.Shape = shape
	scatter.GlyphStyle.Color = c
	scatter.GlyphStyle.Radius = vg.Points(4)
	p.Add(scatter)
	p.Legend.Add(name, scatter)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return fmt.Errorf("chart: %s labels: %w", name, err)
	}
	names.Offset = vg.Point{X: vg.Points(5), Y: vg.Points(2)}
	p.Add(names)
	return nil
}

func statusColor(s alarm.Status) color.Color {
	switch s {
	case alarm.StatusAlarm:
		return colorAlarm
	case alarm.StatusAttention:
		return colorAttention
	default:
		return colorNormal
	}
}

// circle approximates a circle of radius r with n segments, closed
func circle(cx, cy, r float64, n int) plotter.XYs {
	pts := make(plotter.XYs, n+1)
	for i := 0; i <= n; i++ {
		ang := 2 * math.Pi * float64(i) / float64(n)
		pts[i].X = cx + r*math.Cos(ang)
		pts[i].Y = cy + r*math.Sin(ang)
	}
	return pts
}

// Write saves both charts into dir, creating it if needed, and returns the file paths
func Write(dir string, history []genetic.PoolStats[float64], layout sensor.Layout, targets []sensor.Target, assessments []alarm.Assessment, gridSize float64) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}

	hp, err := History(history)
	if err != nil {
		return nil, err
	}
	historyPath := filepath.Join(dir, HistoryFile)
	if err := hp.Save(6*vg.Inch, 4*vg.Inch, historyPath); err != nil {
		return nil, fmt.Errorf("chart: save %s: %w", historyPath, err)
	}

	lp, err := Layout(layout, targets, assessments, gridSize)
	if err != nil {
		return nil, err
	}
	layoutPath := filepath.Join(dir, LayoutFile)
	if err := lp.Save(6*vg.Inch, 6*vg.Inch, layoutPath); err != nil {
		return nil, fmt.Errorf("chart: save %s: %w", layoutPath, err)
	}

	return []string{historyPath, layoutPath}, nil
}
