package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/optimizer"
	"github.com/lixenwraith/vigil/sensor"
)

// Report is everything a run produced for display
type Report struct {
	Scenario    string             `json:"scenario"`
	Targets     []sensor.Target    `json:"targets"`
	GridSize    float64            `json:"grid_size"`
	Hour        float64            `json:"hour"`
	Result      *optimizer.Result  `json:"result"`
	Assessments []alarm.Assessment `json:"assessments"`
}

// Text writes the sensor table, the alarm table and the map
func Text(w io.Writer, r *Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "=== VIGIL: %s ===\n\n", r.Scenario)
	fmt.Fprintf(&b, "run %s  seed %d  fitness %.2f\n", r.Result.RunID, r.Result.Seed, r.Result.Fitness)

	b.WriteString("\n--- SENSOR PLACEMENT ---\n")
	for i, s := range r.Result.Best {
		fmt.Fprintf(&b, "Sensor %d: (%.1f, %.1f), range %.1f\n", i+1, s.X, s.Y, s.Range)
	}

	fmt.Fprintf(&b, "\n--- ALARM ASSESSMENT (hour %g) ---\n", r.Hour)
	for _, a := range r.Assessments {
		fmt.Fprintf(&b, "Target %d: movement=%g, distance=%.1f -> %-9s (%.0f%%)\n",
			a.Target+1, a.Movement, a.Distance, a.Status, a.Score*100)
	}

	b.WriteString("\n--- MAP ---\n\n")
	writeMap(&b, Grid(r.Result.Best, r.Targets, r.GridSize))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMap(b *strings.Builder, rows [][]Cell) {
	size := len(rows) - 1
	for row, cells := range rows {
		fmt.Fprintf(b, "%2d │", size-row)
		for _, c := range cells {
			b.WriteString(c.Text())
		}
		b.WriteByte('\n')
	}

	b.WriteString("   └" + strings.Repeat("───", size+1) + "\n")
	b.WriteString("    ")
	for x := 0; x <= size; x++ {
		fmt.Fprintf(b, "%3d", x)
	}
	b.WriteString("\n\nLegend:\n")
	b.WriteString("  K1, K2, ... = sensors\n")
	b.WriteString("  1, 2, ...   = targets\n")
	b.WriteString("  ○ = sensor range\n")
	b.WriteString("  · = empty\n")
}

// JSON writes the report as indented JSON
func JSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
