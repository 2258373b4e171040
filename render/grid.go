// Package render formats optimization results for the console: a sensor and
// alarm table, an ASCII map of the plane and a JSON document.
package render

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vigil/geometry"
	"github.com/lixenwraith/vigil/sensor"
)

// CellKind is what occupies a grid cell
type CellKind uint8

const (
	CellEmpty CellKind = iota
	CellRing
	CellTarget
	CellSensor
)

// Cell is one lattice point of the map
type Cell struct {
	Kind CellKind
	// Index is the zero-based target or sensor index
	Index int
}

// Text returns the three column glyph of the cell
func (c Cell) Text() string {
	switch c.Kind {
	case CellTarget:
		return fmt.Sprintf(" %d ", c.Index+1)
	case CellSensor:
		return fmt.Sprintf(" K%d", c.Index+1)
	case CellRing:
		return " ○ "
	default:
		return " · "
	}
}

// Grid samples the plane at integer lattice points, row 0 is the top (y = size)
// Later targets overwrite earlier ones, sensors overwrite targets, and empty
// points inside a sensor range but farther than half a unit from it become rings.
func Grid(layout sensor.Layout, targets []sensor.Target, gridSize float64) [][]Cell {
	size := int(math.Floor(gridSize))
	if size < 0 {
		size = 0
	}

	rows := make([][]Cell, size+1)
	for row := range rows {
		y := float64(size - row)
		cells := make([]Cell, size+1)
		for col := range cells {
			x := float64(col)
			cell := Cell{Kind: CellEmpty}

			for i, t := range targets {
				if near(t.X, t.Y, x, y) {
					cell = Cell{Kind: CellTarget, Index: i}
				}
			}
			for i, s := range layout {
				if near(s.X, s.Y, x, y) {
					cell = Cell{Kind: CellSensor, Index: i}
				}
			}
			if cell.Kind == CellEmpty {
				for i, s := range layout {
					d := geometry.Distance(s.X, s.Y, x, y)
					if d <= s.Range && d > 0.5 {
						cell = Cell{Kind: CellRing, Index: i}
						break
					}
				}
			}

			cells[col] = cell
		}
		rows[row] = cells
	}
	return rows
}

func near(ax, ay, x, y float64) bool {
	return math.Abs(ax-x) < 0.5 && math.Abs(ay-y) < 0.5
}
