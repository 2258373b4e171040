// Package viewer shows an optimized layout in the terminal. Targets are
// colored by alarm status and the assessed hour can be stepped interactively.
package viewer

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/render"
	"github.com/lixenwraith/vigil/sensor"
)

// Canvas is the drawing surface, satisfied by tcell.Screen
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (width, height int)
}

var (
	styleTitle     = tcell.StyleDefault.Bold(true)
	styleAxis      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEmpty     = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleRing      = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleSensor    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHelp      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleNormal    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAttention = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleAlarm     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// StatusStyle returns the display style of an alarm status
func StatusStyle(s alarm.Status) tcell.Style {
	switch s {
	case alarm.StatusAlarm:
		return styleAlarm
	case alarm.StatusAttention:
		return styleAttention
	default:
		return styleNormal
	}
}

// Viewer is an interactive map of one layout
type Viewer struct {
	screen   tcell.Screen
	layout   sensor.Layout
	targets  []sensor.Target
	cells    [][]render.Cell
	fitness  float64
	hour     float64
	assessed []alarm.Assessment

	alert     func(alarm.Status)
	lastAlert alarm.Status
	alerted   bool
}

// New creates a viewer drawing to screen, which must already be initialized
func New(screen tcell.Screen, layout sensor.Layout, targets []sensor.Target, gridSize, fitness, hour float64) *Viewer {
	v := &Viewer{
		screen:  screen,
		layout:  layout,
		targets: targets,
		cells:   render.Grid(layout, targets, gridSize),
		fitness: fitness,
		hour:    hour,
	}
	v.assess()
	return v
}

// Open initializes the controlling terminal as a tcell screen
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// SetAlert installs a callback receiving the worst status whenever it changes
// The callback fires immediately with the current worst status
func (v *Viewer) SetAlert(alert func(alarm.Status)) {
	v.alert = alert
	v.alerted = false
	v.notify()
}

// Hour returns the assessed hour
func (v *Viewer) Hour() float64 {
	return v.hour
}

// Assessments returns the alarm verdicts at the current hour
func (v *Viewer) Assessments() []alarm.Assessment {
	return v.assessed
}

// SetHour changes the assessed hour, wrapping into [0, 24)
func (v *Viewer) SetHour(hour float64) {
	v.hour = math.Mod(math.Mod(hour, 24)+24, 24)
	v.assess()
}

func (v *Viewer) assess() {
	v.assessed = alarm.Assess(v.layout, v.targets, v.hour)
	v.notify()
}

func (v *Viewer) worst() alarm.Status {
	worst := alarm.StatusNormal
	for _, a := range v.assessed {
		if a.Status > worst {
			worst = a.Status
		}
	}
	return worst
}

func (v *Viewer) notify() {
	if v.alert == nil {
		return
	}
	if w := v.worst(); !v.alerted || w != v.lastAlert {
		v.lastAlert, v.alerted = w, true
		v.alert(w)
	}
}

// HandleKey applies a key press and reports whether the viewer keeps running
func (v *Viewer) HandleKey(key tcell.Key, r rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.SetHour(v.hour - 1)
	case tcell.KeyRight:
		v.SetHour(v.hour + 1)
	case tcell.KeyRune:
		switch r {
		case 'q':
			return false
		case 'h':
			v.SetHour(v.hour - 1)
		case 'l':
			v.SetHour(v.hour + 1)
		}
	}
	return true
}

// HandleEvent processes one terminal event and reports whether to keep running
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.HandleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

// Run draws and handles events until quit or the screen is finalized
func (v *Viewer) Run() {
	for {
		v.Render()
		ev := v.screen.PollEvent()
		if ev == nil || !v.HandleEvent(ev) {
			return
		}
	}
}

// Render redraws the full screen
func (v *Viewer) Render() {
	v.screen.Clear()
	v.Draw(v.screen)
	v.screen.Show()
}

// Draw paints the title, the map, the alarm panel and the help line
func (v *Viewer) Draw(c Canvas) {
	_, height := c.Size()

	drawText(c, 0, 0, fmt.Sprintf("vigil  fitness %.2f  hour %02.0f", v.fitness, v.hour), styleTitle)

	size := len(v.cells) - 1
	top := 2
	for row, cells := range v.cells {
		y := top + row
		drawText(c, 0, y, fmt.Sprintf("%2d │", size-row), styleAxis)
		for col, cell := range cells {
			drawText(c, 4+3*col, y, cell.Text(), v.cellStyle(cell))
		}
	}
	axisY := top + size + 1
	drawText(c, 0, axisY, "   └", styleAxis)
	for col := 0; col <= size; col++ {
		drawText(c, 4+3*col, axisY, "───", styleAxis)
		drawText(c, 4+3*col, axisY+1, fmt.Sprintf("%3d", col), styleAxis)
	}

	panelX := 4 + 3*(size+1) + 3
	drawText(c, panelX, top, "SENSORS", styleTitle)
	for i, s := range v.layout {
		drawText(c, panelX, top+1+i, fmt.Sprintf("K%d (%.1f, %.1f) r=%.1f", i+1, s.X, s.Y, s.Range), styleSensor)
	}

	alarmY := top + len(v.layout) + 2
	drawText(c, panelX, alarmY, "TARGETS", styleTitle)
	for i, a := range v.assessed {
		line := fmt.Sprintf("%d m=%g d=%.1f %-9s %3.0f%%", a.Target+1, a.Movement, a.Distance, a.Status, a.Score*100)
		drawText(c, panelX, alarmY+1+i, line, StatusStyle(a.Status))
	}

	drawText(c, 0, max(axisY+3, height-1), "h/← earlier  l/→ later  q quit", styleHelp)
}

func (v *Viewer) cellStyle(cell render.Cell) tcell.Style {
	switch cell.Kind {
	case render.CellTarget:
		if cell.Index < len(v.assessed) {
			return StatusStyle(v.assessed[cell.Index].Status)
		}
		return styleNormal
	case render.CellSensor:
		return styleSensor
	case render.CellRing:
		return styleRing
	default:
		return styleEmpty
	}
}

func drawText(c Canvas, x, y int, text string, style tcell.Style) {
	width, height := c.Size()
	if y < 0 || y >= height {
		return
	}
	for _, r := range text {
		if x >= width {
			return
		}
		if x >= 0 {
			c.SetContent(x, y, r, nil, style)
		}
		x++
	}
}
