// Package scenario loads site descriptions: the targets to watch, the number
// of sensors to place and optionally the sensors already installed.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"

	"github.com/lixenwraith/vigil/parameter"
	"github.com/lixenwraith/vigil/sensor"
)

var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrUnknownFormat   = errors.New("unknown scenario format")
)

// Scenario describes one site
type Scenario struct {
	Name string `toml:"name" json:"name"`
	// Sensors to place, 0 keeps the configured count
	Sensors int `toml:"sensors" json:"sensors,omitempty"`
	// GridSize of the site, 0 keeps the configured size
	GridSize     float64         `toml:"grid_size" json:"grid_size,omitempty"`
	Targets      []sensor.Target `toml:"targets" json:"targets"`
	Installation sensor.Layout   `toml:"installation" json:"installation,omitempty"`
}

// Default returns the built-in four target site watched by three sensors
func Default() *Scenario {
	return &Scenario{
		Name:    "default",
		Sensors: parameter.DefaultSensorCount,
		Targets: []sensor.Target{
			{X: 2, Y: 3, Movement: 8},
			{X: 7, Y: 7, Movement: 5},
			{X: 5, Y: 2, Movement: 9},
			{X: 8, Y: 4, Movement: 3},
		},
	}
}

// Load reads a scenario file, the format follows the extension (.json or .toml)
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}

	var sc *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		sc, err = ParseJSON(data)
	case ".toml":
		sc, err = ParseTOML(data)
	default:
		return nil, fmt.Errorf("scenario %s: extension %q: %w", path, ext, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}

	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// ParseTOML decodes a scenario from TOML
//
//	name = "yard"
//	sensors = 3
//	[[targets]]
//	x = 2.0
//	y = 3.0
//	movement = 8.0
func ParseTOML(data []byte) (*Scenario, error) {
	var sc Scenario
	md, err := toml.Decode(string(data), &sc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if !md.IsDefined("targets") {
		return nil, fmt.Errorf("%w: no targets", ErrInvalidScenario)
	}
	return &sc, sc.check()
}

// ParseJSON decodes a scenario from JSON
// Targets and installed sensors are objects or positional arrays:
//
//	{"sensors": 3, "targets": [{"x": 2, "y": 3, "movement": 8}, [7, 7, 5]]}
func ParseJSON(data []byte) (*Scenario, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidScenario)
	}
	root := gjson.ParseBytes(data)

	targets := root.Get("targets")
	if !targets.IsArray() {
		return nil, fmt.Errorf("%w: targets must be an array", ErrInvalidScenario)
	}

	sc := &Scenario{
		Name:     root.Get("name").String(),
		Sensors:  int(root.Get("sensors").Int()),
		GridSize: root.Get("grid_size").Float(),
		Targets:  make([]sensor.Target, 0, len(targets.Array())),
	}

	for i, item := range targets.Array() {
		x, y, m, err := triple(item, "movement")
		if err != nil {
			return nil, fmt.Errorf("%w: target %d: %w", ErrInvalidScenario, i+1, err)
		}
		sc.Targets = append(sc.Targets, sensor.Target{X: x, Y: y, Movement: m})
	}

	if installed := root.Get("installation"); installed.Exists() {
		if !installed.IsArray() {
			return nil, fmt.Errorf("%w: installation must be an array", ErrInvalidScenario)
		}
		for i, item := range installed.Array() {
			x, y, r, err := triple(item, "range")
			if err != nil {
				return nil, fmt.Errorf("%w: sensor %d: %w", ErrInvalidScenario, i+1, err)
			}
			sc.Installation = append(sc.Installation, sensor.Sensor{X: x, Y: y, Range: r})
		}
	}

	return sc, sc.check()
}

// triple reads {x, y, <third>} or [x, y, third]
func triple(item gjson.Result, third string) (float64, float64, float64, error) {
	switch {
	case item.IsArray():
		vals := item.Array()
		if len(vals) != 3 {
			return 0, 0, 0, fmt.Errorf("expected 3 values, got %d", len(vals))
		}
		for _, v := range vals {
			if v.Type != gjson.Number {
				return 0, 0, 0, fmt.Errorf("non-numeric value %s", v.Raw)
			}
		}
		return vals[0].Float(), vals[1].Float(), vals[2].Float(), nil
	case item.IsObject():
		fields := [3]string{"x", "y", third}
		var vals [3]float64
		for i, key := range fields {
			v := item.Get(key)
			if v.Type != gjson.Number {
				return 0, 0, 0, fmt.Errorf("field %q missing or non-numeric", key)
			}
			vals[i] = v.Float()
		}
		return vals[0], vals[1], vals[2], nil
	default:
		return 0, 0, 0, fmt.Errorf("expected object or array, got %s", item.Raw)
	}
}

func (sc *Scenario) check() error {
	if sc.Sensors < 0 {
		return fmt.Errorf("%w: sensors %d", ErrInvalidScenario, sc.Sensors)
	}
	if sc.GridSize < 0 {
		return fmt.Errorf("%w: grid size %v", ErrInvalidScenario, sc.GridSize)
	}
	return nil
}

// SensorCount returns the scenario sensor count, falling back to the installation then def
func (sc *Scenario) SensorCount(def int) int {
	switch {
	case sc.Sensors > 0:
		return sc.Sensors
	case len(sc.Installation) > 0:
		return len(sc.Installation)
	default:
		return def
	}
}
