// Package config layers run settings: built-in defaults, an optional TOML
// file, an optional .env file and VIGIL_* environment variables. Command line
// flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/lixenwraith/vigil/optimizer"
	"github.com/lixenwraith/vigil/parameter"
)

// ErrUnknownKey is returned for config file keys that map to no setting
var ErrUnknownKey = errors.New("unknown config key")

// Settings is the full run configuration
type Settings struct {
	// Scenario is a JSON or TOML scenario file, empty for the built-in scenario
	Scenario  string           `toml:"scenario"`
	Optimizer optimizer.Config `toml:"optimizer"`
	Alarm     AlarmSettings    `toml:"alarm"`
	Output    OutputSettings   `toml:"output"`
	Audio     AudioSettings    `toml:"audio"`

	parentPoolSet bool
}

// AlarmSettings controls the alarm assessment of the winning layout
type AlarmSettings struct {
	// Hour assessed, negative selects the local clock
	Hour float64 `toml:"hour"`
}

// OutputSettings selects report surfaces
type OutputSettings struct {
	JSON     bool   `toml:"json"`
	TUI      bool   `toml:"tui"`
	ChartDir string `toml:"chart_dir"`
}

// AudioSettings controls the alert siren
type AudioSettings struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

// Default returns settings built from compile-time parameters
func Default() *Settings {
	return &Settings{
		Optimizer: optimizer.DefaultConfig(),
		Alarm:     AlarmSettings{Hour: parameter.AlarmDefaultHour},
		Audio:     AudioSettings{Volume: parameter.AudioMasterVolume},
	}
}

// Load builds settings from defaults, the TOML file at path and the environment
// An empty path skips the file. envFile is loaded into the environment first
// when it exists, existing variables are not overridden.
func Load(path, envFile string) (*Settings, error) {
	s := Default()

	if path != "" {
		if err := s.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if err := LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	s.ApplyEnv()

	return s, nil
}

func (s *Settings) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("config %s: %s: %w", path, strings.Join(keys, ", "), ErrUnknownKey)
	}
	if md.IsDefined("optimizer", "parent_pool") {
		s.parentPoolSet = true
	}
	return nil
}

// LoadDotEnv loads a .env file if present, a missing file is not an error
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from VIGIL_* variables
// Malformed values are ignored
func (s *Settings) ApplyEnv() {
	if v := os.Getenv("VIGIL_SCENARIO"); v != "" {
		s.Scenario = v
	}

	envInt("VIGIL_SENSORS", &s.Optimizer.Sensors)
	envInt("VIGIL_POPULATION", &s.Optimizer.PopulationSize)
	envInt("VIGIL_GENERATIONS", &s.Optimizer.Generations)
	envInt("VIGIL_ELITE_COUNT", &s.Optimizer.EliteCount)
	if envInt("VIGIL_PARENT_POOL", &s.Optimizer.ParentPool) {
		s.parentPoolSet = true
	}
	envInt("VIGIL_REPORT_INTERVAL", &s.Optimizer.ReportInterval)
	envFloat("VIGIL_MUTATION_RATE", &s.Optimizer.MutationRate)
	envFloat("VIGIL_GRID_SIZE", &s.Optimizer.GridSize)
	if v := os.Getenv("VIGIL_SELECTION"); v != "" {
		s.Optimizer.Selection = strings.ToLower(v)
	}
	if v := os.Getenv("VIGIL_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			s.Optimizer.Seed = seed
		}
	}

	envFloat("VIGIL_HOUR", &s.Alarm.Hour)

	envBool("VIGIL_SOUND", &s.Audio.Enabled)
	// Volume is 0-100 in the environment
	if v := os.Getenv("VIGIL_VOLUME"); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			s.Audio.Volume = min(max(float64(val)/100.0, 0), 1)
		}
	}
}

// SetParentPool records an explicit parent pool, exempting it from fitting
func (s *Settings) SetParentPool(n int) {
	s.Optimizer.ParentPool = n
	s.parentPoolSet = true
}

// Resolve returns the optimizer config to run with
// A parent pool left at its default shrinks to fit a smaller population
func (s *Settings) Resolve() optimizer.Config {
	cfg := s.Optimizer
	if !s.parentPoolSet && cfg.ParentPool > cfg.PopulationSize && cfg.PopulationSize > 0 {
		cfg.ParentPool = cfg.PopulationSize
	}
	return cfg
}

// AlarmHour returns the configured hour, or the hour of now when negative
func (s *Settings) AlarmHour(now time.Time) float64 {
	if s.Alarm.Hour < 0 {
		return float64(now.Hour())
	}
	return s.Alarm.Hour
}

func envInt(key string, dst *int) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	val, err := strconv.Atoi(v)
	if err != nil {
		return false
	}
	*dst = val
	return true
}

func envFloat(key string, dst *float64) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	val, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return false
	}
	*dst = val
	return true
}

func envBool(key string, dst *bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return false
	}
	val, err := strconv.ParseBool(v)
	if err != nil {
		return false
	}
	*dst = val
	return true
}
