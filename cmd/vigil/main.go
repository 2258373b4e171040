package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lixenwraith/vigil/alarm"
	"github.com/lixenwraith/vigil/chart"
	"github.com/lixenwraith/vigil/config"
	"github.com/lixenwraith/vigil/optimizer"
	"github.com/lixenwraith/vigil/render"
	"github.com/lixenwraith/vigil/scenario"
	"github.com/lixenwraith/vigil/sensor"
	"github.com/lixenwraith/vigil/siren"
	"github.com/lixenwraith/vigil/viewer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// cliFlags holds parsed command line values, applied only when set
type cliFlags struct {
	configPath string
	envFile    string
	debug      bool
	verbose    bool

	seed        uint64
	sensors     int
	generations int
	population  int
	parents     int
	mutation    float64
	grid        float64
	hour        float64
	selection   string
	json        bool
	tui         bool
	sound       bool
	chartDir    string
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, *flag.FlagSet, error) {
	f := &cliFlags{}
	fs := flag.NewFlagSet("vigil", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: vigil [flags] [scenario-file]")
		fs.PrintDefaults()
	}

	fs.StringVar(&f.configPath, "config", "", "TOML config file")
	fs.StringVar(&f.envFile, "env", ".env", "environment file, ignored when missing")
	fs.BoolVar(&f.debug, "debug", false, "write debug logs to logs/vigil.log")
	fs.BoolVar(&f.verbose, "verbose", false, "log run progress to stderr")

	fs.Uint64Var(&f.seed, "seed", 0, "random seed, 0 draws one")
	fs.IntVar(&f.sensors, "sensors", 0, "number of sensors to place")
	fs.IntVar(&f.generations, "generations", 0, "generations to run")
	fs.IntVar(&f.population, "population", 0, "population size")
	fs.IntVar(&f.parents, "parents", 0, "parent pool size for window selection")
	fs.Float64Var(&f.mutation, "mutation", 0, "per-sensor mutation rate")
	fs.Float64Var(&f.grid, "grid", 0, "site grid size")
	fs.Float64Var(&f.hour, "hour", 0, "hour to assess alarms at, -1 for the local clock")
	fs.StringVar(&f.selection, "selection", "", "parent selection: window, tournament or roulette")
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")
	fs.BoolVar(&f.tui, "tui", false, "open the interactive map")
	fs.BoolVar(&f.sound, "sound", false, "sound alarms through the speaker")
	fs.StringVar(&f.chartDir, "chart", "", "directory for fitness and layout charts")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("expected at most one scenario file, got %d", fs.NArg())
	}
	return f, fs, nil
}

// applyFlags overrides settings with the flags given on the command line
// It reports which scenario-overridable values were set explicitly
func applyFlags(s *config.Settings, f *cliFlags, fs *flag.FlagSet) (sensorsSet, gridSet bool) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "seed":
			s.Optimizer.Seed = f.seed
		case "sensors":
			s.Optimizer.Sensors = f.sensors
			sensorsSet = true
		case "generations":
			s.Optimizer.Generations = f.generations
		case "population":
			s.Optimizer.PopulationSize = f.population
		case "parents":
			s.SetParentPool(f.parents)
		case "mutation":
			s.Optimizer.MutationRate = f.mutation
		case "grid":
			s.Optimizer.GridSize = f.grid
			gridSet = true
		case "hour":
			s.Alarm.Hour = f.hour
		case "selection":
			s.Optimizer.Selection = f.selection
		case "json":
			s.Output.JSON = f.json
		case "tui":
			s.Output.TUI = f.tui
		case "sound":
			s.Audio.Enabled = f.sound
		case "chart":
			s.Output.ChartDir = f.chartDir
		}
	})
	if fs.NArg() == 1 {
		s.Scenario = fs.Arg(0)
	}
	return sensorsSet, gridSet
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		return scenario.Default(), nil
	}
	return scenario.Load(path)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	f, fs, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, logFile := setupLogging(f.debug, f.verbose)
	if logFile != nil {
		defer logFile.Close()
	}

	settings, err := config.Load(f.configPath, f.envFile)
	if err != nil {
		return err
	}
	sensorsSet, gridSet := applyFlags(settings, f, fs)

	sc, err := loadScenario(settings.Scenario)
	if err != nil {
		return err
	}
	// a scenario file sizes the run unless a flag says otherwise
	if settings.Scenario != "" {
		if !sensorsSet {
			settings.Optimizer.Sensors = sc.SensorCount(settings.Optimizer.Sensors)
		}
		if !gridSet && sc.GridSize > 0 {
			settings.Optimizer.GridSize = sc.GridSize
		}
	}

	cfg := settings.Resolve()
	opts := []optimizer.Option{optimizer.WithLogger(logger)}
	if len(sc.Installation) > 0 {
		opts = append(opts, optimizer.WithInstallation(sc.Installation))
	}
	if !settings.Output.JSON && !settings.Output.TUI {
		opts = append(opts, optimizer.WithProgress(func(generation int, best float64) {
			fmt.Fprintf(stdout, "Generation %d: Best fitness = %.2f\n", generation, best)
		}))
	}

	result, err := optimizer.Run(ctx, sc.Targets, cfg, opts...)
	if err != nil {
		return err
	}

	hour := settings.AlarmHour(time.Now())
	report := &render.Report{
		Scenario:    sc.Name,
		Targets:     sc.Targets,
		GridSize:    cfg.GridSize,
		Hour:        hour,
		Result:      result,
		Assessments: alarm.Assess(result.Best, sc.Targets, hour),
	}

	if settings.Output.ChartDir != "" {
		paths, err := chart.Write(settings.Output.ChartDir, result.History, result.Best, sc.Targets, report.Assessments, cfg.GridSize)
		if err != nil {
			return err
		}
		logger.Info("charts written", "run_id", result.RunID, "paths", paths)
	}

	audioCfg := siren.DefaultConfig()
	audioCfg.MasterVolume = settings.Audio.Volume
	var player *siren.Player
	if settings.Audio.Enabled {
		player = siren.NewPlayer(audioCfg)
		defer player.Close()
	}

	if settings.Output.TUI {
		return runViewer(result.Best, sc.Targets, cfg.GridSize, result.Fitness, hour, player, audioCfg, logger)
	}

	if settings.Output.JSON {
		err = render.JSON(stdout, report)
	} else {
		err = render.Text(stdout, report)
	}
	if err != nil {
		return err
	}

	if player != nil {
		if err := player.Play(siren.Sequence(report.Assessments, audioCfg)); err != nil {
			logger.Warn("audio unavailable", "error", err)
		}
	}
	return nil
}

func runViewer(layout sensor.Layout, targets []sensor.Target, gridSize, fitness, hour float64, player *siren.Player, audioCfg siren.Config, logger *slog.Logger) error {
	screen, err := viewer.Open()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	v := viewer.New(screen, layout, targets, gridSize, fitness, hour)
	if player != nil {
		v.SetAlert(func(status alarm.Status) {
			if err := player.Start(siren.Tone(status, audioCfg)); err != nil {
				logger.Warn("audio unavailable", "error", err)
			}
		})
	}
	v.Run()
	return nil
}
