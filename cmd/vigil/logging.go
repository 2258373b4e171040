package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const (
	logDir      = "logs"
	logFileName = "vigil.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes structured logs for the run
// debug writes debug-level JSON records to logs/vigil.log, rotating an oversized file first
// verbose without debug writes info-level text to stderr, otherwise logs are discarded
// The returned file is nil unless debug is set and must be closed by the caller
func setupLogging(debug, verbose bool) (*slog.Logger, *os.File) {
	var logger *slog.Logger
	var file *os.File

	switch {
	case debug:
		f, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
			logger = slog.New(slog.DiscardHandler)
			break
		}
		file = f
		logger = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case verbose:
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		logger = slog.New(slog.DiscardHandler)
	}

	slog.SetDefault(logger)
	return logger, file
}

func openLogFile() (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("vigil-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, err
		}
	}

	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
