// Package logging sets up the process-wide slog logger.
// The console belongs to the operator, so records go to a rotated file.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging settings.
type Config struct {
	Level      string // debug, info, warn, error
	File       string // log file path
	MaxSizeMB  int    // size before rotation
	MaxBackups int    // rotated files kept
	// Console receives std log output (startup errors, banners). Defaults to os.Stderr.
	Console io.Writer
}

// Setup builds the file logger, installs it as the slog default and returns a closer for the file.
// PRE: cfg.File is non-empty
// POST: slog.Default writes to cfg.File; the log package writes to cfg.Console;
// caller must Close the returned io.Closer at shutdown
func Setup(cfg Config) (*slog.Logger, io.Closer, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return nil, nil, fmt.Errorf("log file path is required")
	}
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir failed: %w", err)
		}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}

	logger := New(file, ParseLevel(cfg.Level))
	slog.SetDefault(logger)

	// slog.SetDefault routes the log package into the file handler; take it back.
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	log.SetOutput(console)
	log.SetFlags(0)
	return logger, file, nil
}

// New returns a tint-formatted logger without colour, suitable for files and tests.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}))
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
