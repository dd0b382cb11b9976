// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for ScriptForge components.
//
// Built on Go's standard library slog package. Default output is
// stderr for CLI compatibility (Unix conventions); an optional log
// file can be added, and the service mode switches to JSON output
// for machine ingestion.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Level is the logging verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel maps a config string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config controls logger construction.
type Config struct {
	// Level is the minimum level that gets emitted.
	Level Level

	// JSON switches output from human-readable text to JSON.
	JSON bool

	// FilePath, when set, duplicates output to this file. Parent
	// directories are created as needed.
	FilePath string

	// Writer overrides the default stderr destination. Used by
	// tests.
	Writer io.Writer
}

// Setup builds a slog.Logger per config and installs it as the
// process default. Returns a close function for the log file, which
// is a no-op when no file is configured.
func Setup(cfg Config) (*slog.Logger, func() error, error) {
	out := cfg.Writer
	if out == nil {
		out = os.Stderr
	}

	closeFn := func() error { return nil }
	if cfg.FilePath != "" {
		path := expandPath(cfg.FilePath)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = io.MultiWriter(out, f)
		closeFn = f.Close
	}

	opts := &slog.HandlerOptions{Level: cfg.Level.toSlogLevel()}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// expandPath resolves a leading "~/" against the home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
