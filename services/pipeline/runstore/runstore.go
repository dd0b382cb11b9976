// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package runstore persists pipeline runs to disk: one folder per
// run holding the generated scripts, the run summary, and the
// markdown report.
package runstore

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/AleutianAI/scriptforge/services/pipeline"
	"github.com/google/uuid"
)

// Store writes run output under a base directory.
type Store struct {
	baseDir string
}

// NewStore creates a store rooted at baseDir. The directory is
// created on first save, not here.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// NewRunID generates a sortable unique run identifier,
// e.g. "20250131_142255_a1b2c3d4".
func NewRunID() string {
	return fmt.Sprintf("%s_%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8])
}

// Save writes the run's scripts, summary JSON, and report markdown
// into a fresh run folder and returns its path.
//
// Layout:
//
//	<base>/<runID>/scripts/<name>.gd
//	<base>/<runID>/summary.json
//	<base>/<runID>/report.md
func (s *Store) Save(runID string, result *pipeline.RunResult, reportMD string) (string, error) {
	runDir := filepath.Join(s.baseDir, runID)
	scriptsDir := filepath.Join(runDir, "scripts")
	if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run folder %s: %w", runDir, err)
	}

	for _, a := range result.Artifacts {
		path := filepath.Join(scriptsDir, a.Name)
		if err := os.WriteFile(path, []byte(a.Code), 0o644); err != nil {
			return "", fmt.Errorf("writing script %s: %w", a.Name, err)
		}
	}

	summary, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing run summary: %w", err)
	}
	if err := os.WriteFile(filepath.Join(runDir, "summary.json"), summary, 0o644); err != nil {
		return "", fmt.Errorf("writing run summary: %w", err)
	}

	if reportMD != "" {
		if err := os.WriteFile(filepath.Join(runDir, "report.md"), []byte(reportMD), 0o644); err != nil {
			return "", fmt.Errorf("writing run report: %w", err)
		}
	}

	slog.Info("Run saved", "run_id", runID, "dir", runDir,
		"scripts", len(result.Artifacts))
	return runDir, nil
}
