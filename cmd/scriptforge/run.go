// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/scriptforge/pkg/ux"
	"github.com/AleutianAI/scriptforge/services/llm"
	"github.com/AleutianAI/scriptforge/services/pipeline"
	"github.com/AleutianAI/scriptforge/services/pipeline/report"
	"github.com/AleutianAI/scriptforge/services/pipeline/runstore"
)

// buildConfig merges the config file (if any) with CLI flag overrides.
func buildConfig(path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	if path != "" {
		loaded, err := pipeline.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if backendType != "" {
		cfg.Backend = backendType
	}
	if reviewerType != "" {
		cfg.ReviewerStrategy = reviewerType
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if maxScripts > 0 {
		cfg.MaxProcessedScripts = maxScripts
	}
	if maxIter > 0 {
		cfg.MaxIterationsPerScript = maxIter
	}
	return cfg, cfg.Validate()
}

func runForge(cmd *cobra.Command, args []string) error {
	concept := strings.Join(args, " ")

	cfg, err := buildConfig(configPath)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	client, err := llm.NewClient(cfg.Backend)
	if err != nil {
		ux.Error(fmt.Sprintf("backend %q unavailable: %v", cfg.Backend, err))
		return err
	}

	orch, err := pipeline.NewOrchestrator(client, cfg, concept)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ux.Title("ScriptForge")
	ux.Info(fmt.Sprintf("concept: %s", concept))
	ux.Info(fmt.Sprintf("backend: %s, reviewer: %s", cfg.Backend, cfg.ReviewerStrategy))

	result, err := orch.Run(ctx, concept)
	if err != nil {
		ux.Error(fmt.Sprintf("run failed: %v", err))
		return err
	}

	approved, forced := 0, 0
	for _, a := range result.Artifacts {
		if a.Approved {
			approved++
			ux.ScriptStatus(a.Name, ux.IconSuccess,
				fmt.Sprintf("%d iteration(s)", a.Iterations))
		} else {
			forced++
			ux.ScriptStatus(a.Name, ux.IconWarning, "accepted at iteration limit")
		}
	}
	for _, name := range result.Failed {
		ux.ScriptStatus(name, ux.IconError, "generation failed")
	}
	ux.Summary(approved, forced, len(result.Failed), result.Processed)
	if result.BreakerTripped != "" {
		ux.Warning(fmt.Sprintf("run stopped early: %s limit reached",
			result.BreakerTripped))
	}

	gen := report.NewGenerator(client)
	guide := gen.SceneGuide(ctx, result)
	store := runstore.NewStore(cfg.OutputDir)
	runID := runstore.NewRunID()
	runDir, err := store.Save(runID, result, gen.Render(result, guide))
	if err != nil {
		ux.Error(fmt.Sprintf("failed to save run: %v", err))
		return err
	}
	ux.Success(fmt.Sprintf("run saved to %s", runDir))
	return nil
}
