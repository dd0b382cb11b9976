// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/AleutianAI/scriptforge/services/llm"
)

// Planner produces the initial work queue from a game concept.
type Planner struct {
	client llm.Client
	cfg    Config
}

// NewPlanner creates a planner backed by the given generation client.
func NewPlanner(client llm.Client, cfg Config) *Planner {
	return &Planner{client: client, cfg: cfg}
}

// Plan asks the LLM for the script breakdown of a concept.
//
// Description:
//
//	Sends the planning prompt, parses the JSON array of script
//	definitions, drops unnamed entries, and truncates to
//	MaxInitialScripts. Planner failures are fatal for the run: a
//	pipeline with no plan has nothing to do.
//
// Inputs:
//   - ctx: cancellation and deadline control.
//   - concept: the one-line game description.
//
// Outputs:
//   - ordered work items ready to enqueue, or an error wrapping
//     ErrPlanFailed, ErrPlanUnparseable, or ErrEmptyPlan.
func (p *Planner) Plan(ctx context.Context, concept string) ([]WorkItem, error) {
	slog.Info("Planning initial scripts", "concept", concept)
	prompt := buildPlanPrompt(concept, p.cfg.MaxInitialScripts)
	response, err := p.client.Generate(ctx, prompt, planParams())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanFailed, err)
	}

	items, err := parseDefinitionArray(response)
	if err != nil {
		return nil, err
	}

	usable := items[:0]
	for _, item := range items {
		if item.Name == UnnamedScript {
			slog.Warn("Planner produced unnamed script, dropping", "purpose", item.Purpose)
			continue
		}
		usable = append(usable, item)
	}
	if len(usable) == 0 {
		return nil, ErrEmptyPlan
	}
	if len(usable) > p.cfg.MaxInitialScripts {
		slog.Warn("Truncating plan",
			"planned", len(usable), "limit", p.cfg.MaxInitialScripts)
		usable = usable[:p.cfg.MaxInitialScripts]
	}
	slog.Info("Plan ready", "scripts", len(usable))
	return usable, nil
}
