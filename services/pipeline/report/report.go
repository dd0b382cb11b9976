// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package report renders the end-of-run markdown summary, including
// an LLM-produced scene setup guide.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AleutianAI/scriptforge/services/llm"
	"github.com/AleutianAI/scriptforge/services/pipeline"
)

// Generator builds the final run report.
type Generator struct {
	client llm.Client
}

// NewGenerator creates a report generator. The client may be nil, in
// which case the scene guide section is skipped.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{client: client}
}

// SceneGuide asks the backend for scene assembly instructions based
// on the accepted scripts. A failed call degrades to a short notice
// instead of failing the report.
func (g *Generator) SceneGuide(ctx context.Context, result *pipeline.RunResult) string {
	if len(result.Artifacts) == 0 {
		return "No code was generated to create scenes from."
	}
	if g.client == nil {
		return "Scene guide generation disabled (no backend configured)."
	}
	temp := float32(0.3)
	maxTokens := 4096
	guide, err := g.client.Generate(ctx,
		pipeline.BuildSceneGuidePrompt(result.Concept, result.Artifacts),
		llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens})
	if err != nil {
		slog.Warn("Scene guide generation failed", "error", err)
		return "Scene guide unavailable: the generation backend did not respond."
	}
	return strings.TrimSpace(guide)
}

// Render produces the full markdown report for a completed run.
func (g *Generator) Render(result *pipeline.RunResult, sceneGuide string) string {
	var b strings.Builder

	b.WriteString("# Godot Prototype Generation Report\n\n")
	b.WriteString("## Game Concept\n")
	b.WriteString(result.Concept)
	b.WriteString("\n\n## Generated GDScript Files\n\n")

	for _, a := range result.Artifacts {
		status := "accepted after max iterations"
		if a.Approved {
			status = "approved"
		}
		fmt.Fprintf(&b, "### %s\n", a.Name)
		fmt.Fprintf(&b, "_%s, %d iteration(s)_\n\n", status, a.Iterations)
		fmt.Fprintf(&b, "```gdscript\n%s\n```\n\n", a.Code)
	}

	if len(result.Failed) > 0 {
		b.WriteString("## Failed Scripts\n\n")
		for _, name := range result.Failed {
			fmt.Fprintf(&b, "- %s (generation failed)\n", name)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Scene Setup Guide\n")
	b.WriteString(sceneGuide)
	b.WriteString(`

## Next Steps

1. **Assemble the scenes** following the guide above
2. **Register singletons** listed as autoloads in the project settings
3. **Test the core loop** and adjust script parameters
4. **Replace placeholder visuals** with simple sprites and UI
5. **Playtest and iterate** on balance and feel
`)

	if result.BreakerTripped != "" {
		fmt.Fprintf(&b,
			"\n> Note: the run stopped early (%s limit reached); the script set may be incomplete.\n",
			result.BreakerTripped)
	}
	return b.String()
}
