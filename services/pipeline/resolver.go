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
	"log/slog"

	"github.com/AleutianAI/scriptforge/services/llm"
)

// maxSourceExcerpt bounds how much of the referencing script is sent
// along with a dependency resolution request.
const maxSourceExcerpt = 2000

// Resolver turns raw dependency names discovered in a script into
// fully-specified work items.
type Resolver struct {
	client llm.Client
	cfg    Config
}

// NewResolver creates a resolver backed by the given generation client.
func NewResolver(client llm.Client, cfg Config) *Resolver {
	return &Resolver{client: client, cfg: cfg}
}

// Resolve requests definitions for unknown dependency names.
//
// Description:
//
//	Filters candidates against the name index so no generation call
//	is ever made for a script the pipeline already knows about,
//	caps the survivors at MaxDependencyFanout, and issues a single
//	structured request. Discovery is best-effort: a response that
//	cannot be parsed is logged and yields no new items, it never
//	fails the run. An empty candidate set returns immediately with
//	no generation call at all.
//
// Inputs:
//   - ctx: cancellation and deadline control.
//   - sourceName: the script whose code referenced the candidates.
//   - sourceCode: that script's accepted source, excerpted into the
//     prompt for context.
//   - candidates: normalized dependency names from the extractor.
//   - known: membership test across pending, processed, and accepted.
//
// Outputs:
//   - validated work items for genuinely new scripts, possibly empty.
func (r *Resolver) Resolve(ctx context.Context, sourceName, sourceCode string,
	candidates []string, known NameIndex) []WorkItem {

	unknown := make([]string, 0, len(candidates))
	for _, name := range candidates {
		name = NormalizeScriptName(name)
		if name == UnnamedScript || known.IsKnown(name) {
			continue
		}
		unknown = append(unknown, name)
	}
	if len(unknown) == 0 {
		return nil
	}
	if len(unknown) > r.cfg.MaxDependencyFanout {
		slog.Warn("Capping dependency fanout",
			"script", sourceName,
			"discovered", len(unknown),
			"limit", r.cfg.MaxDependencyFanout)
		unknown = unknown[:r.cfg.MaxDependencyFanout]
	}
	// A zero fanout empties the list here; no names means no call.
	if len(unknown) == 0 {
		return nil
	}

	excerpt := sourceCode
	if len(excerpt) > maxSourceExcerpt {
		excerpt = excerpt[:maxSourceExcerpt]
	}

	slog.Info("Resolving dependencies", "script", sourceName, "candidates", unknown)
	response, err := r.client.Generate(ctx,
		buildResolvePrompt(sourceName, excerpt, unknown), planParams())
	if err != nil {
		slog.Error("Dependency resolution call failed, continuing without",
			"script", sourceName, "error", err)
		return nil
	}

	items, err := parseDefinitionArray(response)
	if err != nil {
		slog.Error("Dependency resolution response unparseable, continuing without",
			"script", sourceName, "error", err)
		return nil
	}

	// Validate and dedup within the batch; the tracker dedups
	// against its own state again at enqueue time.
	seen := make(map[string]struct{})
	out := make([]WorkItem, 0, len(items))
	for _, item := range items {
		if item.Name == UnnamedScript {
			slog.Warn("Resolver produced unnamed definition, dropping",
				"script", sourceName)
			continue
		}
		if known.IsKnown(item.Name) {
			continue
		}
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}
		out = append(out, item)
	}
	return out
}
