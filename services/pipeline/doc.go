// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pipeline implements the ScriptForge generation pipeline.
//
// The pipeline turns a one-line game concept into a set of GDScript
// files. A planner asks an LLM for an initial list of script
// definitions, a work queue drains those definitions one at a time,
// and each generated script is scanned for references to scripts that
// do not exist yet. Newly discovered dependencies are fed back into
// the queue, so the plan grows as the code does.
//
// Each script passes through a bounded review loop before it is
// accepted: a reviewer (rule-based or LLM-delegated) critiques the
// draft, and the writer revises it until the reviewer approves or the
// per-script iteration budget runs out. Global circuit breakers cap
// the pending queue and the total number of processed scripts so a
// runaway dependency graph cannot run forever.
//
// The package is organized around a few small components:
//
//   - Planner: produces the initial work queue from a concept.
//   - Tracker: owns the pending queue, processed set, and artifacts.
//   - Writer: runs one generate-or-revise pass for a work item.
//   - Resolver: turns raw dependency names into new work items.
//   - Orchestrator: drives the loop and enforces the breakers.
//
// All LLM access goes through the services/llm Client interface, so
// the whole pipeline can be exercised in tests with a mock client.
package pipeline
