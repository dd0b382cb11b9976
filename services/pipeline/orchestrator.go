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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AleutianAI/scriptforge/services/llm"
	"github.com/AleutianAI/scriptforge/services/pipeline/review"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// RunResult summarizes a completed pipeline run.
type RunResult struct {
	Concept        string        `json:"concept"`
	Artifacts      []Artifact    `json:"artifacts"`
	Processed      int           `json:"processed"`
	Failed         []string      `json:"failed,omitempty"`
	BreakerTripped string        `json:"breaker_tripped,omitempty"`
	Elapsed        time.Duration `json:"elapsed_ns"`
}

// Orchestrator is the top-level driver: it owns the tracker, pulls
// work items one at a time, runs each through the writer's revision
// loop, feeds discovered dependencies back into the queue, and
// enforces the global circuit breakers.
//
// Thread Safety: Run processes exactly one item at a time. The
// tracker it owns is safe for concurrent inspection.
type Orchestrator struct {
	cfg      Config
	planner  *Planner
	writer   *Writer
	resolver *Resolver
	extract  Extractor
	tracker  *Tracker
}

// NewOrchestrator wires a full pipeline for one run.
func NewOrchestrator(client llm.Client, cfg Config, concept string) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := initMetrics(); err != nil {
		slog.Warn("Metrics init failed, continuing without", "error", err)
	}

	var reviewer review.Reviewer
	switch cfg.ReviewerStrategy {
	case StrategyDelegated:
		reviewer = review.NewDelegatedReviewer(client)
	case StrategyHeuristic:
		reviewer = review.NewHeuristicReviewer(review.DefaultRules())
	default:
		return nil, fmt.Errorf("%w: unknown reviewer strategy %q",
			ErrInvalidConfig, cfg.ReviewerStrategy)
	}

	return &Orchestrator{
		cfg:      cfg,
		planner:  NewPlanner(client, cfg),
		writer:   NewWriter(client, reviewer, cfg, concept),
		resolver: NewResolver(client, cfg),
		tracker:  NewTracker(),
	}, nil
}

// Tracker exposes run state for the HTTP service's status endpoint.
func (o *Orchestrator) Tracker() *Tracker {
	return o.tracker
}

// Run executes the whole pipeline for a concept.
//
// Description:
//
//	Plans the initial queue, then drains it: pop, generate through
//	the revision loop, store the artifact, scan it for unknown
//	references, resolve those into new work items, and append them.
//	Two breakers guarantee termination: the processed-count ceiling
//	stops the loop outright, and the pending-queue ceiling truncates
//	the queue tail after every enqueue. A failed generation marks
//	the item processed without an artifact and the run continues;
//	only planning failures and context cancellation abort the run.
func (o *Orchestrator) Run(ctx context.Context, concept string) (*RunResult, error) {
	ctx, span := tracer.Start(ctx, "Orchestrator.Run")
	defer span.End()
	span.SetAttributes(attribute.String("forge.concept", concept))

	start := time.Now()
	result := &RunResult{Concept: concept}

	initial, err := o.planner.Plan(ctx, concept)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	added := o.tracker.Enqueue(initial...)
	recordQueueDelta(ctx, added)
	slog.Info("Run started", "concept", concept, "initial_queue", added)

	for {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return result, fmt.Errorf("%w: %v", ErrRunAborted, err)
		}
		if o.tracker.ProcessedCount() >= o.cfg.MaxProcessedScripts {
			slog.Warn("Processed-count breaker tripped, stopping run",
				"processed", o.tracker.ProcessedCount(),
				"limit", o.cfg.MaxProcessedScripts)
			recordBreakerTrip(ctx, "max_processed")
			result.BreakerTripped = "max_processed"
			break
		}

		item, err := o.tracker.PopNext()
		if errors.Is(err, ErrQueueEmpty) {
			break
		}
		recordQueueDelta(ctx, -1)

		o.processItem(ctx, item, result)
	}

	result.Artifacts = o.tracker.Artifacts()
	result.Processed = o.tracker.ProcessedCount()
	result.Elapsed = time.Since(start)
	slog.Info("Run complete",
		"scripts", len(result.Artifacts),
		"processed", result.Processed,
		"failed", len(result.Failed),
		"elapsed", result.Elapsed)
	return result, nil
}

func (o *Orchestrator) processItem(ctx context.Context, item WorkItem,
	result *RunResult) {

	ctx, span := tracer.Start(ctx, "Orchestrator.processItem")
	defer span.End()
	span.SetAttributes(attribute.String("forge.script", item.Name))

	itemStart := time.Now()
	artifact, err := o.writer.Produce(ctx, item)
	if err != nil {
		// One bad generation must not halt the queue.
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("Script generation failed, skipping",
			"script", item.Name, "error", err)
		o.tracker.MarkProcessed(item.Name)
		result.Failed = append(result.Failed, item.Name)
		recordScriptProcessed(ctx, "failed", 0, time.Since(itemStart))
		return
	}
	o.tracker.AddArtifact(artifact)
	outcome := "accepted"
	if artifact.Approved {
		outcome = "approved"
	}
	recordScriptProcessed(ctx, outcome, artifact.Iterations, time.Since(itemStart))

	candidates := o.extract.Extract(artifact.Name, artifact.Code)
	discovered := o.resolver.Resolve(ctx, artifact.Name, artifact.Code,
		candidates, o.tracker)
	if len(discovered) > 0 {
		added := o.tracker.Enqueue(discovered...)
		recordDependencies(ctx, added)
		recordQueueDelta(ctx, added)
		slog.Info("Discovered dependencies",
			"script", artifact.Name, "enqueued", added)
	}

	if dropped := o.tracker.TruncatePending(o.cfg.MaxPendingQueue); dropped > 0 {
		slog.Warn("Pending-queue breaker tripped, truncating",
			"dropped", dropped, "limit", o.cfg.MaxPendingQueue)
		recordBreakerTrip(ctx, "max_pending")
		recordQueueDelta(ctx, -dropped)
	}
}
