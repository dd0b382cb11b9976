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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for pipeline operations.
var (
	tracer = otel.Tracer("scriptforge.pipeline")
	meter  = otel.Meter("scriptforge.pipeline")
)

// Metrics for pipeline operations.
var (
	scriptsProcessedTotal metric.Int64Counter
	scriptDuration        metric.Float64Histogram
	revisionsTotal        metric.Int64Counter
	dependenciesTotal     metric.Int64Counter
	breakerTripsTotal     metric.Int64Counter
	pendingQueueGauge     metric.Int64UpDownCounter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		scriptsProcessedTotal, err = meter.Int64Counter(
			"forge_scripts_processed_total",
			metric.WithDescription("Total scripts processed by outcome"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		scriptDuration, err = meter.Float64Histogram(
			"forge_script_duration_seconds",
			metric.WithDescription("Wall time per script including revisions"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		revisionsTotal, err = meter.Int64Counter(
			"forge_revisions_total",
			metric.WithDescription("Total revision passes beyond the first draft"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		dependenciesTotal, err = meter.Int64Counter(
			"forge_dependencies_discovered_total",
			metric.WithDescription("Total dependencies discovered and enqueued"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		breakerTripsTotal, err = meter.Int64Counter(
			"forge_breaker_trips_total",
			metric.WithDescription("Circuit breaker activations by breaker"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		pendingQueueGauge, err = meter.Int64UpDownCounter(
			"forge_pending_queue_size",
			metric.WithDescription("Current pending work queue size"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordScriptProcessed(ctx context.Context, outcome string,
	iterations int, elapsed time.Duration) {
	if scriptsProcessedTotal != nil {
		scriptsProcessedTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", outcome)))
	}
	if scriptDuration != nil {
		scriptDuration.Record(ctx, elapsed.Seconds())
	}
	if revisionsTotal != nil && iterations > 1 {
		revisionsTotal.Add(ctx, int64(iterations-1))
	}
}

func recordDependencies(ctx context.Context, n int) {
	if dependenciesTotal == nil || n == 0 {
		return
	}
	dependenciesTotal.Add(ctx, int64(n))
}

func recordBreakerTrip(ctx context.Context, breaker string) {
	if breakerTripsTotal == nil {
		return
	}
	breakerTripsTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.String("breaker", breaker)))
}

func recordQueueDelta(ctx context.Context, delta int) {
	if pendingQueueGauge == nil || delta == 0 {
		return
	}
	pendingQueueGauge.Add(ctx, int64(delta))
}
