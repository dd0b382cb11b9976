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

import "errors"

// Sentinel errors for pipeline failures. Callers should use
// errors.Is to check for these.
var (
	// ErrPlanFailed indicates the planner could not obtain a plan
	// from the generation backend.
	ErrPlanFailed = errors.New("planning failed")

	// ErrPlanUnparseable indicates the planner response contained
	// no parseable JSON array of script definitions.
	ErrPlanUnparseable = errors.New("plan response unparseable")

	// ErrEmptyPlan indicates the planner produced zero usable
	// script definitions.
	ErrEmptyPlan = errors.New("plan contained no scripts")

	// ErrQueueEmpty indicates PopNext was called on an empty
	// pending queue.
	ErrQueueEmpty = errors.New("work queue empty")

	// ErrRunAborted indicates the orchestrator stopped before
	// draining the queue, e.g. on context cancellation.
	ErrRunAborted = errors.New("run aborted")

	// ErrInvalidConfig indicates the pipeline configuration failed
	// validation.
	ErrInvalidConfig = errors.New("invalid pipeline configuration")
)
