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
	"log/slog"
	"sync"
)

// Tracker owns the run's work queue and its memory of what has
// already been handled. It is the single source of truth for script
// name membership: the planner, resolver, and orchestrator all dedup
// against it.
//
// Thread Safety: safe for concurrent use. The orchestrator is
// single-threaded today, but the HTTP service inspects tracker state
// from other goroutines.
type Tracker struct {
	mu        sync.Mutex
	pending   []WorkItem
	processed map[string]struct{}
	artifacts map[string]Artifact
	order     []string
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		processed: make(map[string]struct{}),
		artifacts: make(map[string]Artifact),
	}
}

// Enqueue appends items to the pending queue, skipping any whose
// normalized name is already known (first occurrence wins) or is the
// unnamed sentinel. Returns how many items were actually added.
func (t *Tracker) Enqueue(items ...WorkItem) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	added := 0
	for _, item := range items {
		item.Name = NormalizeScriptName(item.Name)
		if item.Name == UnnamedScript {
			slog.Warn("Dropping unnamed work item", "purpose", item.Purpose)
			continue
		}
		if t.isKnownLocked(item.Name) {
			continue
		}
		t.pending = append(t.pending, item)
		added++
	}
	return added
}

// PopNext removes and returns the head of the pending queue. Items
// whose name became known since they were enqueued are discarded on
// the way out, so a name can never be processed twice.
func (t *Tracker) PopNext() (WorkItem, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for len(t.pending) > 0 {
		item := t.pending[0]
		t.pending = t.pending[1:]
		if _, done := t.processed[item.Name]; done {
			slog.Warn("Skipping already-processed item", "script", item.Name)
			continue
		}
		return item, nil
	}
	return WorkItem{}, ErrQueueEmpty
}

// PendingLen returns the current pending queue length.
func (t *Tracker) PendingLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// ProcessedCount returns how many scripts have been marked processed.
func (t *Tracker) ProcessedCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.processed)
}

// TruncatePending drops queue entries beyond limit. Returns the
// number dropped.
func (t *Tracker) TruncatePending(limit int) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if limit < 0 || len(t.pending) <= limit {
		return 0
	}
	dropped := len(t.pending) - limit
	t.pending = t.pending[:limit]
	return dropped
}

// MarkProcessed records that a script name has been handled, whether
// or not it produced an artifact.
func (t *Tracker) MarkProcessed(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.processed[NormalizeScriptName(name)] = struct{}{}
}

// AddArtifact stores an accepted script and marks its name processed.
func (t *Tracker) AddArtifact(a Artifact) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a.Name = NormalizeScriptName(a.Name)
	if _, exists := t.artifacts[a.Name]; !exists {
		t.order = append(t.order, a.Name)
	}
	t.artifacts[a.Name] = a
	t.processed[a.Name] = struct{}{}
}

// Artifacts returns accepted scripts in acceptance order.
func (t *Tracker) Artifacts() []Artifact {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Artifact, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.artifacts[name])
	}
	return out
}

// IsKnown implements NameIndex. A name is known once it is pending,
// processed, or accepted.
func (t *Tracker) IsKnown(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isKnownLocked(NormalizeScriptName(name))
}

func (t *Tracker) isKnownLocked(name string) bool {
	if _, ok := t.processed[name]; ok {
		return true
	}
	if _, ok := t.artifacts[name]; ok {
		return true
	}
	for _, p := range t.pending {
		if p.Name == name {
			return true
		}
	}
	return false
}
