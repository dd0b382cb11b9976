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
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestTrackerEnqueueDedup(t *testing.T) {
	tr := NewTracker()

	added := tr.Enqueue(
		WorkItem{Name: "player.gd", Purpose: "first"},
		WorkItem{Name: "Player.gd", Purpose: "duplicate spelling"},
		WorkItem{Name: "res://scripts/player.gd", Purpose: "duplicate path"},
		WorkItem{Name: "enemy.gd", Purpose: "second"},
	)
	if added != 2 {
		t.Fatalf("Enqueue added %d, want 2", added)
	}

	item, err := tr.PopNext()
	if err != nil {
		t.Fatalf("PopNext: %v", err)
	}
	// First occurrence wins, including its purpose.
	if item.Name != "player.gd" || item.Purpose != "first" {
		t.Errorf("got %q/%q, want player.gd/first", item.Name, item.Purpose)
	}
}

func TestTrackerEnqueueDropsUnnamed(t *testing.T) {
	tr := NewTracker()
	added := tr.Enqueue(
		WorkItem{Name: "", Purpose: "nameless"},
		WorkItem{Name: "   ", Purpose: "blank"},
	)
	if added != 0 {
		t.Errorf("Enqueue added %d unnamed items, want 0", added)
	}
	if tr.PendingLen() != 0 {
		t.Errorf("pending = %d, want 0", tr.PendingLen())
	}
}

func TestTrackerPopSkipsProcessed(t *testing.T) {
	tr := NewTracker()
	tr.Enqueue(WorkItem{Name: "a.gd"}, WorkItem{Name: "b.gd"})
	tr.MarkProcessed("a.gd")

	item, err := tr.PopNext()
	if err != nil {
		t.Fatalf("PopNext: %v", err)
	}
	if item.Name != "b.gd" {
		t.Errorf("PopNext = %q, want b.gd", item.Name)
	}
	if _, err := tr.PopNext(); !errors.Is(err, ErrQueueEmpty) {
		t.Errorf("expected ErrQueueEmpty, got %v", err)
	}
}

func TestTrackerPopWarnsOnProcessedHead(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	tr := NewTracker()
	tr.Enqueue(WorkItem{Name: "a.gd"}, WorkItem{Name: "b.gd"})
	tr.MarkProcessed("a.gd")

	if _, err := tr.PopNext(); err != nil {
		t.Fatalf("PopNext: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") ||
		!strings.Contains(out, "already-processed") {
		t.Errorf("discarding a processed head should warn, log was: %q", out)
	}
}

func TestTrackerIsKnownAcrossSets(t *testing.T) {
	tr := NewTracker()
	tr.Enqueue(WorkItem{Name: "pending.gd"})
	tr.MarkProcessed("processed.gd")
	tr.AddArtifact(Artifact{Name: "done.gd", Code: "extends Node"})

	for _, name := range []string{"pending.gd", "processed.gd", "done.gd"} {
		if !tr.IsKnown(name) {
			t.Errorf("IsKnown(%q) = false, want true", name)
		}
	}
	if tr.IsKnown("fresh.gd") {
		t.Error("IsKnown(fresh.gd) = true, want false")
	}
	// Normalized spellings hit the same entries.
	if !tr.IsKnown("res://scripts/Done.gd") {
		t.Error("IsKnown should normalize before lookup")
	}
}

func TestTrackerTruncatePending(t *testing.T) {
	tr := NewTracker()
	for _, n := range []string{"a.gd", "b.gd", "c.gd", "d.gd", "e.gd"} {
		tr.Enqueue(WorkItem{Name: n})
	}
	dropped := tr.TruncatePending(3)
	if dropped != 2 {
		t.Errorf("TruncatePending dropped %d, want 2", dropped)
	}
	if tr.PendingLen() != 3 {
		t.Errorf("pending = %d, want 3", tr.PendingLen())
	}
	// Head of queue survives, tail is cut.
	item, _ := tr.PopNext()
	if item.Name != "a.gd" {
		t.Errorf("head = %q, want a.gd", item.Name)
	}
}

func TestTrackerArtifactsOrdered(t *testing.T) {
	tr := NewTracker()
	tr.AddArtifact(Artifact{Name: "z.gd"})
	tr.AddArtifact(Artifact{Name: "a.gd"})
	tr.AddArtifact(Artifact{Name: "m.gd"})

	got := tr.Artifacts()
	want := []string{"z.gd", "a.gd", "m.gd"}
	if len(got) != len(want) {
		t.Fatalf("Artifacts len = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Artifacts[%d] = %q, want %q (acceptance order)",
				i, got[i].Name, name)
		}
	}
}
