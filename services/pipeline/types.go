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

import "time"

// WorkItem is a single script the pipeline has committed to generate.
//
// Items created by the planner carry Purpose, Extends, and optional
// Details. Items discovered through dependency scanning carry only a
// synthesized purpose. Iteration, PreviousCode, and Feedback are
// populated by the revision loop and are never part of the planner's
// JSON contract.
type WorkItem struct {
	// Name is the normalized script filename, e.g. "player.gd".
	Name string `json:"filename"`

	// Purpose is a one-to-two sentence description of what the
	// script should do.
	Purpose string `json:"purpose"`

	// Extends is the Godot base class the script derives from,
	// e.g. "CharacterBody2D". May be empty for discovered items.
	Extends string `json:"extends,omitempty"`

	// Singleton marks the script as an autoload candidate.
	Singleton bool `json:"singleton,omitempty"`

	// Details carries optional planner hints keyed by topic,
	// e.g. "movement": "8-directional, 300px/s".
	Details map[string]string `json:"details,omitempty"`

	// Iteration counts completed generate+review passes for this
	// item. Zero means the first draft has not been produced yet.
	Iteration int `json:"-"`

	// PreviousCode holds the most recent draft when a revision is
	// pending.
	PreviousCode string `json:"-"`

	// Feedback holds the reviewer critique that triggered the
	// pending revision.
	Feedback string `json:"-"`
}

// Artifact is an accepted script plus bookkeeping about how it
// was produced.
type Artifact struct {
	Name       string    `json:"filename"`
	Code       string    `json:"code"`
	Iterations int       `json:"iterations"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
}

// NameIndex is the read-only view of the tracker that dependency
// resolution needs: a single membership test across everything the
// pipeline already knows about (pending, processed, and accepted).
type NameIndex interface {
	// IsKnown reports whether the normalized script name is
	// already pending, processed, or accepted.
	IsKnown(name string) bool
}
