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

import "fmt"

// ScriptState tracks where a work item is in its revision loop.
type ScriptState string

const (
	// StateDrafting: a generation or revision call is due.
	StateDrafting ScriptState = "drafting"

	// StateUnderReview: a draft exists and awaits review.
	StateUnderReview ScriptState = "under_review"

	// StateAccepted: the reviewer approved, or the iteration
	// budget forced acceptance.
	StateAccepted ScriptState = "accepted"

	// StateFinalized: the artifact is stored; terminal.
	StateFinalized ScriptState = "finalized"
)

// validScriptTransitions defines the legal state machine edges.
// UnderReview loops back to Drafting when a revision is requested.
var validScriptTransitions = map[ScriptState][]ScriptState{
	StateDrafting:    {StateUnderReview, StateAccepted},
	StateUnderReview: {StateAccepted, StateDrafting},
	StateAccepted:    {StateFinalized},
	StateFinalized:   {},
}

// scriptTracker is the per-item state machine used by the revision
// loop. Not safe for concurrent use; each work item owns one.
type scriptTracker struct {
	name    string
	current ScriptState
}

func newScriptTracker(name string) *scriptTracker {
	return &scriptTracker{name: name, current: StateDrafting}
}

// transition moves to the target state, rejecting illegal edges.
func (s *scriptTracker) transition(to ScriptState) error {
	for _, allowed := range validScriptTransitions[s.current] {
		if allowed == to {
			s.current = to
			return nil
		}
	}
	return fmt.Errorf("invalid state transition for %s: %s -> %s",
		s.name, s.current, to)
}
