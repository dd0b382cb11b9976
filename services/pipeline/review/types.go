// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package review evaluates generated GDScript before it is accepted.
//
// Two strategies implement the Reviewer interface. The heuristic
// strategy runs a fixed battery of structural checks and is fully
// deterministic. The delegated strategy sends the code back to the
// generation backend for free-form critique and treats any
// substantive response as a revision request.
package review

import "context"

// Result is the outcome of one review pass.
type Result struct {
	// Approved means the script may be finalized as-is.
	Approved bool

	// Issues lists the problems found, in check order. Empty when
	// Approved is true. The writer joins these into the revision
	// feedback.
	Issues []string
}

// Feedback flattens the issues into one revision-prompt string.
func (r Result) Feedback() string {
	out := ""
	for i, issue := range r.Issues {
		if i > 0 {
			out += "\n"
		}
		out += "- " + issue
	}
	return out
}

// Reviewer evaluates one script's content.
//
// Implementations must not mutate any pipeline state; the revision
// loop owns all bookkeeping.
type Reviewer interface {
	Review(ctx context.Context, name, purpose, code string) (Result, error)
}
