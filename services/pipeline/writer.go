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
	"fmt"
	"log/slog"
	"time"

	"github.com/AleutianAI/scriptforge/services/llm"
	"github.com/AleutianAI/scriptforge/services/pipeline/review"
)

// Writer drives one work item through its full revision loop:
// generate, review, and revise until the reviewer approves or the
// iteration budget runs out.
type Writer struct {
	client   llm.Client
	reviewer review.Reviewer
	cfg      Config
	concept  string
}

// NewWriter creates a writer for the given run concept.
func NewWriter(client llm.Client, reviewer review.Reviewer, cfg Config,
	concept string) *Writer {
	return &Writer{client: client, reviewer: reviewer, cfg: cfg, concept: concept}
}

// Produce generates the script for item and returns the accepted
// artifact.
//
// Description:
//
//	Runs up to MaxIterationsPerScript generate+review passes. The
//	first pass uses the initial prompt; later passes feed the
//	previous draft and the reviewer feedback into the revision
//	prompt. The draft from the final pass is accepted even if the
//	reviewer still objects. Review transport failures never discard
//	a draft: the draft is accepted as-is with a logged warning,
//	since a flaky reviewer must not cost a finished generation.
//
// Outputs:
//   - the accepted artifact, or an error if a generation call failed
//     (the caller decides how that affects the run).
func (w *Writer) Produce(ctx context.Context, item WorkItem) (Artifact, error) {
	st := newScriptTracker(item.Name)

	var code string
	approved := false
	for item.Iteration = 1; item.Iteration <= w.cfg.MaxIterationsPerScript; item.Iteration++ {
		var prompt string
		if item.PreviousCode == "" {
			prompt = buildGeneratePrompt(w.concept, item)
			slog.Info("Generating script", "script", item.Name,
				"iteration", item.Iteration)
		} else {
			prompt = buildRevisePrompt(item)
			slog.Info("Revising script", "script", item.Name,
				"iteration", item.Iteration)
		}

		response, err := w.client.Generate(ctx, prompt, codeParams())
		if err != nil {
			return Artifact{}, fmt.Errorf("generating %s (iteration %d): %w",
				item.Name, item.Iteration, err)
		}
		code = extractCodeBlock(response)

		last := item.Iteration == w.cfg.MaxIterationsPerScript
		if last {
			if err := st.transition(StateAccepted); err != nil {
				return Artifact{}, err
			}
			slog.Info("Iteration budget reached, accepting draft",
				"script", item.Name, "iterations", item.Iteration)
			break
		}

		if err := st.transition(StateUnderReview); err != nil {
			return Artifact{}, err
		}
		result, err := w.reviewer.Review(ctx, item.Name, item.Purpose, code)
		if err != nil {
			slog.Warn("Review failed, accepting draft without review",
				"script", item.Name, "error", err)
			result = review.Result{Approved: true}
		}

		if result.Approved {
			if err := st.transition(StateAccepted); err != nil {
				return Artifact{}, err
			}
			approved = true
			break
		}

		if err := st.transition(StateDrafting); err != nil {
			return Artifact{}, err
		}
		item.PreviousCode = code
		item.Feedback = result.Feedback()
		slog.Info("Revision requested", "script", item.Name,
			"issues", len(result.Issues))
	}

	if err := st.transition(StateFinalized); err != nil {
		return Artifact{}, err
	}
	iterations := item.Iteration
	if iterations > w.cfg.MaxIterationsPerScript {
		iterations = w.cfg.MaxIterationsPerScript
	}
	return Artifact{
		Name:       item.Name,
		Code:       code,
		Iterations: iterations,
		Approved:   approved,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
