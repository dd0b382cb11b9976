// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AleutianAI/scriptforge/services/llm"
)

// approvalThreshold is the trimmed-length cutoff below which a
// critique counts as approval. A terse "OK" or "Looks good" passes;
// anything substantive becomes revision feedback. Deliberately coarse:
// parsing free-form critique into structure is not worth the fragility.
const approvalThreshold = 30

const critiquePromptTemplate = `You are a strict GDScript code reviewer for a Godot 4 project.

Review the file '%s' whose purpose is: %s

` + "```gdscript\n%s\n```" + `

Check for: missing static typing, missing extends declaration,
placeholder or unfinished code, broken node access, and logic that
does not serve the stated purpose.

If the code is acceptable, respond with "OK" and nothing else.
Otherwise list the concrete problems to fix.`

// DelegatedReviewer sends each script back to the generation backend
// for a qualitative critique.
type DelegatedReviewer struct {
	client llm.Client
}

// NewDelegatedReviewer creates a reviewer backed by the given client.
func NewDelegatedReviewer(client llm.Client) *DelegatedReviewer {
	return &DelegatedReviewer{client: client}
}

// Review implements the Reviewer interface.
//
// Description:
//
//	Requests a free-form critique. A trimmed response longer than
//	the approval threshold is treated as "has issues" with the
//	critique text as the single issue; shorter responses approve.
//	Backend errors propagate so the caller can decide whether to
//	accept the draft anyway.
func (d *DelegatedReviewer) Review(ctx context.Context, name, purpose,
	code string) (Result, error) {

	prompt := fmt.Sprintf(critiquePromptTemplate, name, purpose, code)
	temp := float32(0.2)
	maxTokens := 2048
	response, err := d.client.Generate(ctx, prompt,
		llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens})
	if err != nil {
		return Result{}, fmt.Errorf("delegated review of %s: %w", name, err)
	}

	critique := strings.TrimSpace(response)
	if len(critique) > approvalThreshold {
		slog.Info("Reviewer requested changes", "script", name,
			"feedback_len", len(critique))
		return Result{Approved: false, Issues: []string{critique}}, nil
	}
	slog.Info("Reviewer approved script", "script", name)
	return Result{Approved: true}, nil
}
