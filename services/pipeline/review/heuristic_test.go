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
	"strings"
	"testing"
)

func TestHeuristicReviewer(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		code        string
		wantIssue   string // substring of an expected issue; "" means approved
	}{
		{
			name:   "clean script approved",
			script: "game.gd",
			code:   "extends Node\nvar hp: int = 10\nfunc _start() -> void:\n\tpass",
		},
		{
			name:      "missing extends",
			script:    "game.gd",
			code:      "var hp: int = 10",
			wantIssue: "extends",
		},
		{
			name:      "untyped variables",
			script:    "game.gd",
			code:      "extends Node\nvar hp = 10\nvar name = \"x\"",
			wantIssue: "static typing",
		},
		{
			name:      "unit role without ready",
			script:    "soldier_unit.gd",
			code:      "extends CharacterBody2D\nvar hp: int = 5",
			wantIssue: "_ready",
		},
		{
			name:   "unit role with ready",
			script: "soldier_unit.gd",
			code:   "extends CharacterBody2D\nvar hp: int = 5\nfunc _ready() -> void:\n\tpass",
		},
		{
			name:      "todo marker",
			script:    "game.gd",
			code:      "extends Node\n# TODO: finish this later",
			wantIssue: "placeholder",
		},
		{
			name:      "mixed indentation",
			script:    "game.gd",
			code:      "extends Node\nfunc _go() -> void:\n\tvar a: int = 1\n  var b: int = 2",
			wantIssue: "indentation",
		},
		{
			name:      "unguarded get_node",
			script:    "game.gd",
			code:      "extends Node\nfunc _go() -> void:\n\tget_node(\"HUD\").show()",
			wantIssue: "get_node",
		},
		{
			name:   "guarded get_node",
			script: "game.gd",
			code:   "extends Node\nfunc _go() -> void:\n\tif has_node(\"HUD\"):\n\t\tget_node(\"HUD\").show()",
		},
		{
			name:      "unguarded load",
			script:    "game.gd",
			code:      "extends Node\nvar scene: PackedScene = load(\"res://a.tscn\")",
			wantIssue: "load",
		},
	}

	r := NewHeuristicReviewer(DefaultRules())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := r.Review(context.Background(), tt.script, "purpose", tt.code)
			if err != nil {
				t.Fatalf("Review: %v", err)
			}
			if tt.wantIssue == "" {
				if !result.Approved {
					t.Errorf("expected approval, got issues: %v", result.Issues)
				}
				return
			}
			if result.Approved {
				t.Fatalf("expected rejection naming %q, got approval", tt.wantIssue)
			}
			found := false
			for _, issue := range result.Issues {
				if strings.Contains(issue, tt.wantIssue) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("no issue mentions %q: %v", tt.wantIssue, result.Issues)
			}
		})
	}
}

func TestHeuristicReviewerDeterministic(t *testing.T) {
	code := "var hp = 10\n# TODO later"
	r := NewHeuristicReviewer(DefaultRules())
	first, _ := r.Review(context.Background(), "game.gd", "p", code)
	for i := 0; i < 5; i++ {
		again, _ := r.Review(context.Background(), "game.gd", "p", code)
		if len(again.Issues) != len(first.Issues) {
			t.Fatalf("issue count unstable: %d vs %d",
				len(again.Issues), len(first.Issues))
		}
		for j := range again.Issues {
			if again.Issues[j] != first.Issues[j] {
				t.Fatalf("issue order unstable at %d", j)
			}
		}
	}
}

func TestHeuristicReviewerDisabledChecks(t *testing.T) {
	rules := RuleConfig{} // everything off
	r := NewHeuristicReviewer(rules)
	result, err := r.Review(context.Background(), "game.gd", "p",
		"var untyped = 1\n# TODO")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !result.Approved {
		t.Errorf("disabled rules still produced issues: %v", result.Issues)
	}
}

func TestResultFeedback(t *testing.T) {
	r := Result{Issues: []string{"first", "second"}}
	want := "- first\n- second"
	if got := r.Feedback(); got != want {
		t.Errorf("Feedback() = %q, want %q", got, want)
	}
}
