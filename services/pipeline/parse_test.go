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
	"errors"
	"testing"
)

func TestParseDefinitionArray(t *testing.T) {
	response := `Here is the plan you asked for:
[
  {"filename": "Game.gd", "purpose": "main loop", "extends": "Node2D", "singleton": false},
  {"filename": "score_manager.gd", "purpose": "score", "extends": "Node", "singleton": true,
   "details": {"responsibilities": "track score", "count": 3}}
]
Let me know if you need anything else.`

	items, err := parseDefinitionArray(response)
	if err != nil {
		t.Fatalf("parseDefinitionArray: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Name != "game.gd" {
		t.Errorf("name not normalized: %q", items[0].Name)
	}
	if !items[1].Singleton {
		t.Error("singleton flag lost")
	}
	if items[1].Details["responsibilities"] != "track score" {
		t.Errorf("string detail = %q", items[1].Details["responsibilities"])
	}
	// Non-string detail values survive as raw JSON text.
	if items[1].Details["count"] != "3" {
		t.Errorf("numeric detail = %q, want \"3\"", items[1].Details["count"])
	}
}

func TestParseDefinitionArrayErrors(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no array at all", "I could not produce a plan, sorry."},
		{"malformed json", `[{"filename": "a.gd", }]`},
		{"array of scalars", `[1, 2, 3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseDefinitionArray(tt.response)
			if !errors.Is(err, ErrPlanUnparseable) {
				t.Errorf("want ErrPlanUnparseable, got %v", err)
			}
		})
	}
}

func TestExtractCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "gdscript fence",
			response: "Here you go:\n```gdscript\nextends Node\n```\nEnjoy!",
			want:     "extends Node",
		},
		{
			name:     "bare fence",
			response: "```\nextends Node2D\nvar x: int = 0\n```",
			want:     "extends Node2D\nvar x: int = 0",
		},
		{
			name:     "no fence returns everything",
			response: "  extends Node\nfunc _ready() -> void:\n\tpass\n",
			want:     "extends Node\nfunc _ready() -> void:\n\tpass",
		},
		{
			name:     "empty response",
			response: "",
			want:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCodeBlock(tt.response); got != tt.want {
				t.Errorf("extractCodeBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}
