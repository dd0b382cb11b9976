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

import "testing"

func TestNormalizeScriptName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple name", "player.gd", "player.gd"},
		{"uppercase", "Player.GD", "player.gd"},
		{"missing extension", "player", "player.gd"},
		{"surrounding whitespace", "  player.gd \n", "player.gd"},
		{"forward slash path", "res://scripts/player.gd", "player.gd"},
		{"backslash path", "res:\\\\scripts\\player.gd", "player.gd"},
		{"mixed separators", "scripts\\ui/hud.gd", "hud.gd"},
		{"empty", "", UnnamedScript},
		{"whitespace only", "   ", UnnamedScript},
		{"extension only", ".gd", UnnamedScript},
		{"trailing slash", "scripts/", UnnamedScript},
		{"pascal case class", "EnemySpawner", "enemyspawner.gd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeScriptName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeScriptName(%q) = %q, want %q",
					tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeScriptNameIdempotent(t *testing.T) {
	inputs := []string{"Player.gd", "res://scripts/Enemy", "HUD", ""}
	for _, in := range inputs {
		once := NormalizeScriptName(in)
		twice := NormalizeScriptName(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q",
				in, once, twice)
		}
	}
}
