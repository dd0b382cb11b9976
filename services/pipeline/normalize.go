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

import "strings"

// UnnamedScript is the sentinel filename used when a script
// definition arrives with no usable name. Sentinel-named items are
// dropped before entering the queue.
const UnnamedScript = "unnamed.gd"

// NormalizeScriptName canonicalizes a script filename so that every
// queue, dedup, and membership decision operates on one spelling.
//
// Description:
//
//	Lowercases, trims whitespace, converts backslashes to forward
//	slashes, and keeps only the final path segment. Appends the
//	".gd" extension if missing. Empty or path-only input maps to
//	the UnnamedScript sentinel.
//
// Inputs:
//   - raw: the filename as received from an LLM or a dependency scan.
//
// Outputs:
//   - the canonical form, e.g. "res://Scripts\Player" -> "player".
func NormalizeScriptName(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.ReplaceAll(name, "\\", "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" || name == ".gd" {
		return UnnamedScript
	}
	if !strings.HasSuffix(name, ".gd") {
		name += ".gd"
	}
	return name
}
