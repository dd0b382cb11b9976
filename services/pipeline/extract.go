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
	"regexp"
	"sort"
	"strings"
)

// Dependency reference patterns for GDScript source. Each pattern's
// first capture group is a candidate script name or class name.
var (
	typedDeclRe = regexp.MustCompile(`(?:var|const)\s+\w+\s*:\s*(\w+)`)
	extendsRe   = regexp.MustCompile(`extends\s+(\w+)`)
	preloadRe   = regexp.MustCompile(`preload\s*\(\s*["']res://(?:scripts/)?(\w+\.gd)["']`)
	loadRe      = regexp.MustCompile(`load\s*\(\s*["']res://(?:scripts/)?(\w+\.gd)["']`)
	newCallRe   = regexp.MustCompile(`(\w+)\.new\(\)`)
	requiresRe  = regexp.MustCompile(`#\s*requires\s*:\s*(\w+\.gd)`)
)

// Extractor scans generated GDScript for references to scripts that
// are not part of the builtin Godot vocabulary.
type Extractor struct{}

// Extract returns the deduplicated, sorted set of candidate script
// dependencies referenced by code.
//
// Description:
//
//	Runs every reference pattern over the source, normalizes each
//	capture to a filename, and filters out builtin Godot types,
//	underscore-private names, and the script's own filename. The
//	result is sorted so downstream behavior is deterministic.
//
// Inputs:
//   - selfName: the script's own filename, excluded from results.
//   - code: the GDScript source to scan.
//
// Outputs:
//   - sorted unique dependency filenames, e.g. ["enemy.gd", "hud.gd"].
func (Extractor) Extract(selfName, code string) []string {
	self := NormalizeScriptName(selfName)
	seen := make(map[string]struct{})

	collect := func(re *regexp.Regexp) {
		for _, m := range re.FindAllStringSubmatch(code, -1) {
			candidate := m[1]
			base := strings.TrimSuffix(candidate, ".gd")
			if strings.HasPrefix(base, "_") {
				continue
			}
			if IsBuiltinGodotType(base) || IsBuiltinGodotType(candidate) {
				continue
			}
			name := NormalizeScriptName(candidate)
			if name == UnnamedScript || name == self {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	collect(typedDeclRe)
	collect(extendsRe)
	collect(preloadRe)
	collect(loadRe)
	collect(newCallRe)
	collect(requiresRe)

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
