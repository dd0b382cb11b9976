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
	"regexp"
	"strings"
)

// Structural patterns, compiled once.
var (
	extendsDeclRe   = regexp.MustCompile(`(?m)^extends\s+\w+`)
	untypedVarRe    = regexp.MustCompile(`(?m)^\s*var\s+\w+\s*(?::?=|$)`)
	typedVarRe      = regexp.MustCompile(`(?m)^\s*var\s+\w+\s*:\s*\w+`)
	readyFuncRe     = regexp.MustCompile(`(?m)^\s*func\s+_ready\s*\(`)
	placeholderRe   = regexp.MustCompile(`(?i)\bTODO\b|\bFIXME\b|\bplaceholder\b|\.\.\.\s*$|\bpass\s*#\s*implement`)
	getNodeRe       = regexp.MustCompile(`get_node\s*\(`)
	hasNodeRe       = regexp.MustCompile(`has_node\s*\(|get_node_or_null\s*\(`)
	loadCallRe      = regexp.MustCompile(`(?m)(?:^|[^a-z_])load\s*\(`)
	loadGuardRe     = regexp.MustCompile(`ResourceLoader\.exists\s*\(|FileAccess\.file_exists\s*\(`)
	leadingTabRe    = regexp.MustCompile(`(?m)^\t+\S`)
	leadingSpacesRe = regexp.MustCompile(`(?m)^ {2,}\S`)
)

// RuleConfig selects which structural checks the heuristic reviewer
// runs and which base-role name suffixes require a lifecycle entry
// point.
type RuleConfig struct {
	RequireExtends      bool
	EnforceStaticTyping bool
	ForbidPlaceholders  bool
	CheckIndentation    bool
	GuardNodeAccess     bool

	// ReadyFuncSuffixes lists filename suffixes (before ".gd",
	// case-insensitive) whose scripts must define _ready.
	ReadyFuncSuffixes []string
}

// DefaultRules enables every check with the standard role suffixes.
func DefaultRules() RuleConfig {
	return RuleConfig{
		RequireExtends:      true,
		EnforceStaticTyping: true,
		ForbidPlaceholders:  true,
		CheckIndentation:    true,
		GuardNodeAccess:     true,
		ReadyFuncSuffixes:   []string{"unit", "factory", "tower", "resourcenode"},
	}
}

// HeuristicReviewer applies deterministic structural checks. It makes
// no external calls and is a pure function of content plus rules.
type HeuristicReviewer struct {
	rules RuleConfig
}

// NewHeuristicReviewer creates a reviewer with the given rule set.
func NewHeuristicReviewer(rules RuleConfig) *HeuristicReviewer {
	return &HeuristicReviewer{rules: rules}
}

// Review implements the Reviewer interface. The error return is
// always nil; it exists so both strategies share one signature.
func (h *HeuristicReviewer) Review(_ context.Context, name, _ string,
	code string) (Result, error) {

	var issues []string

	if h.rules.RequireExtends && !extendsDeclRe.MatchString(code) {
		issues = append(issues,
			"missing 'extends' declaration at the top of the file")
	}

	if h.rules.EnforceStaticTyping {
		untyped := len(untypedVarRe.FindAllString(code, -1))
		typed := len(typedVarRe.FindAllString(code, -1))
		if untyped > 0 && untyped >= typed {
			issues = append(issues, fmt.Sprintf(
				"static typing required: %d variable declaration(s) lack type annotations", untyped))
		}
	}

	if h.requiresReadyFunc(name) && !readyFuncRe.MatchString(code) {
		issues = append(issues, fmt.Sprintf(
			"script '%s' plays a scene-node role but defines no _ready() function", name))
	}

	if h.rules.ForbidPlaceholders && placeholderRe.MatchString(code) {
		issues = append(issues,
			"placeholder or unfinished markers present (TODO/FIXME/placeholder)")
	}

	if h.rules.CheckIndentation &&
		leadingTabRe.MatchString(code) && leadingSpacesRe.MatchString(code) {
		issues = append(issues,
			"mixed indentation: file uses both tabs and spaces")
	}

	if h.rules.GuardNodeAccess {
		if getNodeRe.MatchString(code) && !hasNodeRe.MatchString(code) {
			issues = append(issues,
				"get_node() calls have no has_node()/get_node_or_null() guard")
		}
		if loadCallRe.MatchString(code) && !loadGuardRe.MatchString(code) {
			issues = append(issues,
				"load() calls have no ResourceLoader.exists() guard")
		}
	}

	return Result{Approved: len(issues) == 0, Issues: issues}, nil
}

func (h *HeuristicReviewer) requiresReadyFunc(name string) bool {
	base := strings.ToLower(strings.TrimSuffix(name, ".gd"))
	for _, suffix := range h.rules.ReadyFuncSuffixes {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}
