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
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)
	codeFenceRe = regexp.MustCompile("(?s)```(?:gdscript|gd)?\\s*\n(.*?)```")
)

// extractJSONArray pulls the first JSON array out of an LLM response
// that may be wrapped in prose or a markdown fence.
func extractJSONArray(response string) (string, error) {
	match := jsonArrayRe.FindString(response)
	if match == "" {
		return "", fmt.Errorf("%w: no JSON array in response", ErrPlanUnparseable)
	}
	return match, nil
}

// rawDefinition mirrors the JSON shape the prompts ask for. Details
// values arrive as arbitrary JSON, so they are stringified here.
type rawDefinition struct {
	Filename  string                     `json:"filename"`
	Purpose   string                     `json:"purpose"`
	Extends   string                     `json:"extends"`
	Singleton bool                       `json:"singleton"`
	Details   map[string]json.RawMessage `json:"details"`
}

// parseDefinitionArray decodes a planner or resolver response into
// work items. The JSON must be an array of objects; anything else is
// an error the caller decides how to handle.
func parseDefinitionArray(response string) ([]WorkItem, error) {
	arrayText, err := extractJSONArray(response)
	if err != nil {
		return nil, err
	}
	var defs []rawDefinition
	if err := json.Unmarshal([]byte(arrayText), &defs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanUnparseable, err)
	}
	items := make([]WorkItem, 0, len(defs))
	for _, d := range defs {
		item := WorkItem{
			Name:      NormalizeScriptName(d.Filename),
			Purpose:   strings.TrimSpace(d.Purpose),
			Extends:   strings.TrimSpace(d.Extends),
			Singleton: d.Singleton,
		}
		if len(d.Details) > 0 {
			item.Details = make(map[string]string, len(d.Details))
			for k, v := range d.Details {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					s = string(v)
				}
				item.Details[k] = s
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// extractCodeBlock returns the GDScript source from an LLM response.
//
// The function is total: if the response has a fenced code block, the
// first block's contents are returned; otherwise the whole trimmed
// response is treated as code. Generation never fails for formatting
// reasons alone.
func extractCodeBlock(response string) string {
	if m := codeFenceRe.FindStringSubmatch(response); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(response)
}
