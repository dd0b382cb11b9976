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
	"fmt"
	"sort"
	"strings"

	"github.com/AleutianAI/scriptforge/services/llm"
)

// Prompt templates for the pipeline's generation calls. All templates
// target Godot 4.x GDScript with static typing.

const planPromptTemplate = `You are an expert Godot game developer planning a new prototype.

Game concept: %s

List every GDScript file needed for a playable prototype of this
concept. Cover the core game loop, state management, resources, units
or actors, UI, and any helper utilities. Plan at most %d files.

Respond with a JSON array only, no prose or markdown, where each
element has this shape:
[
  {
    "filename": "example.gd",
    "purpose": "what this file does",
    "extends": "Node2D",
    "singleton": false,
    "details": {
      "responsibilities": "comma-separated key features"
    }
  }
]`

const generatePromptTemplate = `You are an expert GDScript programmer working on a Godot 4 prototype.
Game concept: %s

Write a GDScript file named '%s' whose purpose is: %s
%s
Coding guidelines:
- Godot 4.x syntax, static typing for all variables and parameters
- extends %s at the top of the file
- signals for communication between nodes
- "_" prefix for private functions
- handle errors gracefully, no placeholder TODO stubs

Respond with ONLY the GDScript code, no explanation.`

const revisePromptTemplate = `You are an expert GDScript programmer working on a Godot 4 prototype.

You previously wrote the file '%s' whose purpose is: %s

Your previous code:
` + "```gdscript\n%s\n```" + `

Revise the code to address this feedback:
%s

Respond with ONLY the improved GDScript code, no explanation.`

const resolvePromptTemplate = `The following scripts were referenced by '%s' but do not exist yet: %s

Source that referenced them (may be truncated):
` + "```gdscript\n%s\n```" + `

For each missing script, produce a definition object:
{
  "filename": "[name].gd",
  "purpose": "brief description",
  "extends": "most appropriate Godot class",
  "details": {"responsibilities": "main responsibility"}
}

Respond with a valid JSON array only, no explanations.`

const sceneGuidePromptTemplate = `You are a Godot engine expert helping set up scenes for a new game.

Game concept: %s

Generated script files:
%s

Code excerpts:
%s

Provide clear, numbered steps for creating the main scenes of this
prototype: node hierarchy, script attachments, autoload registration,
and any required configuration.`

func buildPlanPrompt(concept string, maxScripts int) string {
	return fmt.Sprintf(planPromptTemplate, concept, maxScripts)
}

func buildGeneratePrompt(concept string, item WorkItem) string {
	extends := item.Extends
	if extends == "" {
		extends = "Node"
	}
	return fmt.Sprintf(generatePromptTemplate,
		concept, item.Name, item.Purpose, detailsSection(item.Details), extends)
}

func buildRevisePrompt(item WorkItem) string {
	return fmt.Sprintf(revisePromptTemplate,
		item.Name, item.Purpose, item.PreviousCode, item.Feedback)
}

func buildResolvePrompt(sourceName, sourceExcerpt string, names []string) string {
	return fmt.Sprintf(resolvePromptTemplate,
		sourceName, strings.Join(names, ", "), sourceExcerpt)
}

// BuildSceneGuidePrompt is exported for the report generator.
func BuildSceneGuidePrompt(concept string, artifacts []Artifact) string {
	names := make([]string, 0, len(artifacts))
	excerpts := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		names = append(names, "- "+a.Name)
		code := a.Code
		if len(code) > 300 {
			code = code[:300] + "..."
		}
		excerpts = append(excerpts, fmt.Sprintf("// %s:\n%s", a.Name, code))
	}
	return fmt.Sprintf(sceneGuidePromptTemplate,
		concept, strings.Join(names, "\n"), strings.Join(excerpts, "\n\n"))
}

func detailsSection(details map[string]string) string {
	if len(details) == 0 {
		return ""
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString("\nAdditional requirements:\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %s\n", k, details[k])
	}
	return b.String()
}

// planParams are the sampling settings for structured JSON requests:
// low temperature keeps the output parseable.
func planParams() llm.GenerationParams {
	temp := float32(0.2)
	maxTokens := 4096
	return llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens}
}

// codeParams are the sampling settings for script generation.
func codeParams() llm.GenerationParams {
	temp := float32(0.4)
	maxTokens := 6000
	return llm.GenerationParams{Temperature: &temp, MaxTokens: &maxTokens}
}
