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
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Reviewer strategy names accepted by Config.ReviewerStrategy.
const (
	StrategyHeuristic = "heuristic"
	StrategyDelegated = "delegated"
)

// Config holds the pipeline limits and knobs.
//
// All limits are circuit breakers, not targets: a run may finish well
// under them, but can never exceed them.
type Config struct {
	// MaxIterationsPerScript bounds generate+review passes for a
	// single script. The draft from the final pass is accepted
	// as-is even if the reviewer still objects.
	MaxIterationsPerScript int `yaml:"max_iterations_per_script" validate:"min=1,max=10"`

	// MaxInitialScripts truncates the planner output.
	MaxInitialScripts int `yaml:"max_initial_scripts" validate:"min=1,max=50"`

	// MaxPendingQueue bounds the pending work queue. Discovered
	// dependencies that would push the queue past this limit are
	// dropped.
	MaxPendingQueue int `yaml:"max_pending_queue" validate:"min=1,max=200"`

	// MaxProcessedScripts bounds the total number of scripts a
	// single run may process.
	MaxProcessedScripts int `yaml:"max_processed_scripts" validate:"min=1,max=500"`

	// MaxDependencyFanout bounds how many new work items a single
	// script may spawn.
	MaxDependencyFanout int `yaml:"max_dependency_fanout" validate:"min=0,max=50"`

	// ReviewerStrategy selects the review implementation.
	ReviewerStrategy string `yaml:"reviewer_strategy" validate:"oneof=heuristic delegated"`

	// Backend names the generation backend, e.g. "ollama",
	// "anthropic", "openai".
	Backend string `yaml:"backend" validate:"required"`

	// OutputDir is where accepted scripts and run reports are
	// written.
	OutputDir string `yaml:"output_dir" validate:"required"`
}

// DefaultConfig returns the limits used when no config file is given.
func DefaultConfig() Config {
	return Config{
		MaxIterationsPerScript: 3,
		MaxInitialScripts:      10,
		MaxPendingQueue:        30,
		MaxProcessedScripts:    25,
		MaxDependencyFanout:    5,
		ReviewerStrategy:       StrategyHeuristic,
		Backend:                "ollama",
		OutputDir:              "generated",
	}
}

// LoadConfig reads a YAML config file over the defaults and
// validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var configValidator = validator.New()

// Validate checks the config against its declared constraints.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// basicGodotTypes is the builtin vocabulary of Godot class and type
// names. Identifiers in this set are never treated as script
// dependencies.
var basicGodotTypes = map[string]struct{}{
	// Primitives and containers
	"int": {}, "float": {}, "bool": {}, "String": {}, "Array": {},
	"Dictionary": {}, "Vector2": {}, "Vector2i": {}, "Vector3": {},
	"Vector3i": {}, "Rect2": {}, "Transform2D": {}, "Transform3D": {},
	"Color": {}, "NodePath": {}, "Callable": {}, "Signal": {},
	"StringName": {}, "PackedStringArray": {}, "PackedInt32Array": {},
	"PackedFloat32Array": {}, "PackedVector2Array": {}, "Variant": {},

	// Core nodes
	"Node": {}, "Node2D": {}, "Node3D": {}, "CanvasItem": {},
	"CanvasLayer": {}, "Control": {}, "Timer": {}, "Camera2D": {},
	"Camera3D": {}, "Viewport": {}, "SubViewport": {}, "Window": {},

	// Physics
	"CharacterBody2D": {}, "CharacterBody3D": {}, "RigidBody2D": {},
	"RigidBody3D": {}, "StaticBody2D": {}, "StaticBody3D": {},
	"Area2D": {}, "Area3D": {}, "CollisionShape2D": {},
	"CollisionShape3D": {}, "CollisionPolygon2D": {}, "RayCast2D": {},
	"RayCast3D": {}, "PhysicsBody2D": {}, "PhysicsBody3D": {},

	// Rendering and audio
	"Sprite2D": {}, "Sprite3D": {}, "AnimatedSprite2D": {},
	"AnimationPlayer": {}, "AnimationTree": {}, "TileMap": {},
	"TileMapLayer": {}, "MeshInstance2D": {}, "MeshInstance3D": {},
	"AudioStreamPlayer": {}, "AudioStreamPlayer2D": {},
	"AudioStreamPlayer3D": {}, "Particles2D": {}, "GPUParticles2D": {},
	"Light2D": {}, "PointLight2D": {}, "DirectionalLight2D": {},

	// UI
	"Label": {}, "RichTextLabel": {}, "Button": {}, "TextureButton": {},
	"TextureRect": {}, "ColorRect": {}, "Panel": {}, "PanelContainer": {},
	"VBoxContainer": {}, "HBoxContainer": {}, "GridContainer": {},
	"MarginContainer": {}, "CenterContainer": {}, "ScrollContainer": {},
	"ProgressBar": {}, "TextureProgressBar": {}, "LineEdit": {},
	"TextEdit": {}, "ItemList": {}, "OptionButton": {}, "CheckBox": {},
	"HSlider": {}, "VSlider": {}, "Tree": {}, "TabContainer": {},
	"PopupMenu": {}, "AcceptDialog": {}, "ConfirmationDialog": {},

	// Resources
	"Resource": {}, "PackedScene": {}, "Texture2D": {}, "Mesh": {},
	"Shape2D": {}, "CircleShape2D": {}, "RectangleShape2D": {},
	"CapsuleShape2D": {}, "AudioStream": {}, "Font": {}, "Theme": {},
	"StyleBox": {}, "Curve": {}, "Curve2D": {}, "Gradient": {},
	"Animation": {}, "SpriteFrames": {}, "Shader": {},
	"ShaderMaterial": {},

	// Globals and helpers
	"Object": {}, "RefCounted": {}, "Engine": {}, "Input": {},
	"InputEvent": {}, "InputEventKey": {}, "InputEventMouseButton": {},
	"InputEventMouseMotion": {}, "OS": {}, "Time": {}, "JSON": {},
	"FileAccess": {}, "DirAccess": {}, "ResourceLoader": {},
	"ResourceSaver": {}, "SceneTree": {}, "SceneTreeTimer": {},
	"Tween": {}, "RandomNumberGenerator": {}, "Marshalls": {},
	"ConfigFile": {}, "Mutex": {}, "Thread": {}, "Semaphore": {},
}

// IsBuiltinGodotType reports whether name is part of the builtin
// Godot vocabulary.
func IsBuiltinGodotType(name string) bool {
	_, ok := basicGodotTypes[name]
	return ok
}
