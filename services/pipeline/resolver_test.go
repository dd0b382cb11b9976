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
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/scriptforge/services/llm"
)

func TestResolverNewDependencies(t *testing.T) {
	mock := llm.NewMockClient(`[
		{"filename": "enemy.gd", "purpose": "enemy behavior", "extends": "CharacterBody2D"}
	]`)
	r := NewResolver(mock, DefaultConfig())
	tr := NewTracker()

	items := r.Resolve(context.Background(), "game.gd", "var e: Enemy",
		[]string{"enemy.gd"}, tr)
	require.Len(t, items, 1)
	assert.Equal(t, "enemy.gd", items[0].Name)
	assert.Equal(t, 1, mock.CallCount())
}

func TestResolverSkipsKnownBeforeCalling(t *testing.T) {
	mock := llm.NewMockClient()
	r := NewResolver(mock, DefaultConfig())
	tr := NewTracker()
	tr.AddArtifact(Artifact{Name: "enemy.gd", Code: "extends Node"})

	// Every candidate is already known, so no backend call happens.
	items := r.Resolve(context.Background(), "game.gd", "var e: Enemy",
		[]string{"enemy.gd"}, tr)
	assert.Empty(t, items)
	assert.Equal(t, 0, mock.CallCount())
}

func TestResolverEmptyCandidatesNoCall(t *testing.T) {
	mock := llm.NewMockClient()
	r := NewResolver(mock, DefaultConfig())

	items := r.Resolve(context.Background(), "game.gd", "code", nil, NewTracker())
	assert.Empty(t, items)
	assert.Equal(t, 0, mock.CallCount())
}

func TestResolverFanoutCap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDependencyFanout = 3

	var prompt string
	mock := llm.NewMockClient().WithResponseFunc(
		func(_ context.Context, p string) (string, error) {
			prompt = p
			return "[]", nil
		})
	r := NewResolver(mock, cfg)

	candidates := make([]string, 10)
	for i := range candidates {
		candidates[i] = fmt.Sprintf("dep%d.gd", i)
	}
	r.Resolve(context.Background(), "game.gd", "code", candidates, NewTracker())

	require.Equal(t, 1, mock.CallCount())
	sent := 0
	for i := range candidates {
		if strings.Contains(prompt, candidates[i]) {
			sent++
		}
	}
	assert.LessOrEqual(t, sent, 3, "at most fanout-cap names may reach the backend")
}

func TestResolverZeroFanoutNoCall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDependencyFanout = 0
	mock := llm.NewMockClient()
	r := NewResolver(mock, cfg)

	// The cap empties the list, so the backend must never be asked.
	items := r.Resolve(context.Background(), "game.gd", "code",
		[]string{"enemy.gd", "shop.gd"}, NewTracker())
	assert.Empty(t, items)
	assert.Equal(t, 0, mock.CallCount())
}

func TestResolverFailuresAreLocal(t *testing.T) {
	t.Run("backend error", func(t *testing.T) {
		mock := llm.NewMockClient().WithError(errors.New("timeout"))
		r := NewResolver(mock, DefaultConfig())
		items := r.Resolve(context.Background(), "game.gd", "code",
			[]string{"dep.gd"}, NewTracker())
		assert.Empty(t, items)
	})

	t.Run("unparseable response", func(t *testing.T) {
		r := NewResolver(llm.NewMockClient("no json here"), DefaultConfig())
		items := r.Resolve(context.Background(), "game.gd", "code",
			[]string{"dep.gd"}, NewTracker())
		assert.Empty(t, items)
	})
}

func TestResolverBatchDedupFirstWins(t *testing.T) {
	mock := llm.NewMockClient(`[
		{"filename": "shop.gd", "purpose": "first"},
		{"filename": "Shop.gd", "purpose": "second spelling"},
		{"filename": "", "purpose": "nameless"}
	]`)
	r := NewResolver(mock, DefaultConfig())

	items := r.Resolve(context.Background(), "game.gd", "code",
		[]string{"shop.gd"}, NewTracker())
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0].Purpose)
}
