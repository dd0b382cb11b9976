// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package api exposes the ScriptForge pipeline over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/scriptforge/services/llm"
	"github.com/AleutianAI/scriptforge/services/pipeline"
	"github.com/AleutianAI/scriptforge/services/pipeline/report"
	"github.com/AleutianAI/scriptforge/services/pipeline/runstore"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ForgeRequest is the body for POST /v1/forge/run.
type ForgeRequest struct {
	// Concept is the one-line game description to build from.
	Concept string `json:"concept" binding:"required"`

	// Backend optionally overrides the configured generation
	// backend for this run.
	Backend string `json:"backend,omitempty"`

	// ReviewerStrategy optionally overrides the configured
	// reviewer ("heuristic" or "delegated").
	ReviewerStrategy string `json:"reviewer_strategy,omitempty"`
}

// ForgeResponse is the success payload for POST /v1/forge/run.
type ForgeResponse struct {
	RunID          string              `json:"run_id"`
	RunDir         string              `json:"run_dir,omitempty"`
	Scripts        int                 `json:"scripts"`
	Processed      int                 `json:"processed"`
	Failed         []string            `json:"failed,omitempty"`
	BreakerTripped string              `json:"breaker_tripped,omitempty"`
	Artifacts      []pipeline.Artifact `json:"artifacts"`
}

// Handlers holds the pipeline wiring shared across requests.
type Handlers struct {
	cfg   pipeline.Config
	store *runstore.Store
}

// NewHandlers creates the HTTP handlers for the given base config.
func NewHandlers(cfg pipeline.Config) *Handlers {
	return &Handlers{
		cfg:   cfg,
		store: runstore.NewStore(cfg.OutputDir),
	}
}

func getOrCreateRequestID(c *gin.Context) string {
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

// HandleForgeRun handles POST /v1/forge/run.
//
// Description:
//
//	Runs the full generation pipeline synchronously for the given
//	concept and persists the result to the run store. Long-running
//	by design: generation runs can take minutes, and the request
//	context carries cancellation to every backend call.
func (h *Handlers) HandleForgeRun(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleForgeRun")

	var req ForgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body",
			Code:  "INVALID_REQUEST",
		})
		return
	}

	cfg := h.cfg
	if req.Backend != "" {
		cfg.Backend = req.Backend
	}
	if req.ReviewerStrategy != "" {
		cfg.ReviewerStrategy = req.ReviewerStrategy
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("Invalid run configuration", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_CONFIG",
		})
		return
	}

	client, err := llm.NewClient(cfg.Backend)
	if err != nil {
		logger.Error("Backend unavailable", "backend", cfg.Backend, "error", err)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: err.Error(),
			Code:  "BACKEND_UNAVAILABLE",
		})
		return
	}

	orch, err := pipeline.NewOrchestrator(client, cfg, req.Concept)
	if err != nil {
		logger.Error("Failed to build pipeline", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: err.Error(),
			Code:  "PIPELINE_INIT_FAILED",
		})
		return
	}

	logger.Info("Starting forge run", "concept_len", len(req.Concept),
		"backend", cfg.Backend, "reviewer", cfg.ReviewerStrategy)
	result, err := orch.Run(c.Request.Context(), req.Concept)
	if err != nil {
		logger.Error("Forge run failed", "error", err)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error: err.Error(),
			Code:  "RUN_FAILED",
		})
		return
	}

	runID := runstore.NewRunID()
	gen := report.NewGenerator(client)
	guide := gen.SceneGuide(c.Request.Context(), result)
	runDir, err := h.store.Save(runID, result, gen.Render(result, guide))
	if err != nil {
		// The run itself succeeded; report the artifacts anyway.
		logger.Error("Failed to persist run", "run_id", runID, "error", err)
		runDir = ""
	}

	c.JSON(http.StatusOK, ForgeResponse{
		RunID:          runID,
		RunDir:         runDir,
		Scripts:        len(result.Artifacts),
		Processed:      result.Processed,
		Failed:         result.Failed,
		BreakerTripped: result.BreakerTripped,
		Artifacts:      result.Artifacts,
	})
}

// HandleHealth handles GET /v1/forge/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scriptforge",
	})
}
