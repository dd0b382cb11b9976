// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package api

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all ScriptForge routes with the router.
//
// Endpoints:
//
//	POST /v1/forge/run - Run the generation pipeline for a concept
//	GET  /v1/forge/health - Health check
//
// Example:
//
//	handlers := api.NewHandlers(cfg)
//	v1 := router.Group("/v1")
//	api.RegisterRoutes(v1, handlers)
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	forge := rg.Group("/forge")
	{
		forge.POST("/run", handlers.HandleForgeRun)
		forge.GET("/health", handlers.HandleHealth)
	}
}
