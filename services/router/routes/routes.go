// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidyasetu/VidyaSetu/services/router/handlers"
	"github.com/vidyasetu/VidyaSetu/services/router/middleware"
	"github.com/vidyasetu/VidyaSetu/services/router/services"
)

// SetupRoutes registers all router endpoints on the given engine.
func SetupRoutes(router *gin.Engine, resolver *services.Resolver) {
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/chat", handlers.HandleChat(resolver))
		v1.POST("/resolve", handlers.HandleResolve(resolver))
		v1.POST("/spelling", handlers.HandleSpelling(resolver))
	}
}
