// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"github.com/vidyasetu/VidyaSetu/services/router/observability"
	"github.com/vidyasetu/VidyaSetu/services/router/services"
	"go.opentelemetry.io/otel/codes"
)

// HandleResolve runs the deterministic pipeline only. No LLM,
// translator, or remote calls, so latency is sub-millisecond and the
// endpoint works with every external service down.
//
// An optional ?limit= query parameter truncates the result list, used
// by the portal's suggestion dropdown.
func HandleResolve(resolver *services.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleResolve")
		defer span.End()

		var req datatypes.ResolveRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			observability.RecordRequest("resolve", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			observability.RecordRequest("resolve", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp := resolver.Resolve(ctx, req.Query)
		if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 && limit < len(resp.Results) {
			resp.Results = resp.Results[:limit]
		}

		if len(resp.Results) > 0 {
			observability.RecordResolution(string(resp.Results[0].Category))
		}
		observability.RecordRequest("resolve", "success")
		c.JSON(http.StatusOK, resp)
	}
}

// HandleSpelling corrects a query's spelling without resolving it.
func HandleSpelling(resolver *services.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := tracer.Start(c.Request.Context(), "HandleSpelling")
		defer span.End()

		var req datatypes.ResolveRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			observability.RecordRequest("spelling", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			observability.RecordRequest("spelling", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		observability.RecordRequest("spelling", "success")
		c.JSON(http.StatusOK, datatypes.SpellingResponse{
			Original:  req.Query,
			Corrected: resolver.CorrectSpelling(req.Query),
		})
	}
}
