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
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"github.com/vidyasetu/VidyaSetu/services/router/observability"
	"github.com/vidyasetu/VidyaSetu/services/router/services"
	"go.opentelemetry.io/otel/codes"
)

// HandleChat runs a full conversational turn: translation, spelling
// correction, LLM classification, deterministic resolution, and
// remote-search enrichment.
//
// # Description
//
// The handler never fails on external-service errors; those degrade
// inside the resolver. Only malformed request bodies produce a
// non-200 response.
func HandleChat(resolver *services.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "HandleChat")
		defer span.End()

		var req datatypes.ChatRequest
		if err := c.BindJSON(&req); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Error("Failed to parse the chat request", "error", err)
			observability.RecordRequest("chat", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			observability.RecordRequest("chat", "error")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		resp := resolver.Chat(ctx, req)
		if len(resp.Results) > 0 {
			observability.RecordResolution(string(resp.Results[0].Category))
		}
		observability.RecordRequest("chat", "success")
		c.JSON(http.StatusOK, resp)
	}
}
