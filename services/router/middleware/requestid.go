// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the router service.
//
// The router carries no authentication of its own; it sits behind the
// portal's gateway, which terminates auth. What it needs is request
// correlation (every log line and trace tied to one request id) and
// access logging.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// =============================================================================
// Context Keys
// =============================================================================

// RequestIDHeader is the header carrying the correlation id. An
// inbound value is trusted and echoed; otherwise a fresh UUID is
// issued.
const RequestIDHeader = "X-Request-ID"

// requestIDKey is the gin context key for the correlation id.
// Using a typed key prevents collisions with other context values.
const requestIDKey = "vidyasetu_request_id"

// GetRequestID returns the correlation id for the current request, or
// "" when the middleware did not run.
func GetRequestID(c *gin.Context) string {
	if id, ok := c.Get(requestIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

// =============================================================================
// Middleware
// =============================================================================

// RequestID issues or propagates the X-Request-ID header and stores
// the id in the gin context for handlers and logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one structured log line per request after the
// handler chain completes.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().IsValid() {
			attrs = append(attrs, "trace_id", span.SpanContext().TraceID().String())
		}
		slog.Info("Request completed", attrs...)
	}
}
