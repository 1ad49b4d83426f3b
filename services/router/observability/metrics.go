// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides metrics and instrumentation for the router.
//
// # Description
//
// This package implements Prometheus metrics for monitoring query
// resolution. Metrics include:
//   - Request counters (by endpoint and status)
//   - Resolution tier counters (which tier answered each query)
//   - Latency histograms (resolve duration, classifier duration)
//   - Spelling correction and remote-search counters
//
// # Integration
//
// Metrics are exposed via /metrics endpoint. Use with Prometheus + Grafana
// for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const metricsNamespace = "vidyasetu"

// Subsystem for router metrics
const routerSubsystem = "router"

// RouterMetrics holds all Prometheus metrics for query resolution.
//
// # Description
//
// Provides counters and histograms for monitoring the resolution
// pipeline. Initialize once at startup via InitMetrics().
//
// # Thread Safety
//
// All operations are thread-safe.
type RouterMetrics struct {
	// RequestsTotal counts API requests by endpoint and status.
	// Labels: endpoint (chat, resolve, spelling), status (success, error)
	RequestsTotal *prometheus.CounterVec

	// ResolutionsTotal counts resolved queries by the category of the
	// winning result.
	// Labels: category (one_click, image_bank, class_subject, section,
	// search, none)
	ResolutionsTotal *prometheus.CounterVec

	// ResolveDurationSeconds measures the deterministic pipeline's
	// latency, excluding external calls.
	ResolveDurationSeconds prometheus.Histogram

	// ClassifierDurationSeconds measures LLM classification latency.
	// Labels: status (success, error)
	ClassifierDurationSeconds *prometheus.HistogramVec

	// CorrectionsTotal counts queries whose spelling was changed by the
	// corrector.
	CorrectionsTotal prometheus.Counter

	// RemoteSearchesTotal counts remote search attempts by retry rung
	// and outcome.
	// Labels: rung (corrected, variant, fallback), status (hit, miss, error)
	RemoteSearchesTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of RouterMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *RouterMetrics

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics. Should be called once
// at application startup.
//
// # Limitations
//
//   - Panics if called twice (duplicate registration).
func InitMetrics() *RouterMetrics {
	DefaultMetrics = &RouterMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: routerSubsystem,
				Name:      "requests_total",
				Help:      "Total API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		ResolutionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: routerSubsystem,
				Name:      "resolutions_total",
				Help:      "Resolved queries by winning result category",
			},
			[]string{"category"},
		),

		ResolveDurationSeconds: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: routerSubsystem,
				Name:      "resolve_duration_seconds",
				Help:      "Deterministic resolve latency in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
			},
		),

		ClassifierDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: routerSubsystem,
				Name:      "classifier_duration_seconds",
				Help:      "LLM intent classification latency in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
			},
			[]string{"status"},
		),

		CorrectionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: routerSubsystem,
				Name:      "corrections_total",
				Help:      "Queries changed by the spelling corrector",
			},
		),

		RemoteSearchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: routerSubsystem,
				Name:      "remote_searches_total",
				Help:      "Remote search attempts by retry rung and outcome",
			},
			[]string{"rung", "status"},
		),
	}
	return DefaultMetrics
}

// RecordRequest increments the request counter when metrics are
// initialized. Safe to call before InitMetrics.
func RecordRequest(endpoint, status string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.RequestsTotal.WithLabelValues(endpoint, status).Inc()
}

// RecordResolution increments the per-category resolution counter.
func RecordResolution(category string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ResolutionsTotal.WithLabelValues(category).Inc()
}

// ObserveResolveDuration records one deterministic resolve latency
// sample.
func ObserveResolveDuration(seconds float64) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ResolveDurationSeconds.Observe(seconds)
}

// ObserveClassifierDuration records one LLM classification latency
// sample.
func ObserveClassifierDuration(status string, seconds float64) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.ClassifierDurationSeconds.WithLabelValues(status).Observe(seconds)
}

// RecordCorrection increments the spelling-correction counter.
func RecordCorrection() {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.CorrectionsTotal.Inc()
}

// RecordRemoteSearch records one remote search attempt.
func RecordRemoteSearch(rung, status string) {
	if DefaultMetrics == nil {
		return
	}
	DefaultMetrics.RemoteSearchesTotal.WithLabelValues(rung, status).Inc()
}
