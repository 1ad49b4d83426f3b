// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vidyasetu/VidyaSetu/services/llm"
	"github.com/vidyasetu/VidyaSetu/services/router/clients"
	"github.com/vidyasetu/VidyaSetu/services/router/intent"
	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
	"github.com/vidyasetu/VidyaSetu/services/router/observability"
	"github.com/vidyasetu/VidyaSetu/services/router/routes"
	"github.com/vidyasetu/VidyaSetu/services/router/services"
	"google.golang.org/grpc/credentials/insecure"

	// --- OpenTelemetry imports ---
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
)

func initTracer() (func(context.Context), error) {
	ctx := context.Background()

	otelEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otelEndpoint == "" {
		otelEndpoint = "vidyasetu-otel-collector:4317"
	}
	conn, err := grpc.NewClient(otelEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	traceExporter, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("router-service")))
	if err != nil {
		return nil, err
	}
	bsp := sdktrace.NewBatchSpanProcessor(traceExporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))
	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.
		TraceContext{}, propagation.Baggage{}))

	return func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceExporter.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown OTLP exporter", "error", err)
		}
	}, nil
}

// loadKnowledge builds the snapshot store. A malformed knowledge file
// is fatal; an absent one falls back to the built-in defaults.
func loadKnowledge(ctx context.Context) *knowledge.Store {
	path := os.Getenv("ROUTER_KNOWLEDGE_FILE")
	if path == "" {
		slog.Info("ROUTER_KNOWLEDGE_FILE not set, using built-in knowledge base")
		return knowledge.NewStore(knowledge.Default())
	}

	snap, err := knowledge.Load(path)
	if err != nil {
		log.Fatalf("FATAL: Could not load the knowledge base: %v", err)
	}
	store := knowledge.NewStore(snap)
	go func() {
		if err := store.Watch(ctx, path); err != nil {
			slog.Error("Knowledge watcher stopped", "error", err)
		}
	}()
	return store
}

func main() {
	port := os.Getenv("ROUTER_PORT")
	if port == "" {
		port = "12230"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// --- Init the tracer ---
	cleanup, err := initTracer()
	if err != nil {
		log.Fatalf("failed to setup the OTLP tracer: %v", err)
	}
	defer cleanup(context.Background())

	observability.InitMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := loadKnowledge(ctx)
	engine := intent.NewEngine(store, intent.DefaultEngineConfig())

	log.Println("Configuring the LLM Client")
	llmClient, err := llm.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	classifier := clients.NewIntentClassifier(llmClient, clients.DefaultClassifierConfig())
	translator := clients.NewTranslator(clients.DefaultTranslatorConfig())
	remote := clients.NewRemoteSearcher(clients.DefaultRemoteSearchConfig())

	resolver := services.NewResolver(engine, classifier, translator, remote)

	router := gin.Default()
	router.Use(otelgin.Middleware("router-service"))

	routes.SetupRoutes(router, resolver)

	log.Println("Starting the router server on port ", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
