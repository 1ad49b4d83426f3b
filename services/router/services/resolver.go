// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package services wires the deterministic engine, the LLM classifier,
// and the external collaborators into the chat and resolve flows
// exposed by the handlers.
package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"github.com/vidyasetu/VidyaSetu/services/router/intent"
	"github.com/vidyasetu/VidyaSetu/services/router/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("vidyasetu.router.services")

// Classifier is the LLM intent classification contract.
type Classifier interface {
	Classify(ctx context.Context, message string, history []datatypes.Message) (datatypes.Intent, error)
}

// Translator converts regional-language text to English.
type Translator interface {
	Translate(ctx context.Context, text string) datatypes.Translation
}

// RemoteSearcher queries the portal's content search API.
type RemoteSearcher interface {
	Enabled() bool
	Search(ctx context.Context, query string) ([]datatypes.RemoteResult, error)
}

// fallbackSearchTerms maps an engine category to broad portal terms
// tried when neither the corrected query nor its synonym variants
// produce remote hits.
var fallbackSearchTerms = map[datatypes.Category][]string{
	datatypes.CategoryImageBank:    {"pictures", "images"},
	datatypes.CategoryClassSubject: {"textbook", "lessons"},
	datatypes.CategorySection:      {"activities"},
	datatypes.CategorySearch:       {"resources"},
}

// Resolver runs the full query pipeline.
//
// # Description
//
// Resolver owns reconciliation between the deterministic engine and
// the LLM classifier. The engine is authoritative for destinations
// (url, category, confidence); the classifier contributes only the
// conversational message, the suggestions, and the judgement of
// whether the turn is a greeting at all. A classifier failure degrades
// to a canned greeting with the engine's results still attached.
//
// # Thread Safety
//
// Safe for concurrent use. All state lives in the knowledge snapshot,
// which is immutable, and in the injected clients, which are
// themselves concurrency-safe.
type Resolver struct {
	engine     *intent.Engine
	classifier Classifier
	translator Translator
	remote     RemoteSearcher
}

// NewResolver wires the pipeline. translator and remote may be nil
// when the corresponding service is not deployed.
func NewResolver(engine *intent.Engine, classifier Classifier, translator Translator, remote RemoteSearcher) *Resolver {
	return &Resolver{
		engine:     engine,
		classifier: classifier,
		translator: translator,
		remote:     remote,
	}
}

// Chat runs one conversational turn.
//
// # Description
//
// The turn proceeds: translate (ASCII short-circuits) -> correct
// spelling -> classify via LLM -> deterministic resolve -> reconcile
// -> remote-search enrichment. Every external call catches its own
// failure; the deterministic path always completes.
//
// # Inputs
//
//   - ctx: Cancellation and tracing. Bounds the classifier and remote
//     search calls.
//   - req: A validated ChatRequest.
//
// # Outputs
//
//   - datatypes.ChatResponse: Always usable; never an error surface.
func (r *Resolver) Chat(ctx context.Context, req datatypes.ChatRequest) datatypes.ChatResponse {
	ctx, span := tracer.Start(ctx, "Resolver.Chat")
	defer span.End()

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	query := req.Message
	if r.translator != nil {
		translation := r.translator.Translate(ctx, query)
		query = translation.TranslatedText
		if translation.Keyword != "" {
			query = translation.Keyword
		}
	}
	corrected := r.engine.CorrectSpelling(query)
	if !strings.EqualFold(corrected, query) {
		observability.RecordCorrection()
	}

	// The classifier and the deterministic path are independent; run
	// them in parallel so the LLM's latency is the only wall time.
	var (
		wg        sync.WaitGroup
		clsIntent datatypes.Intent
		clsErr    error
		results   []datatypes.SearchResult
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		clsStart := time.Now()
		clsIntent, clsErr = r.classifier.Classify(ctx, corrected, req.History)
		status := "success"
		if clsErr != nil {
			status = "error"
		}
		observability.ObserveClassifierDuration(status, time.Since(clsStart).Seconds())
	}()
	resolveStart := time.Now()
	results = r.engine.Resolve(ctx, corrected)
	observability.ObserveResolveDuration(time.Since(resolveStart).Seconds())
	wg.Wait()

	if clsErr != nil {
		slog.Warn("Classifier unavailable, using default greeting", "error", clsErr)
		clsIntent = datatypes.DefaultGreetingIntent()
	}

	resp := reconcile(sessionID, clsIntent, results, clsErr != nil)
	span.SetAttributes(
		attribute.String("chat.session_id", sessionID),
		attribute.Int("chat.result_count", len(resp.Results)),
	)

	if len(resp.Results) > 0 && !resp.Results[0].LowConfidence() {
		resp.RemoteResults = r.searchWithRetries(ctx, corrected, resp.Results[0].Category)
	}
	return resp
}

// Resolve runs the deterministic pipeline only: spelling correction
// plus the priority engine. No LLM, translator, or remote calls.
func (r *Resolver) Resolve(ctx context.Context, query string) datatypes.ResolveResponse {
	ctx, span := tracer.Start(ctx, "Resolver.Resolve")
	defer span.End()

	start := time.Now()
	corrected := r.engine.CorrectSpelling(query)
	results := r.engine.Resolve(ctx, corrected)
	observability.ObserveResolveDuration(time.Since(start).Seconds())
	return datatypes.ResolveResponse{
		Corrected: corrected,
		Results:   results,
	}
}

// CorrectSpelling exposes the spelling corrector for the helper
// endpoint and the CLI.
func (r *Resolver) CorrectSpelling(query string) string {
	return r.engine.CorrectSpelling(query)
}

// ExpandWithSynonyms exposes the synonym expander for the CLI.
func (r *Resolver) ExpandWithSynonyms(query string) []string {
	return r.engine.ExpandWithSynonyms(query)
}

// reconcile merges the classifier's conversational framing with the
// engine's destinations. The engine's url/category/confidence are
// never overridden; the classifier decides only whether this turn is a
// search at all. classifierFailed marks a degraded turn where the
// greeting intent is a stand-in, not a judgement, so the deterministic
// results stay attached.
func reconcile(sessionID string, clsIntent datatypes.Intent, results []datatypes.SearchResult, classifierFailed bool) datatypes.ChatResponse {
	resp := datatypes.ChatResponse{
		SessionID:   sessionID,
		Message:     clsIntent.Message,
		Suggestions: clsIntent.Suggestions,
	}
	if resp.Message == "" {
		resp.Message = datatypes.DefaultGreetingIntent().Message
	}

	switch clsIntent.SearchType {
	case datatypes.SearchTypeGreeting, datatypes.SearchTypeInvalid:
		switch {
		case classifierFailed:
			// Degraded turn: nobody judged this a greeting, so any
			// real destination the engine found survives.
			if len(results) > 0 && results[0].Category != datatypes.CategoryNone {
				resp.Results = results
			}
		case len(results) > 0 && !results[0].LowConfidence():
			// No destinations on a pure conversational turn, unless
			// the engine found a high-confidence hit the classifier
			// missed.
			resp.Results = results
		}
	default:
		resp.Results = results
	}

	if len(resp.Results) > 0 {
		resp.LowConfidence = resp.Results[0].LowConfidence()
	}
	return resp
}

// searchWithRetries walks the remote-search retry ladder: the
// corrected query first, then each synonym variant concurrently, then
// the category's fixed fallback terms. Any failure or empty rung moves
// to the next; exhaustion returns nil and the engine result stands
// alone.
func (r *Resolver) searchWithRetries(ctx context.Context, corrected string, category datatypes.Category) []datatypes.RemoteResult {
	if r.remote == nil || !r.remote.Enabled() {
		return nil
	}

	ctx, span := tracer.Start(ctx, "Resolver.searchWithRetries")
	defer span.End()

	hits, err := r.remote.Search(ctx, corrected)
	if err != nil {
		slog.Warn("Remote search failed", "query", corrected, "error", err)
		observability.RecordRemoteSearch("corrected", "error")
	} else if len(hits) > 0 {
		observability.RecordRemoteSearch("corrected", "hit")
		return hits
	} else {
		observability.RecordRemoteSearch("corrected", "miss")
	}

	variants := r.engine.ExpandWithSynonyms(corrected)
	if len(variants) > 1 {
		if hits := r.searchVariants(ctx, variants[1:]); len(hits) > 0 {
			observability.RecordRemoteSearch("variant", "hit")
			return hits
		}
		observability.RecordRemoteSearch("variant", "miss")
	}

	for _, term := range fallbackSearchTerms[category] {
		hits, err := r.remote.Search(ctx, term)
		if err != nil {
			slog.Warn("Remote fallback search failed", "term", term, "error", err)
			observability.RecordRemoteSearch("fallback", "error")
			continue
		}
		if len(hits) > 0 {
			observability.RecordRemoteSearch("fallback", "hit")
			return hits
		}
		observability.RecordRemoteSearch("fallback", "miss")
	}
	return nil
}

// searchVariants fans the synonym variants out concurrently and keeps
// the first non-empty result in ladder order, so output stays
// deterministic regardless of completion order.
func (r *Resolver) searchVariants(ctx context.Context, variants []string) []datatypes.RemoteResult {
	results := make([][]datatypes.RemoteResult, len(variants))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, variant := range variants {
		g.Go(func() error {
			hits, err := r.remote.Search(gctx, variant)
			if err != nil {
				slog.Warn("Remote variant search failed", "query", variant, "error", err)
				return nil
			}
			results[i] = hits
			return nil
		})
	}
	_ = g.Wait()

	for _, hits := range results {
		if len(hits) > 0 {
			return hits
		}
	}
	return nil
}
