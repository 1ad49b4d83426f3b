// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the translator and remote search clients

package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
)

func TestTranslateASCIIShortCircuits(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	translator := NewTranslator(TranslatorConfig{BaseURL: srv.URL, TimeoutMs: 1000})
	got := translator.Translate(context.Background(), "class 5 maths")

	assert.Equal(t, "class 5 maths", got.TranslatedText)
	assert.Equal(t, int32(0), calls.Load(), "ASCII input must not hit the service")
}

func TestTranslateUnconfiguredPassesThrough(t *testing.T) {
	translator := NewTranslator(TranslatorConfig{})
	got := translator.Translate(context.Background(), "ఐదవ తరగతి గణితం")
	assert.Equal(t, "ఐదవ తరగతి గణితం", got.TranslatedText)
}

func TestTranslateCallsServiceForNonASCII(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/translate", r.URL.Path)
		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ఐదవ తరగతి గణితం", req.Text)
		json.NewEncoder(w).Encode(datatypes.Translation{
			TranslatedText: "class 5 maths",
			Keyword:        "maths",
		})
	}))
	defer srv.Close()

	translator := NewTranslator(TranslatorConfig{BaseURL: srv.URL, TimeoutMs: 1000})
	got := translator.Translate(context.Background(), "ఐదవ తరగతి గణితం")

	assert.Equal(t, "class 5 maths", got.TranslatedText)
	assert.Equal(t, "maths", got.Keyword)
}

func TestTranslateFailureReturnsOriginal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	translator := NewTranslator(TranslatorConfig{BaseURL: srv.URL, TimeoutMs: 1000})
	got := translator.Translate(context.Background(), "ఐదవ తరగతి")
	assert.Equal(t, "ఐదవ తరగతి", got.TranslatedText)
}

func TestRemoteSearchReturnsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "class 5 maths", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(remoteSearchResponse{
			Results: []datatypes.RemoteResult{
				{Title: "Class 5 Maths Textbook", Path: "/class/5/mat/textbook"},
				{Title: "Class 5 Maths Worksheets", Path: "/class/5/mat/worksheets"},
			},
		})
	}))
	defer srv.Close()

	searcher := NewRemoteSearcher(RemoteSearchConfig{BaseURL: srv.URL, TimeoutMs: 1000, MaxResults: 8})
	results, err := searcher.Search(context.Background(), "class 5 maths")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Class 5 Maths Textbook", results[0].Title)
}

func TestRemoteSearchCapsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := remoteSearchResponse{}
		for i := 0; i < 20; i++ {
			payload.Results = append(payload.Results, datatypes.RemoteResult{Title: "x"})
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	searcher := NewRemoteSearcher(RemoteSearchConfig{BaseURL: srv.URL, TimeoutMs: 1000, MaxResults: 3})
	results, err := searcher.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestRemoteSearchDisabledReturnsNil(t *testing.T) {
	searcher := NewRemoteSearcher(RemoteSearchConfig{})
	assert.False(t, searcher.Enabled())

	results, err := searcher.Search(context.Background(), "class 5 maths")
	assert.NoError(t, err)
	assert.Nil(t, results)
}

func TestRemoteSearchErrorsOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	searcher := NewRemoteSearcher(RemoteSearchConfig{BaseURL: srv.URL, TimeoutMs: 1000})
	_, err := searcher.Search(context.Background(), "class 5 maths")
	assert.Error(t, err)
}
