// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the router HTTP handlers

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
	"github.com/vidyasetu/VidyaSetu/services/router/intent"
	"github.com/vidyasetu/VidyaSetu/services/router/knowledge"
	"github.com/vidyasetu/VidyaSetu/services/router/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// greeterClassifier always reports a friendly search turn.
type greeterClassifier struct{}

func (greeterClassifier) Classify(ctx context.Context, message string, history []datatypes.Message) (datatypes.Intent, error) {
	return datatypes.Intent{
		Message:    "Here you go!",
		SearchType: datatypes.SearchTypeDirect,
	}, nil
}

func newTestRouter() *gin.Engine {
	engine := intent.NewEngine(knowledge.NewStore(knowledge.Default()), intent.DefaultEngineConfig())
	resolver := services.NewResolver(engine, greeterClassifier{}, nil, nil)

	router := gin.New()
	router.GET("/health", HealthCheck)
	v1 := router.Group("/v1")
	v1.POST("/chat", HandleChat(resolver))
	v1.POST("/resolve", HandleResolve(resolver))
	v1.POST("/spelling", HandleSpelling(resolver))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

// =============================================================================
// HealthCheck Tests
// =============================================================================

func TestHealthCheckReturnsOK(t *testing.T) {
	router := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response["status"])
}

// =============================================================================
// Chat Tests
// =============================================================================

func TestHandleChatResolvesQuery(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/v1/chat", datatypes.ChatRequest{Message: "class 5 maths"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp datatypes.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, datatypes.CategoryClassSubject, resp.Results[0].Category)
	assert.NotEmpty(t, resp.SessionID)
}

func TestHandleChatRejectsMalformedBody(t *testing.T) {
	router := newTestRouter()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/chat", strings.NewReader("{not json"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatRejectsEmptyMessage(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/v1/chat", datatypes.ChatRequest{Message: ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleChatRejectsOversizedMessage(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/v1/chat", datatypes.ChatRequest{
		Message: strings.Repeat("x", datatypes.MaxQueryBytes+1),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// =============================================================================
// Resolve Tests
// =============================================================================

func TestHandleResolveReturnsRankedResults(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/v1/resolve", datatypes.ResolveRequest{Query: "clas 5 mathes"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp datatypes.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "class 5 maths", resp.Corrected)
	require.NotEmpty(t, resp.Results)
	assert.Contains(t, resp.Results[0].URL, "/class/5/mat")
}

func TestHandleResolveHonorsLimit(t *testing.T) {
	router := newTestRouter()
	raw, _ := json.Marshal(datatypes.ResolveRequest{Query: "story career teacher lesson"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/resolve?limit=1", bytes.NewReader(raw))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp datatypes.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 1)
}

func TestHandleResolveGibberishFallsBack(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/v1/resolve", datatypes.ResolveRequest{Query: ";lkjasdf"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp datatypes.ResolveResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, datatypes.CategoryNone, resp.Results[0].Category)
	assert.Equal(t, 0.0, resp.Results[0].Confidence)
}

// =============================================================================
// Spelling Tests
// =============================================================================

func TestHandleSpelling(t *testing.T) {
	router := newTestRouter()
	w := postJSON(t, router, "/v1/spelling", datatypes.ResolveRequest{Query: "monky"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp datatypes.SpellingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "monky", resp.Original)
	assert.Equal(t, "monkey", resp.Corrected)
}
