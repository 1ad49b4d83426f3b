// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// Tests for the intent classifier client

package clients

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasetu/VidyaSetu/services/llm"
	"github.com/vidyasetu/VidyaSetu/services/router/datatypes"
)

// fakeLLM returns a canned response or error.
type fakeLLM struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, params llm.GenerationParams) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestClassifyParsesWellFormedResponse(t *testing.T) {
	backend := &fakeLLM{response: `{
		"message": "Here are class 5 maths resources!",
		"search_query": "class 5 maths",
		"search_type": "class_subject",
		"class_num": 5,
		"subject": "maths",
		"suggestions": ["class 5 science"]
	}`}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	intent, err := classifier.Classify(context.Background(), "class 5 maths", nil)
	require.NoError(t, err)
	assert.Equal(t, datatypes.SearchTypeClassSubject, intent.SearchType)
	assert.Equal(t, "class 5 maths", intent.SearchQuery)
	require.NotNil(t, intent.ClassNum)
	assert.Equal(t, 5, *intent.ClassNum)
	assert.Equal(t, "maths", intent.Subject)
}

func TestClassifyExtractsJSONFromSurroundingText(t *testing.T) {
	backend := &fakeLLM{response: "Sure! Here is the classification:\n" +
		`{"message": "hi", "search_query": "", "search_type": "greeting"}` +
		"\nLet me know if you need anything else."}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	intent, err := classifier.Classify(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, datatypes.SearchTypeGreeting, intent.SearchType)
}

func TestClassifyUnknownSearchTypeDegradesToInvalid(t *testing.T) {
	backend := &fakeLLM{response: `{"message": "x", "search_type": "banana"}`}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	intent, err := classifier.Classify(context.Background(), "whatever", nil)
	require.NoError(t, err)
	assert.Equal(t, datatypes.SearchTypeInvalid, intent.SearchType)
}

func TestClassifyDropsOutOfRangeClassNum(t *testing.T) {
	backend := &fakeLLM{response: `{"message": "x", "search_type": "class_subject", "class_num": 14}`}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	intent, err := classifier.Classify(context.Background(), "class 14", nil)
	require.NoError(t, err)
	assert.Nil(t, intent.ClassNum)
}

func TestClassifyErrorsOnBackendFailure(t *testing.T) {
	backend := &fakeLLM{err: errors.New("connection refused")}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	_, err := classifier.Classify(context.Background(), "class 5 maths", nil)
	assert.Error(t, err)
}

func TestClassifyErrorsOnNonJSONResponse(t *testing.T) {
	backend := &fakeLLM{response: "I cannot help with that."}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	_, err := classifier.Classify(context.Background(), "class 5 maths", nil)
	assert.Error(t, err)
}

func TestClassifyPromptCarriesHistory(t *testing.T) {
	backend := &fakeLLM{response: `{"message": "x", "search_type": "greeting"}`}
	classifier := NewIntentClassifier(backend, DefaultClassifierConfig())

	history := []datatypes.Message{
		{Role: "user", Content: "hello"},
		{Role: "assistant", Content: "hi there"},
	}
	_, err := classifier.Classify(context.Background(), "thanks", history)
	require.NoError(t, err)
	require.Len(t, backend.prompts, 1)
	assert.Contains(t, backend.prompts[0], "user: hello")
	assert.Contains(t, backend.prompts[0], "assistant: hi there")
	assert.Contains(t, backend.prompts[0], "thanks")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
}
