package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EphemeralEpoch/smart-book-gist/internal/chat"
	"github.com/EphemeralEpoch/smart-book-gist/internal/client"
	"github.com/EphemeralEpoch/smart-book-gist/internal/config"
)

type fakeGister struct {
	doc      chat.Document
	err      error
	messages []chat.Message
	params   chat.Params
}

func (f *fakeGister) SendChat(_ context.Context, messages []chat.Message, params chat.Params) (chat.Document, error) {
	f.messages = messages
	f.params = params
	return f.doc, f.err
}

func newTestServer(g Gister) *httptest.Server {
	srv := NewServer(config.Config{Model: "openai/gpt-oss-20b"}, g, zerolog.Nop())
	return httptest.NewServer(srv.Router)
}

func TestIndex(t *testing.T) {
	ts := newTestServer(&fakeGister{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "smart-book-gist", body["service"])
	assert.Equal(t, "ok", body["status"])
}

func TestHealth(t *testing.T) {
	ts := newTestServer(&fakeGister{})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSummarizeSuccess(t *testing.T) {
	fake := &fakeGister{doc: map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": "X is..."}}},
	}}
	ts := newTestServer(fake)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/summarize", "application/json",
		strings.NewReader(`{"prompt":"Summarize X","temperature":0.5,"max_tokens":100}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Summarize X", body["prompt"])
	assert.Equal(t, "X is...", body["gist"])

	require.Len(t, fake.messages, 2)
	assert.Equal(t, chat.RoleSystem, fake.messages[0].Role)
	assert.Equal(t, "Summarize X", fake.messages[1].Content)
	assert.Equal(t, 0.5, fake.params.Temperature)
	require.NotNil(t, fake.params.MaxTokens)
	assert.Equal(t, 100, *fake.params.MaxTokens)
	assert.Equal(t, "openai/gpt-oss-20b", fake.params.Model)
}

func TestSummarizeDefaultsOnEmptyBody(t *testing.T) {
	fake := &fakeGister{doc: map[string]any{
		"choices": []any{map[string]any{"message": map[string]any{"content": "ok"}}},
	}}
	ts := newTestServer(fake)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/summarize", "application/json", strings.NewReader(""))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No prompt provided", body["prompt"])
	assert.Equal(t, 0.2, fake.params.Temperature)
	require.NotNil(t, fake.params.MaxTokens)
	assert.Equal(t, 800, *fake.params.MaxTokens)
}

func TestSummarizeFallsBackToRawDocument(t *testing.T) {
	fake := &fakeGister{doc: map[string]any{"unexpected": "shape"}}
	ts := newTestServer(fake)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/summarize", "application/json", strings.NewReader(`{"prompt":"p"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]any{"unexpected": "shape"}, body["gist"])
}

func TestSummarizeClientFailure(t *testing.T) {
	fake := &fakeGister{err: &client.APIError{StatusCode: 401, Detail: map[string]any{"error": "invalid api key"}}}
	ts := newTestServer(fake)
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/summarize", "application/json", strings.NewReader(`{"prompt":"p"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Failed to call Groq API", body["error"])
	assert.Contains(t, body["details"], "invalid api key")
}
