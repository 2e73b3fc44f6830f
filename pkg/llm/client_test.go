package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transcriptlab/insights/pkg/config"
)

func testConfig(baseURL string) config.LLMConfig {
	return config.LLMConfig{
		BaseURL:     baseURL,
		APIKey:      "test-key",
		Model:       "qwen2.5:32b",
		Temperature: 0.1,
		MaxTokens:   2000,
	}
}

func chatReply(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return b
}

func TestComplete_Success(t *testing.T) {
	var got ChatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write(chatReply(`{"ok": true}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	content, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "sys"},
		{Role: "user", Content: "hello"},
	}, Options{JSONObject: true})
	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, content)

	assert.Equal(t, "qwen2.5:32b", got.Model)
	assert.Equal(t, 0.1, got.Temperature)
	assert.Equal(t, 2000, got.MaxTokens)
	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestComplete_MaxTokensOverride(t *testing.T) {
	var got ChatRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write(chatReply("ok"))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{MaxTokens: 512})
	require.NoError(t, err)
	assert.Equal(t, 512, got.MaxTokens)
}

func TestComplete_RetriesTransientFailure(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write(chatReply("recovered"))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	content, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{})
	require.NoError(t, err)
	assert.Equal(t, "recovered", content)
	assert.Equal(t, 2, calls)
}

func TestComplete_ClientErrorIsPermanent(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "4xx must not be retried")
}

func TestComplete_EmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	client := NewClient(testConfig(ts.URL))
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}
