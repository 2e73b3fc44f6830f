package search

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

func TestSearchContext_Success(t *testing.T) {
	var got searchRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"results": [{"title": "Go", "content": "a language"}]}`))
	}))
	defer ts.Close()

	client := NewClient(config.SearchConfig{BaseURL: ts.URL, APIKey: "tvly-test", MaxResults: 3})
	blob, err := client.SearchContext(context.Background(), "golang generics")
	require.NoError(t, err)
	assert.Contains(t, blob, "a language")

	assert.Equal(t, "tvly-test", got.APIKey)
	assert.Equal(t, "golang generics", got.Query)
	assert.Equal(t, 3, got.MaxResults)
}

func TestSearchContext_EmptyQuery(t *testing.T) {
	client := NewClient(config.SearchConfig{BaseURL: "http://unused", MaxResults: 3})
	_, err := client.SearchContext(context.Background(), "")
	require.Error(t, err)
}

func TestSearchContext_BackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(config.SearchConfig{BaseURL: ts.URL, MaxResults: 3})
	_, err := client.SearchContext(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
}
