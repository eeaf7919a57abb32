package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codescope/internal/provider"
)

func TestClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "qwen2.5-coder", req.Model)
		assert.False(t, req.Stream)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, provider.RoleSystem, req.Messages[0].Role)

		json.NewEncoder(w).Encode(chatResponse{
			Message: provider.Message{Role: provider.RoleAssistant, Content: "the function is recursive"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	reply, err := c.Chat(context.Background(), "qwen2.5-coder", []provider.Message{
		provider.NewSystemMessage("you are a code analyst"),
		provider.NewUserMessage("is this recursive?"),
	})
	require.NoError(t, err)
	assert.Equal(t, "the function is recursive", reply)
}

func TestClient_ChatServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Chat(context.Background(), "missing", []provider.Message{provider.NewUserMessage("hi")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
	assert.Contains(t, err.Error(), "model not found")
}

func TestClient_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		w.Write([]byte(`{"models":[{"name":"llama3.2","size":2019393189,"digest":"a80c4f17acd5"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	models, err := c.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "llama3.2", models[0].Name)
}

func TestClient_ListModelsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.ListModels(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestClient_Version(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		w.Write([]byte(`{"version":"0.6.2"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	v, err := c.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0.6.2", v)
}

func TestClient_IsRunning(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"0.6.2"}`))
	}))
	defer srv.Close()

	assert.True(t, NewClient(srv.URL).IsRunning(context.Background()))

	srv.Close()
	assert.False(t, NewClient(srv.URL).IsRunning(context.Background()))
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
