// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the shoptalk assistant API.
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// CONFIG TESTS
// =============================================================================

func TestNewClientWithConfig_Defaults(t *testing.T) {
	tests := []struct {
		name   string
		config *ClientConfig
	}{
		{"nil config", nil},
		{"zero config", &ClientConfig{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := NewClientWithConfig(tc.config)
			cfg := client.GetConfig()

			assert.Equal(t, "http://127.0.0.1:8000", cfg.BaseURL)
			assert.Equal(t, 60*time.Second, cfg.Timeout)
			assert.Equal(t, ModelGemini, cfg.DefaultModel)
		})
	}
}

func TestValidModel(t *testing.T) {
	assert.True(t, ValidModel("gemini"))
	assert.True(t, ValidModel("huggingface"))
	assert.False(t, ValidModel("gpt-4"))
	assert.False(t, ValidModel(""))
}

func TestValidMemoryDepth(t *testing.T) {
	for _, d := range []int{5, 10, 15, 20} {
		assert.True(t, ValidMemoryDepth(d), "depth %d should be valid", d)
	}
	for _, d := range []int{0, 1, 25, -5} {
		assert.False(t, ValidMemoryDepth(d), "depth %d should be invalid", d)
	}
}

// =============================================================================
// SEARCH TESTS
// =============================================================================

func TestClient_Search(t *testing.T) {
	var gotReq SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(SearchResponse{
			Result:                 "hi there",
			SessionID:              "abc123",
			HasConversationHistory: true,
		})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	resp, err := client.Search(context.Background(), SearchRequest{
		UserInput: "hello",
		Model:     ModelGemini,
		MaxMemory: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "hi there", resp.Result)
	assert.Equal(t, "abc123", resp.SessionID)
	assert.True(t, resp.HasConversationHistory)

	assert.Equal(t, "hello", gotReq.UserInput)
	assert.Equal(t, "gemini", gotReq.Model)
	assert.Equal(t, 10, gotReq.MaxMemory)
	assert.Empty(t, gotReq.SessionID)
}

func TestClient_Search_CarriesSessionID(t *testing.T) {
	var gotReq SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(SearchResponse{Result: "ok"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Search(context.Background(), SearchRequest{
		UserInput: "follow-up",
		SessionID: "abc123",
		MaxMemory: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", gotReq.SessionID)
}

func TestClient_Search_FillsDefaults(t *testing.T) {
	var gotReq SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(SearchResponse{Result: "ok"})
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Search(context.Background(), SearchRequest{UserInput: "q"})
	require.NoError(t, err)
	assert.Equal(t, ModelGemini, gotReq.Model)
	assert.Equal(t, DefaultMemoryDepth, gotReq.MaxMemory)
}

func TestClient_Search_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Search(context.Background(), SearchRequest{UserInput: "q"})
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeBadStatus, clientErr.Type)
}

func TestClient_Search_Unreachable(t *testing.T) {
	// Port 1 is reserved and never listening.
	client := NewClientWithConfig(&ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: time.Second,
	})

	_, err := client.Search(context.Background(), SearchRequest{UserInput: "q"})
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	_, err := client.Search(context.Background(), SearchRequest{UserInput: "q"})
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeInvalidResponse, clientErr.Type)
}

// =============================================================================
// SESSION TERMINATION TESTS
// =============================================================================

func TestClient_EndSession(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	err := client.EndSession(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/session/abc123", gotPath)
}

func TestClient_EndSession_NoSession(t *testing.T) {
	// Without a session id there is nothing to delete: no network call.
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1"})

	err := client.EndSession(context.Background(), "")
	assert.NoError(t, err)
}

func TestClient_EndSession_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})

	err := client.EndSession(context.Background(), "abc123")
	require.Error(t, err)

	var clientErr *ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, ErrTypeBadStatus, clientErr.Type)
}

// =============================================================================
// HEALTH CHECK TESTS
// =============================================================================

func TestClient_CheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Even an error status means the backend is up
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	defer srv.Close()

	client := NewClientWithConfig(&ClientConfig{BaseURL: srv.URL})
	assert.NoError(t, client.CheckReachable(context.Background()))
}

func TestClient_CheckReachable_Down(t *testing.T) {
	client := NewClientWithConfig(&ClientConfig{BaseURL: "http://127.0.0.1:1"})

	err := client.CheckReachable(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnreachable(err))
}

// =============================================================================
// ERROR HELPER TESTS
// =============================================================================

func TestErrorHelpers(t *testing.T) {
	assert.True(t, IsUnreachable(ErrUnreachable))
	assert.True(t, IsTimeout(ErrTimeout))
	assert.False(t, IsUnreachable(ErrTimeout))
	assert.False(t, IsTimeout(ErrUnreachable))

	wrapped := &ClientError{Type: ErrTypeTimeout, Message: "wrapped", Cause: context.DeadlineExceeded}
	assert.True(t, IsTimeout(wrapped))
	assert.ErrorIs(t, wrapped, context.DeadlineExceeded)
}
