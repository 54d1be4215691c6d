package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"synth/app/config"
	"synth/app/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(url string) *Client {
	cfg := &config.Config{}
	cfg.Gateway.URL = url
	cfg.Gateway.Provider = "openai"

	return &Client{cfg: cfg, httpClient: &http.Client{}}
}

func TestSendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		assert.Equal(t, "hello", req.Message)
		assert.Equal(t, model.ModeEditor, req.Mode)
		assert.Equal(t, "openai", req.Provider)
		require.NotNil(t, req.ProjectContext)
		assert.Equal(t, "Demo", req.ProjectContext.Name)

		json.NewEncoder(w).Encode(Response{Response: "hi there", Provider: "openai", Mode: "editor"})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Send(context.Background(), Request{
		Message:        "hello",
		Mode:           model.ModeEditor,
		ProjectContext: &ProjectContext{Name: "Demo"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Response)
	assert.Equal(t, "openai", resp.Provider)
}

func TestSendFillsDefaultProvider(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req Request
		json.NewDecoder(r.Body).Decode(&req)
		got = req.Provider

		json.NewEncoder(w).Encode(Response{Response: "ok"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Send(context.Background(), Request{Message: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "openai", got)
}

func TestSendErrorStatusIsFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"error": "AI service unavailable", "fallback": true})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Send(context.Background(), Request{Message: "hi"})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFallback)
	assert.Contains(t, err.Error(), "AI service unavailable")
}

func TestSendExplicitFallbackOnSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"error": "AI service unavailable", "fallback": true})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Send(context.Background(), Request{Message: "hi"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrFallback)
	assert.Contains(t, err.Error(), "AI service unavailable")
}

func TestSendNonJSONErrorStillFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Send(context.Background(), Request{Message: "hi"})

	assert.ErrorIs(t, err, ErrFallback)
}

func TestSendTransportErrorIsNotFallback(t *testing.T) {
	_, err := testClient("http://127.0.0.1:1/api/chat").Send(context.Background(), Request{Message: "hi"})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrFallback))
}
