package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"synth/app/client/gateway"
	"synth/app/config"
	"synth/app/provider"
	"synth/app/service/fallback"
	"synth/app/service/project"
	"synth/app/service/resolver"
	"synth/app/service/session"
	"synth/app/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCaller struct {
	reply string
	err   error

	lastSystem  string
	lastMessage string
}

func (c *stubCaller) Complete(_ context.Context, systemPrompt, userMessage string) (string, error) {
	c.lastSystem = systemPrompt
	c.lastMessage = userMessage

	if c.err != nil {
		return "", c.err
	}

	return c.reply, nil
}

type okGateway struct{}

func (okGateway) Send(_ context.Context, _ gateway.Request) (*gateway.Response, error) {
	return &gateway.Response{Response: "live reply"}, nil
}

func testServer(t *testing.T, caller *stubCaller) *Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Gateway.Provider = "openai"

	st, err := store.Open(filepath.Join(t.TempDir(), "synth.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Shutdown() })

	state := &session.State{}
	gen := fallback.NewWithSeed(1)
	res := resolver.NewService(okGateway{}, gen, state, time.Second)
	projects := project.NewService(st, res, gen, state)

	registry := provider.NewRegistry(map[string]provider.Caller{"openai": caller}, "openai")

	return NewServer(cfg, registry, projects, state)
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &decoded), "body: %s", data)
	}

	return resp, decoded
}

func TestChatSuccess(t *testing.T) {
	caller := &stubCaller{reply: "Here's an idea."}
	srv := testServer(t, caller)

	resp, body := doJSON(t, srv.App(), fiber.MethodPost, "/api/chat", map[string]any{
		"message": "suggest a name",
		"mode":    "planner",
		"projectContext": map[string]any{
			"name": "Demo",
			"description": "a demo project",
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Here's an idea.", body["response"])
	assert.Equal(t, "openai", body["provider"])
	assert.Equal(t, "planner", body["mode"])

	assert.True(t, strings.HasPrefix(caller.lastSystem, "You are Synth"))
	assert.Contains(t, caller.lastMessage, `Project: "Demo"`)
	assert.Contains(t, caller.lastMessage, "Goal: a demo project")
	assert.Contains(t, caller.lastMessage, "suggest a name")
}

func TestChatRequiresMessage(t *testing.T) {
	srv := testServer(t, &stubCaller{})

	resp, body := doJSON(t, srv.App(), fiber.MethodPost, "/api/chat", map[string]any{"message": "  "})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Message is required", body["error"])
}

func TestChatUnknownModeFallsBackToBrainstormer(t *testing.T) {
	caller := &stubCaller{reply: "ok"}
	srv := testServer(t, caller)

	resp, body := doJSON(t, srv.App(), fiber.MethodPost, "/api/chat", map[string]any{
		"message": "hi",
		"mode":    "wizard",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "brainstormer", body["mode"])
}

func TestChatUpstreamFailure(t *testing.T) {
	srv := testServer(t, &stubCaller{err: errors.New("quota exceeded")})

	resp, body := doJSON(t, srv.App(), fiber.MethodPost, "/api/chat", map[string]any{"message": "hi"})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "AI service unavailable", body["error"])
	assert.Equal(t, true, body["fallback"])
}

func TestStatusEndpoint(t *testing.T) {
	srv := testServer(t, &stubCaller{})

	resp, body := doJSON(t, srv.App(), fiber.MethodGet, "/api/status", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["degraded"])
	assert.Equal(t, false, body["daily_focus"])
}

func TestProjectLifecycleOverHTTP(t *testing.T) {
	srv := testServer(t, &stubCaller{reply: "ok"})
	app := srv.App()

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/projects", map[string]any{
		"name":        "HTTP Project",
		"description": "made via the API",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "HTTP Project", body["name"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["projects"], 1)

	resp, body = doJSON(t, app, fiber.MethodPost, "/api/projects/"+id+"/messages", map[string]any{
		"text": "hello there",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body["assistant_turn"])

	resp, _ = doJSON(t, app, fiber.MethodDelete, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodGet, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendMessageValidation(t *testing.T) {
	srv := testServer(t, &stubCaller{})
	app := srv.App()

	_, body := doJSON(t, app, fiber.MethodPost, "/api/projects", map[string]any{"name": "V"})
	id := body["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodPost, "/api/projects/"+id+"/messages", map[string]any{"text": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Message is required", body["error"])

	resp, _ = doJSON(t, app, fiber.MethodPost, "/api/projects/missing/messages", map[string]any{"text": "hi"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestModeSwitchOverHTTP(t *testing.T) {
	srv := testServer(t, &stubCaller{})
	app := srv.App()

	_, body := doJSON(t, app, fiber.MethodPost, "/api/projects", map[string]any{"name": "M"})
	id := body["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodPatch, "/api/projects/"+id, map[string]any{"mode": "challenger"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body["assistant_turn"])

	resp, body = doJSON(t, app, fiber.MethodGet, "/api/projects/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "challenger", body["mode"])

	resp, body = doJSON(t, app, fiber.MethodPatch, "/api/projects/"+id, map[string]any{"mode": "wizard"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "unknown mode", body["error"])
}

func TestTaskAndNoteEndpoints(t *testing.T) {
	srv := testServer(t, &stubCaller{})
	app := srv.App()

	_, body := doJSON(t, app, fiber.MethodPost, "/api/projects", map[string]any{"name": "T"})
	id := body["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/projects/%s/tasks", id), map[string]any{"text": "Ship it"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	taskID := body["id"].(string)

	resp, _ = doJSON(t, app, fiber.MethodPatch, fmt.Sprintf("/api/projects/%s/tasks/%s", id, taskID), map[string]any{"completed": true})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = doJSON(t, app, fiber.MethodPost, fmt.Sprintf("/api/projects/%s/notes", id), map[string]any{
		"title":   "N",
		"content": "note body",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	noteID := body["id"].(string)

	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/projects/%s/tasks/%s", id, taskID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/projects/%s/notes/%s", id, noteID), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, app, fiber.MethodDelete, fmt.Sprintf("/api/projects/%s/tasks/%s", id, taskID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestExportEndpoint(t *testing.T) {
	srv := testServer(t, &stubCaller{})
	app := srv.App()

	_, body := doJSON(t, app, fiber.MethodPost, "/api/projects", map[string]any{"name": "E"})
	id := body["id"].(string)

	resp, body := doJSON(t, app, fiber.MethodGet, fmt.Sprintf("/api/projects/%s/export", id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "E", body["name"])
	assert.Len(t, body["messages"], 1)
}
