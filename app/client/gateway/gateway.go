// Package gateway is the HTTP client for the chat shim. Any non-success
// outcome is normalized to a fallback trigger; the resolver never surfaces a
// gateway failure to the user directly.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"synth/app/config"
	"synth/app/model"

	"github.com/samber/do"
)

// ErrFallback marks failures that must produce a locally generated reply:
// non-2xx statuses, transport errors normalized by the caller, and explicit
// fallback=true responses.
var ErrFallback = errors.New("gateway requested fallback")

type Request struct {
	Message        string          `json:"message"`
	Mode           model.Mode      `json:"mode"`
	Provider       string          `json:"provider"`
	ProjectContext *ProjectContext `json:"projectContext,omitempty"`
}

type ProjectContext struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	MemorySummary string `json:"memorySummary,omitempty"`
}

type Response struct {
	Response string `json:"response"`
	Provider string `json:"provider"`
	Mode     string `json:"mode"`
}

// wireBody covers both success and failure payloads: the shim may signal an
// explicit fallback on any status, not just non-2xx.
type wireBody struct {
	Response string `json:"response"`
	Provider string `json:"provider"`
	Mode     string `json:"mode"`
	Error    string `json:"error"`
	Fallback bool   `json:"fallback"`
}

type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(di *do.Injector) (*Client, error) {
	return &Client{
		cfg: do.MustInvoke[*config.Config](di),
		// timeout comes from the caller's context, not the transport
		httpClient: &http.Client{},
	}, nil
}

// Send performs a single outbound call; no retries. The context bounds the
// whole request.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	if req.Provider == "" {
		req.Provider = c.cfg.Gateway.Provider
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Gateway.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	var wire wireBody
	decodeErr := json.NewDecoder(resp.Body).Decode(&wire)

	if resp.StatusCode != http.StatusOK || wire.Fallback {
		reason := wire.Error
		if reason == "" {
			reason = resp.Status
		}

		return nil, fmt.Errorf("%s: %w", reason, ErrFallback)
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode gateway response: %w", decodeErr)
	}

	return &Response{
		Response: wire.Response,
		Provider: wire.Provider,
		Mode:     wire.Mode,
	}, nil
}
