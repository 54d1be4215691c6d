// Package resolver decides, per outgoing user message, whether the live
// provider path or the local template fallback produces the reply.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"synth/app/client/gateway"
	"synth/app/config"
	"synth/app/model"
	"synth/app/service/fallback"
	"synth/app/service/session"

	"github.com/samber/do"
)

const probeMessage = "test"

const (
	restoredText  = "**Connection restored!** Back to full AI mode."
	stillDownText = "Still offline. Using smart templates for now. I'll keep trying!"
)

// Gateway is the outbound chat shim contract.
type Gateway interface {
	Send(ctx context.Context, req gateway.Request) (*gateway.Response, error)
}

type Service struct {
	gw       Gateway
	fallback *fallback.Generator
	state    *session.State
	timeout  time.Duration
}

func New(di *do.Injector) (*Service, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewService(
		do.MustInvoke[*gateway.Client](di),
		do.MustInvoke[*fallback.Generator](di),
		do.MustInvoke[*session.State](di),
		time.Duration(cfg.Gateway.TimeoutSeconds)*time.Second,
	), nil
}

func NewService(gw Gateway, gen *fallback.Generator, state *session.State, timeout time.Duration) *Service {
	return &Service{
		gw:       gw,
		fallback: gen,
		state:    state,
		timeout:  timeout,
	}
}

// Resolve issues exactly one live attempt under the timeout. The live path is
// tried on every call even while the session is degraded; the degraded flag
// only tracks the latest outcome. Exactly one of {live reply, fallback reply}
// is produced per call.
func (s *Service) Resolve(ctx context.Context, mode model.Mode, text string, pc *gateway.ProjectContext) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.gw.Send(callCtx, gateway.Request{
		Message:        text,
		Mode:           mode,
		ProjectContext: pc,
	})
	if err != nil {
		slog.Warn("Live provider unavailable, using template fallback",
			"mode", mode,
			"error", err,
		)
		s.state.SetDegraded(true)

		return s.fallback.Generate(mode, text, s.state.DailyFocus()), true
	}

	s.state.SetDegraded(false)

	return resp.Response, false
}

// Probe re-checks the live path with a synthetic message. It returns the
// text for the confirmation or reassurance turn plus the resulting degraded
// state.
func (s *Service) Probe(ctx context.Context, mode model.Mode) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.gw.Send(callCtx, gateway.Request{
		Message: probeMessage,
		Mode:    mode,
	})
	if err != nil {
		slog.Info("Connection probe failed", "error", err)
		s.state.SetDegraded(true)

		return stillDownText, true
	}

	slog.Info("Connection probe succeeded")
	s.state.SetDegraded(false)

	return restoredText, false
}
