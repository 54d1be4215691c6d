package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"synth/app/client/gateway"
	"synth/app/model"
	"synth/app/service/fallback"
	"synth/app/service/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGateway struct {
	resp    *gateway.Response
	err     error
	waitCtx bool

	lastReq gateway.Request
}

func (g *stubGateway) Send(ctx context.Context, req gateway.Request) (*gateway.Response, error) {
	g.lastReq = req

	if g.waitCtx {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.err != nil {
		return nil, g.err
	}

	return g.resp, nil
}

func newTestService(gw *stubGateway, timeout time.Duration) (*Service, *session.State) {
	state := &session.State{}

	return NewService(gw, fallback.NewWithSeed(1), state, timeout), state
}

func TestResolveLiveSuccess(t *testing.T) {
	gw := &stubGateway{resp: &gateway.Response{Response: "Here is a real answer.", Provider: "openai"}}
	svc, state := newTestService(gw, time.Second)
	state.SetDegraded(true)

	reply, degraded := svc.Resolve(context.Background(), model.ModePlanner, "plan my week", nil)

	assert.Equal(t, "Here is a real answer.", reply)
	assert.False(t, degraded)
	assert.False(t, state.Degraded())
	assert.Equal(t, "plan my week", gw.lastReq.Message)
	assert.Equal(t, model.ModePlanner, gw.lastReq.Mode)
}

func TestResolveGatewayErrorFallsBack(t *testing.T) {
	gw := &stubGateway{err: errors.New("connection refused")}
	svc, state := newTestService(gw, time.Second)

	reply, degraded := svc.Resolve(context.Background(), model.ModeBrainstormer, "new podcast formats", nil)

	require.NotEmpty(t, reply)
	assert.True(t, degraded)
	assert.True(t, state.Degraded())
}

func TestResolveTimeoutFallsBack(t *testing.T) {
	gw := &stubGateway{waitCtx: true}
	svc, state := newTestService(gw, 20*time.Millisecond)

	start := time.Now()
	reply, degraded := svc.Resolve(context.Background(), model.ModeEditor, "tighten this draft", nil)

	require.NotEmpty(t, reply)
	assert.True(t, degraded)
	assert.True(t, state.Degraded())
	assert.Less(t, time.Since(start), time.Second)
}

func TestResolveRetriesLiveWhileDegraded(t *testing.T) {
	gw := &stubGateway{resp: &gateway.Response{Response: "back online"}}
	svc, state := newTestService(gw, time.Second)
	state.SetDegraded(true)

	reply, degraded := svc.Resolve(context.Background(), model.ModeChallenger, "poke holes in this", nil)

	assert.Equal(t, "back online", reply)
	assert.False(t, degraded)
}

func TestProbe(t *testing.T) {
	gw := &stubGateway{err: errors.New("down")}
	svc, state := newTestService(gw, time.Second)

	text, degraded := svc.Probe(context.Background(), model.ModePlanner)
	assert.Equal(t, stillDownText, text)
	assert.True(t, degraded)
	assert.True(t, state.Degraded())

	gw.err = nil
	gw.resp = &gateway.Response{Response: "pong"}

	text, degraded = svc.Probe(context.Background(), model.ModePlanner)
	assert.Equal(t, restoredText, text)
	assert.False(t, degraded)
	assert.False(t, state.Degraded())
	assert.Equal(t, probeMessage, gw.lastReq.Message)
}
