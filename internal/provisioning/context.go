package provisioning

import (
	"context"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/engine"
	"github.com/imamik/acrwebhooks/internal/metrics"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Cloud    azure.CloudManager
	Engines  engine.Provider
	Verifier docker.Verifier
	Observer Observer
	Timeouts *config.Timeouts
	// Metrics is optional.
	Metrics *metrics.Recorder
}

// NewContext creates a new provisioning context.
func NewContext(
	ctx context.Context,
	cfg *config.Config,
	state *State,
	cloud azure.CloudManager,
	engines engine.Provider,
	observer Observer,
) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		State:    state,
		Cloud:    cloud,
		Engines:  engines,
		Verifier: &docker.RemoteVerifier{},
		Observer: observer,
		Timeouts: config.LoadTimeouts(),
	}
}

// WithContext returns a shallow copy bound to ctx.
func (c *Context) WithContext(ctx context.Context) *Context {
	cp := *c
	cp.Context = ctx
	return &cp
}
