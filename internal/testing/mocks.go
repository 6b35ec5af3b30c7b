package testing

import (
	"context"
	"sync/atomic"

	"github.com/imamik/acrwebhooks/internal/engine"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
)

// StaticProvider hands out one session wrapping Engine and counts releases.
type StaticProvider struct {
	Engine     docker.Engine
	AcquireErr error

	acquired atomic.Int32
	released atomic.Int32
}

// Ensure interface compliance
var _ engine.Provider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider for eng.
func NewStaticProvider(eng docker.Engine) *StaticProvider {
	return &StaticProvider{Engine: eng}
}

// Acquire implements engine.Provider.
func (p *StaticProvider) Acquire(context.Context) (*engine.Session, error) {
	if p.AcquireErr != nil {
		return nil, p.AcquireErr
	}
	p.acquired.Add(1)
	return engine.NewSession(p.Engine, "static", func(context.Context) error {
		p.released.Add(1)
		return p.Engine.Close()
	}), nil
}

// Acquired returns how many sessions were handed out.
func (p *StaticProvider) Acquired() int {
	return int(p.acquired.Load())
}

// Released returns how many sessions were released.
func (p *StaticProvider) Released() int {
	return int(p.released.Load())
}
