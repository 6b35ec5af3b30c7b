package engine

import (
	"context"

	"github.com/imamik/acrwebhooks/internal/platform/docker"
)

// LocalStrategy uses the engine configured by DOCKER_HOST, or the default
// local socket.
type LocalStrategy struct {
	newEngine func() (docker.Engine, error)
}

// NewLocalStrategy creates a LocalStrategy backed by the Docker client.
func NewLocalStrategy() *LocalStrategy {
	return &LocalStrategy{newEngine: func() (docker.Engine, error) {
		return docker.NewLocalClient()
	}}
}

// Name implements Strategy.
func (s *LocalStrategy) Name() string { return "local" }

// Acquire connects and pings the engine.
func (s *LocalStrategy) Acquire(ctx context.Context) (*Session, error) {
	eng, err := s.newEngine()
	if err != nil {
		return nil, err
	}
	if err := eng.Ping(ctx); err != nil {
		_ = eng.Close()
		return nil, err
	}
	return NewSession(eng, "local", func(context.Context) error {
		return eng.Close()
	}), nil
}
