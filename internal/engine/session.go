package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/imamik/acrwebhooks/internal/platform/docker"
)

// ErrNoEngine is returned when no strategy produced a reachable engine.
var ErrNoEngine = errors.New("no container engine available")

// Provider hands out engine sessions.
type Provider interface {
	Acquire(ctx context.Context) (*Session, error)
}

// Session is an acquired engine plus whatever must be torn down with it.
type Session struct {
	Engine docker.Engine
	// Source describes where the engine runs, for logs and the run report.
	Source string

	release func(ctx context.Context) error
	once    sync.Once
	err     error
}

// NewSession wraps an engine. release may be nil.
func NewSession(eng docker.Engine, source string, release func(ctx context.Context) error) *Session {
	return &Session{Engine: eng, Source: source, release: release}
}

// Release tears the session down. Later calls return the first result.
func (s *Session) Release(ctx context.Context) error {
	s.once.Do(func() {
		if s.release != nil {
			s.err = s.release(ctx)
		}
	})
	return s.err
}

// CleanupError represents accumulated errors from release steps.
type CleanupError struct {
	Errors []error
}

func (e *CleanupError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("cleanup encountered %d errors: %v", len(e.Errors), e.Errors)
}

func (e *CleanupError) Unwrap() error {
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return errors.Join(e.Errors...)
}

// Add records err if it is non-nil.
func (e *CleanupError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors reports whether any error was recorded.
func (e *CleanupError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ErrOrNil returns e when it holds errors and nil otherwise.
func (e *CleanupError) ErrOrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}
