package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Strategy is one way of obtaining an engine.
type Strategy interface {
	Name() string
	Acquire(ctx context.Context) (*Session, error)
}

// Acquirer tries strategies in order.
type Acquirer struct {
	strategies []Strategy
	log        logrus.FieldLogger
}

// Ensure interface compliance
var _ Provider = (*Acquirer)(nil)

// NewAcquirer creates an Acquirer over the given strategies.
func NewAcquirer(log logrus.FieldLogger, strategies ...Strategy) *Acquirer {
	return &Acquirer{strategies: strategies, log: log}
}

// Acquire returns the first session a strategy produces, or an error
// wrapping ErrNoEngine with every strategy's failure.
func (a *Acquirer) Acquire(ctx context.Context) (*Session, error) {
	var errs []error
	for _, s := range a.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		a.log.WithField("strategy", s.Name()).Info("Acquiring container engine")
		session, err := s.Acquire(ctx)
		if err != nil {
			a.log.WithField("strategy", s.Name()).WithError(err).Warn("Container engine unavailable")
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
			continue
		}

		a.log.WithFields(logrus.Fields{"strategy": s.Name(), "source": session.Source}).Info("Container engine ready")
		return session, nil
	}

	if len(errs) == 0 {
		return nil, ErrNoEngine
	}
	return nil, fmt.Errorf("%w: %w", ErrNoEngine, errors.Join(errs...))
}
