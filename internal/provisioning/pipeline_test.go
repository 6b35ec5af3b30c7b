package provisioning

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acrwebhooks/internal/metrics"
)

type phaseFunc struct {
	name string
	fn   func(ctx *Context) error
}

func (p phaseFunc) Name() string { return p.name }

func (p phaseFunc) Provision(ctx *Context) error { return p.fn(ctx) }

func newPhase(name string, fn func(*Context) error) Phase {
	return phaseFunc{name: name, fn: fn}
}

func newPipelineContext() *Context {
	return &Context{
		Context:  context.Background(),
		State:    NewState("run-1", Names{}),
		Observer: NewMockObserver(),
	}
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	ctx := newPipelineContext()
	var executed []string

	err := RunPhases(ctx, []Phase{
		newPhase("resource-group", func(_ *Context) error { executed = append(executed, "resource-group"); return nil }),
		newPhase("registry", func(_ *Context) error { executed = append(executed, "registry"); return nil }),
		newPhase("webhooks", func(_ *Context) error { executed = append(executed, "webhooks"); return nil }),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"resource-group", "registry", "webhooks"}, executed)
	require.Len(t, ctx.State.Timings, 3)
	assert.Equal(t, "registry", ctx.State.Timings[1].Name)
	assert.Empty(t, ctx.State.Timings[1].Err)
}

func TestRunPhases_StopsOnError(t *testing.T) {
	t.Parallel()
	ctx := newPipelineContext()
	var executed []string

	err := RunPhases(ctx, []Phase{
		newPhase("resource-group", func(_ *Context) error { executed = append(executed, "resource-group"); return nil }),
		newPhase("registry", func(_ *Context) error { return errors.New("quota exceeded") }),
		newPhase("webhooks", func(_ *Context) error { executed = append(executed, "webhooks"); return nil }),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry phase failed")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, []string{"resource-group"}, executed)
	require.Len(t, ctx.State.Timings, 2)
	assert.Equal(t, "quota exceeded", ctx.State.Timings[1].Err)
}

func TestRunPhases_Empty(t *testing.T) {
	t.Parallel()
	ctx := newPipelineContext()

	require.NoError(t, RunPhases(ctx, nil))
	assert.Empty(t, ctx.State.Timings)
}

func TestRunPhase_RecordsMetrics(t *testing.T) {
	t.Parallel()
	ctx := newPipelineContext()
	ctx.Metrics = metrics.NewRecorder()

	_ = RunPhase(ctx, newPhase("image", func(_ *Context) error { return errors.New("pull failed") }), "image")

	count, err := testutil.GatherAndCount(ctx.Metrics.Gatherer(), "acrwebhooks_workflow_phase_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRunPhase_EmitsEvents(t *testing.T) {
	t.Parallel()
	ctx := newPipelineContext()
	observer := ctx.Observer.(*MockObserver)

	require.NoError(t, RunPhase(ctx, newPhase("registry", func(_ *Context) error { return nil }), "registry (2/6)"))

	require.Len(t, observer.events, 2)
	assert.Equal(t, EventPhaseStarted, observer.events[0].Type)
	assert.Equal(t, "registry (2/6)", observer.events[0].Phase)
	assert.Equal(t, EventPhaseCompleted, observer.events[1].Type)
}
