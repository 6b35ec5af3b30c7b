package orchestration

import (
	"context"
	"fmt"

	"github.com/imamik/acrwebhooks/internal/provisioning"
	"github.com/imamik/acrwebhooks/internal/provisioning/destroy"
	"github.com/imamik/acrwebhooks/internal/provisioning/image"
	"github.com/imamik/acrwebhooks/internal/provisioning/infrastructure"
	"github.com/imamik/acrwebhooks/internal/provisioning/webhook"
)

// Workflow runs the registry sample end to end.
type Workflow struct {
	ctx     *provisioning.Context
	phases  []provisioning.Phase
	cleanup provisioning.Phase
}

// NewWorkflow creates a workflow over pctx. The state in pctx is filled in as phases complete.
func NewWorkflow(pctx *provisioning.Context) *Workflow {
	return &Workflow{
		ctx: pctx,
		phases: []provisioning.Phase{
			infrastructure.NewResourceGroupProvisioner(),
			infrastructure.NewRegistryProvisioner(),
			webhook.NewProvisioner(),
			webhook.NewEventsProvisioner(webhook.StageBeforePush),
			image.NewProvisioner(),
			webhook.NewEventsProvisioner(webhook.StageAfterPush),
		},
		cleanup: destroy.NewProvisioner(),
	}
}

// Phases returns the ordered phases, excluding cleanup.
func (w *Workflow) Phases() []provisioning.Phase {
	return w.phases
}

// State returns the run's state.
func (w *Workflow) State() *provisioning.State {
	return w.ctx.State
}

// Run executes every phase and then cleans up. Cleanup errors are logged
// and never replace the workflow error.
func (w *Workflow) Run() (err error) {
	defer func() {
		w.Cleanup()
		if w.ctx.Metrics != nil {
			w.ctx.Metrics.ObserveRun(err)
		}
	}()

	if err := provisioning.RunPhases(w.ctx, w.phases); err != nil {
		return fmt.Errorf("workflow failed: %w", err)
	}
	return nil
}

// Cleanup deletes the resource group when one was recorded and retention
// was not requested. It reports whether a deletion was attempted.
func (w *Workflow) Cleanup() bool {
	state := w.ctx.State
	if !state.ResourceGroupCreated() {
		return false
	}
	if w.ctx.Config.KeepResources {
		w.ctx.Observer.Printf("[Destroy] Keeping resource group %s (%s)", state.ResourceGroup.Name, state.ResourceGroup.ID)
		return false
	}

	// Cleanup must outlive a cancelled run context.
	cleanupCtx := w.ctx.WithContext(context.WithoutCancel(w.ctx))
	if err := provisioning.RunPhase(cleanupCtx, w.cleanup, w.cleanup.Name()); err != nil {
		provisioning.LogWarning(w.ctx.Observer, w.cleanup.Name(),
			fmt.Sprintf("resource group %s may still exist: %v", state.ResourceGroup.Name, err))
	}
	return true
}
