package destroy

import (
	"context"
	"fmt"

	"github.com/imamik/acrwebhooks/internal/provisioning"
)

const phaseDestroy = "destroy"

// Provisioner handles resource group deletion.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the Phase interface.
func (p *Provisioner) Name() string {
	return phaseDestroy
}

// Provision deletes the resource group. It does nothing when no group was
// recorded. A group that is already gone counts as deleted.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	rg := ctx.State.ResourceGroup
	if !ctx.State.ResourceGroupCreated() {
		ctx.Observer.Printf("[Destroy] No resource group recorded, nothing to delete")
		return nil
	}

	res := provisioning.Resource{Kind: "resource group", Name: rg.Name, ID: rg.ID}
	provisioning.LogResource(ctx.Observer, phaseDestroy, provisioning.EventResourceDeleting, res)

	deleteCtx := context.Context(ctx)
	if ctx.Timeouts != nil && ctx.Timeouts.AzureDelete > 0 {
		var cancel context.CancelFunc
		deleteCtx, cancel = context.WithTimeout(ctx, ctx.Timeouts.AzureDelete)
		defer cancel()
	}

	if err := ctx.Cloud.DeleteResourceGroup(deleteCtx, rg.Name); err != nil {
		return fmt.Errorf("failed to delete resource group %s: %w", rg.Name, err)
	}

	provisioning.LogResource(ctx.Observer, phaseDestroy, provisioning.EventResourceDeleted, res)
	return nil
}
