package infrastructure

import (
	"fmt"

	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/provisioning"
	"github.com/imamik/acrwebhooks/internal/util/labels"
)

const (
	phaseResourceGroup = "resource-group"
	phaseRegistry      = "registry"
)

// ResourceGroupProvisioner creates the resource group every other resource lives in.
type ResourceGroupProvisioner struct{}

// NewResourceGroupProvisioner creates a resource group provisioner.
func NewResourceGroupProvisioner() *ResourceGroupProvisioner {
	return &ResourceGroupProvisioner{}
}

// Name implements the Phase interface.
func (p *ResourceGroupProvisioner) Name() string {
	return phaseResourceGroup
}

// Provision creates the resource group and records its ID. The ID stays
// empty on failure so that cleanup is skipped.
func (p *ResourceGroupProvisioner) Provision(ctx *provisioning.Context) error {
	name := ctx.State.ResourceGroup.Name
	if name == "" {
		return fmt.Errorf("resource group name is not set")
	}

	provisioning.LogResource(ctx.Observer, phaseResourceGroup, provisioning.EventResourceCreating,
		provisioning.Resource{Kind: "resource group", Name: name})
	rg, err := ctx.Cloud.CreateResourceGroup(ctx, name, ctx.Config.Location, labels.RegistryTags())
	if err != nil {
		return fmt.Errorf("failed to create resource group %s: %w", name, err)
	}

	ctx.State.ResourceGroup = *rg
	provisioning.LogResource(ctx.Observer, phaseResourceGroup, provisioning.EventResourceCreated,
		provisioning.Resource{Kind: "resource group", Name: rg.Name, ID: rg.ID})
	return nil
}

// RegistryProvisioner creates the container registry with admin access enabled.
type RegistryProvisioner struct{}

// NewRegistryProvisioner creates a registry provisioner.
func NewRegistryProvisioner() *RegistryProvisioner {
	return &RegistryProvisioner{}
}

// Name implements the Phase interface.
func (p *RegistryProvisioner) Name() string {
	return phaseRegistry
}

// Provision creates the registry in the run's resource group.
func (p *RegistryProvisioner) Provision(ctx *provisioning.Context) error {
	spec := azure.RegistrySpec{
		Name:             ctx.State.Names.Registry,
		Location:         ctx.Config.Location,
		SKU:              ctx.Config.Registry.SKU,
		AdminUserEnabled: true,
		Tags:             labels.RegistryTags(),
	}

	provisioning.LogResource(ctx.Observer, phaseRegistry, provisioning.EventResourceCreating,
		provisioning.Resource{Kind: "registry", Name: spec.Name})
	reg, err := ctx.Cloud.CreateRegistry(ctx, ctx.State.ResourceGroup.Name, spec)
	if err != nil {
		return fmt.Errorf("failed to create registry %s: %w", spec.Name, err)
	}

	ctx.State.Registry = *reg
	provisioning.LogResource(ctx.Observer, phaseRegistry, provisioning.EventResourceCreated,
		provisioning.Resource{Kind: "registry", Name: reg.Name, ID: reg.ID})
	ctx.Observer.Printf("[%s] Login server: %s (SKU %s)", phaseRegistry, reg.LoginServer, reg.SKU)
	return nil
}
