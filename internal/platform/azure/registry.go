package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"

	"github.com/imamik/acrwebhooks/internal/util/labels"
)

// CreateRegistry creates a registry and waits for provisioning to finish.
func (c *RealClient) CreateRegistry(ctx context.Context, resourceGroup string, spec RegistrySpec) (*Registry, error) {
	ctx, cancel := c.createContext(ctx)
	defer cancel()

	poller, err := c.registries.BeginCreate(ctx, resourceGroup, spec.Name, armcontainerregistry.Registry{
		Location: to.Ptr(spec.Location),
		SKU: &armcontainerregistry.SKU{
			Name: to.Ptr(armcontainerregistry.SKUName(spec.SKU)),
		},
		Properties: &armcontainerregistry.RegistryProperties{
			AdminUserEnabled: to.Ptr(spec.AdminUserEnabled),
		},
		Tags: labels.ToAzure(spec.Tags),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start creation of registry %s: %w", spec.Name, err)
	}

	resp, err := poller.PollUntilDone(ctx, c.pollOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create registry %s: %w", spec.Name, err)
	}

	return toRegistry(&resp.Registry), nil
}

// ListCredentials returns the admin username and the first admin password.
func (c *RealClient) ListCredentials(ctx context.Context, resourceGroup, registry string) (*RegistryCredentials, error) {
	resp, err := c.registries.ListCredentials(ctx, resourceGroup, registry, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials for registry %s: %w", registry, err)
	}

	creds := &RegistryCredentials{Username: deref(resp.Username)}
	for _, p := range resp.Passwords {
		if p != nil && deref(p.Value) != "" {
			creds.Password = *p.Value
			break
		}
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, fmt.Errorf("registry %s returned no admin credentials (is the admin user enabled?)", registry)
	}
	return creds, nil
}

func toRegistry(r *armcontainerregistry.Registry) *Registry {
	reg := &Registry{
		Name: deref(r.Name),
		ID:   deref(r.ID),
		Tags: labels.FromAzure(r.Tags),
	}
	if r.SKU != nil && r.SKU.Name != nil {
		reg.SKU = string(*r.SKU.Name)
	}
	if r.Properties != nil {
		reg.LoginServer = deref(r.Properties.LoginServer)
		reg.AdminUserEnabled = deref(r.Properties.AdminUserEnabled)
	}
	return reg
}
