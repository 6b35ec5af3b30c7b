package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/imamik/acrwebhooks/internal/util/labels"
)

// CreateResourceGroup creates a resource group in location. An existing group
// is never adopted: ErrResourceGroupExists is returned instead.
func (c *RealClient) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error) {
	ctx, cancel := c.createContext(ctx)
	defer cancel()

	exists, err := c.groups.CheckExistence(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check resource group %s: %w", name, err)
	}
	if exists.Success {
		return nil, fmt.Errorf("%w: %s", ErrResourceGroupExists, name)
	}

	resp, err := c.groups.CreateOrUpdate(ctx, name, armresources.ResourceGroup{
		Location: to.Ptr(location),
		Tags:     labels.ToAzure(tags),
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource group %s: %w", name, err)
	}

	rg := &ResourceGroup{
		Name:     name,
		ID:       deref(resp.ID),
		Location: deref(resp.Location),
	}
	if rg.ID == "" {
		return nil, fmt.Errorf("resource group %s was created without an ID", name)
	}
	return rg, nil
}

// DeleteResourceGroup deletes a resource group and everything in it, waiting
// for the deletion to finish. A group that does not exist is not an error.
func (c *RealClient) DeleteResourceGroup(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.AzureDelete)
	defer cancel()

	poller, err := c.groups.BeginDelete(ctx, name, nil)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to start deletion of resource group %s: %w", name, err)
	}

	if _, err := poller.PollUntilDone(ctx, c.pollOptions()); err != nil {
		return fmt.Errorf("failed to delete resource group %s: %w", name, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
