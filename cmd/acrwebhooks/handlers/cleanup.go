package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/provisioning"
	"github.com/imamik/acrwebhooks/internal/provisioning/destroy"
)

// Provisioner interface for testing - matches provisioning.Phase.
type Provisioner interface {
	Provision(ctx *provisioning.Context) error
}

// newDestroyProvisioner creates the provisioner used by cleanup. Replaced in tests.
var newDestroyProvisioner = func() Provisioner {
	return destroy.NewProvisioner()
}

// Cleanup handles the cleanup command.
//
// It deletes the named resource group. A group that does not exist is
// reported as deleted.
func Cleanup(ctx context.Context, resourceGroup string) error {
	if resourceGroup == "" {
		return fmt.Errorf("resource group name is required")
	}

	cfg := config.Default()
	cfg.ApplyEnv()
	log := newLogger(cfg.Log)

	creds, err := loadCredentials()
	if err != nil {
		return err
	}
	timeouts := loadTimeouts()

	cloud, err := newCloudClient(creds, timeouts)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	state := provisioning.NewState("", provisioning.Names{ResourceGroup: resourceGroup})
	state.ResourceGroup.ID = azure.ResourceGroupID(creds.SubscriptionID, resourceGroup)

	pCtx := provisioning.NewContext(ctx, cfg, state, cloud, nil, provisioning.NewLogrusObserver(log))
	pCtx.Timeouts = timeouts

	if err := newDestroyProvisioner().Provision(pCtx); err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	log.Infof("Resource group %s deleted", resourceGroup)
	return nil
}
