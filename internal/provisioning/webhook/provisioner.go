package webhook

import (
	"fmt"
	"maps"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/provisioning"
)

const phaseWebhooks = "webhooks"

// Specs returns the two webhook definitions. The first triggers on push and
// delete and carries the configured headers and tags. The second triggers on
// push only, starts disabled, and has an empty scope so it covers every repository.
func Specs(cfg *config.Config, names provisioning.Names) []azure.WebhookSpec {
	return []azure.WebhookSpec{
		{
			Name:          names.Webhooks[0],
			Location:      cfg.Location,
			Actions:       []azure.WebhookAction{azure.ActionPush, azure.ActionDelete},
			ServiceURI:    cfg.Webhook.ServiceURI,
			Enabled:       true,
			CustomHeaders: maps.Clone(cfg.Webhook.CustomHeaders),
			Tags:          maps.Clone(cfg.Webhook.Tags),
		},
		{
			Name:       names.Webhooks[1],
			Location:   cfg.Location,
			Actions:    []azure.WebhookAction{azure.ActionPush},
			ServiceURI: cfg.Webhook.ServiceURI,
			Enabled:    false,
			Scope:      "",
		},
	}
}

// Provisioner creates both webhooks on the run's registry.
type Provisioner struct{}

// NewProvisioner creates a webhook provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the Phase interface.
func (p *Provisioner) Name() string {
	return phaseWebhooks
}

// Provision creates the webhooks in order and records them in the state.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	rg := ctx.State.ResourceGroup.Name
	registry := ctx.State.Registry.Name
	if registry == "" {
		return fmt.Errorf("registry has not been created")
	}

	for _, spec := range Specs(ctx.Config, ctx.State.Names) {
		if err := spec.Validate(); err != nil {
			return err
		}

		provisioning.LogResource(ctx.Observer, phaseWebhooks, provisioning.EventResourceCreating,
			provisioning.Resource{Kind: "webhook", Name: spec.Name})
		wh, err := ctx.Cloud.CreateWebhook(ctx, rg, registry, spec)
		if err != nil {
			return fmt.Errorf("failed to create webhook %s: %w", spec.Name, err)
		}

		ctx.State.Webhooks = append(ctx.State.Webhooks, wh)
		provisioning.LogResource(ctx.Observer, phaseWebhooks, provisioning.EventResourceCreated,
			provisioning.Resource{Kind: "webhook", Name: wh.Name, ID: wh.ID})
		ctx.Observer.Printf("[%s] %s actions=%v status=%s", phaseWebhooks, wh.Name, wh.Actions, wh.Status)
	}
	return nil
}
