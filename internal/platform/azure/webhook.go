package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"

	"github.com/imamik/acrwebhooks/internal/util/labels"
)

// CreateWebhook creates a webhook on the registry and waits for it.
func (c *RealClient) CreateWebhook(ctx context.Context, resourceGroup, registry string, spec WebhookSpec) (*Webhook, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := c.createContext(ctx)
	defer cancel()

	poller, err := c.webhooks.BeginCreate(ctx, resourceGroup, registry, spec.Name, toCreateParameters(spec), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start creation of webhook %s: %w", spec.Name, err)
	}

	resp, err := poller.PollUntilDone(ctx, c.pollOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook %s: %w", spec.Name, err)
	}

	return toWebhook(&resp.Webhook), nil
}

// GetWebhook returns the current state of a webhook.
func (c *RealClient) GetWebhook(ctx context.Context, resourceGroup, registry, name string) (*Webhook, error) {
	resp, err := c.webhooks.Get(ctx, resourceGroup, registry, name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook %s: %w", name, err)
	}
	return toWebhook(&resp.Webhook), nil
}

// PingWebhook triggers a synthetic ping event.
func (c *RealClient) PingWebhook(ctx context.Context, resourceGroup, registry, name string) (string, error) {
	resp, err := c.webhooks.Ping(ctx, resourceGroup, registry, name, nil)
	if err != nil {
		return "", fmt.Errorf("failed to ping webhook %s: %w", name, err)
	}
	return deref(resp.ID), nil
}

// ListEvents drains the event pager for a webhook.
func (c *RealClient) ListEvents(ctx context.Context, resourceGroup, registry, name string) ([]WebhookEvent, error) {
	pager := c.webhooks.NewListEventsPager(resourceGroup, registry, name, nil)

	var events []WebhookEvent
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list events for webhook %s: %w", name, err)
		}
		for _, e := range page.Value {
			if e != nil {
				events = append(events, toEvent(e))
			}
		}
	}
	return events, nil
}

func toCreateParameters(spec WebhookSpec) armcontainerregistry.WebhookCreateParameters {
	actions := make([]*armcontainerregistry.WebhookAction, 0, len(spec.Actions))
	for _, a := range spec.Actions {
		actions = append(actions, to.Ptr(armcontainerregistry.WebhookAction(a)))
	}

	return armcontainerregistry.WebhookCreateParameters{
		Location: to.Ptr(spec.Location),
		Properties: &armcontainerregistry.WebhookPropertiesCreateParameters{
			Actions:       actions,
			ServiceURI:    to.Ptr(spec.ServiceURI),
			CustomHeaders: labels.ToAzure(spec.CustomHeaders),
			Scope:         to.Ptr(spec.Scope),
			Status:        to.Ptr(armcontainerregistry.WebhookStatus(spec.Status())),
		},
		Tags: labels.ToAzure(spec.Tags),
	}
}

func toWebhook(w *armcontainerregistry.Webhook) *Webhook {
	hook := &Webhook{
		Name: deref(w.Name),
		ID:   deref(w.ID),
	}
	if w.Properties == nil {
		return hook
	}
	for _, a := range w.Properties.Actions {
		if a != nil {
			hook.Actions = append(hook.Actions, WebhookAction(*a))
		}
	}
	if w.Properties.Status != nil {
		hook.Status = WebhookStatus(*w.Properties.Status)
	}
	hook.Scope = deref(w.Properties.Scope)
	return hook
}

func toEvent(e *armcontainerregistry.Event) WebhookEvent {
	ev := WebhookEvent{ID: deref(e.ID)}
	if req := e.EventRequestMessage; req != nil && req.Content != nil {
		ev.Action = deref(req.Content.Action)
		if t := req.Content.Target; t != nil {
			ev.Repository = deref(t.Repository)
			ev.Tag = deref(t.Tag)
		}
	}
	if resp := e.EventResponseMessage; resp != nil {
		ev.StatusCode = deref(resp.StatusCode)
		ev.Content = deref(resp.Content)
	}
	return ev
}
