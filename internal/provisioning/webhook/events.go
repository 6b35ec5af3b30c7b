package webhook

import (
	"fmt"

	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/provisioning"
)

// Stage selects which event listing a phase performs.
type Stage string

const (
	// StageBeforePush pings the webhook and lists its events.
	StageBeforePush Stage = "before"
	// StageAfterPush re-fetches the webhook and lists its events again.
	StageAfterPush Stage = "after"
)

// EventsProvisioner lists the delivery history of the primary webhook.
type EventsProvisioner struct {
	stage Stage
}

// NewEventsProvisioner creates an events phase for stage.
func NewEventsProvisioner(stage Stage) *EventsProvisioner {
	return &EventsProvisioner{stage: stage}
}

// Name implements the Phase interface.
func (p *EventsProvisioner) Name() string {
	return "webhook-events-" + string(p.stage)
}

// Provision lists events and stores them in the state.
func (p *EventsProvisioner) Provision(ctx *provisioning.Context) error {
	phase := p.Name()
	primary := ctx.State.PrimaryWebhook()
	if primary == nil {
		return fmt.Errorf("primary webhook has not been created")
	}
	rg := ctx.State.ResourceGroup.Name
	registry := ctx.State.Registry.Name

	switch p.stage {
	case StageBeforePush:
		eventID, err := ctx.Cloud.PingWebhook(ctx, rg, registry, primary.Name)
		if err != nil {
			return fmt.Errorf("failed to ping webhook %s: %w", primary.Name, err)
		}
		ctx.State.PingEventID = eventID
		ctx.Observer.Printf("[%s] Pinged %s, event %s", phase, primary.Name, eventID)
	case StageAfterPush:
		wh, err := ctx.Cloud.GetWebhook(ctx, rg, registry, primary.Name)
		if err != nil {
			return fmt.Errorf("failed to get webhook %s: %w", primary.Name, err)
		}
		ctx.Observer.Printf("[%s] Webhook %s status=%s", phase, wh.Name, wh.Status)
	default:
		return fmt.Errorf("unknown event stage %q", p.stage)
	}

	events, err := ctx.Cloud.ListEvents(ctx, rg, registry, primary.Name)
	if err != nil {
		return fmt.Errorf("failed to list events for webhook %s: %w", primary.Name, err)
	}

	logEvents(ctx.Observer, phase, primary.Name, events)
	if ctx.Metrics != nil {
		ctx.Metrics.SetWebhookEvents(primary.Name, string(p.stage), len(events))
	}

	if p.stage == StageBeforePush {
		ctx.State.EventsBeforePush = events
		return nil
	}

	ctx.State.EventsAfterPush = events
	if before := len(ctx.State.EventsBeforePush); len(events) < before {
		provisioning.LogWarning(ctx.Observer, phase,
			fmt.Sprintf("event count for %s dropped from %d to %d after push", primary.Name, before, len(events)))
	}
	return nil
}

func logEvents(observer provisioning.Observer, phase, webhook string, events []azure.WebhookEvent) {
	observer.Printf("[%s] %s has %d events", phase, webhook, len(events))
	for _, e := range events {
		observer.Event(provisioning.Event{
			Type:     provisioning.EventWebhookEvent,
			Phase:    phase,
			Resource: e.ID,
			Message:  e.Content,
			Fields: map[string]string{
				"action":     e.Action,
				"repository": e.Repository,
				"tag":        e.Tag,
				"status":     e.StatusCode,
			},
		})
	}
}
