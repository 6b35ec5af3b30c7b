package azure

import (
	"context"
	"fmt"
	"net/url"
	"slices"
)

// WebhookAction is a registry event that triggers a webhook delivery.
type WebhookAction string

const (
	ActionPush   WebhookAction = "push"
	ActionDelete WebhookAction = "delete"
)

// WebhookStatus is the delivery state of a webhook.
type WebhookStatus string

const (
	StatusEnabled  WebhookStatus = "enabled"
	StatusDisabled WebhookStatus = "disabled"
)

// ResourceGroup is a created resource group.
type ResourceGroup struct {
	Name     string
	ID       string
	Location string
}

// RegistrySpec describes a registry to create.
type RegistrySpec struct {
	Name             string
	Location         string
	SKU              string
	AdminUserEnabled bool
	Tags             map[string]string
}

// Registry is a created registry.
type Registry struct {
	Name             string
	ID               string
	LoginServer      string
	SKU              string
	AdminUserEnabled bool
	Tags             map[string]string
}

// WebhookSpec describes a webhook subscription to create. An empty Scope
// matches every repository in the registry.
type WebhookSpec struct {
	Name          string
	Location      string
	Actions       []WebhookAction
	ServiceURI    string
	Enabled       bool
	Scope         string
	CustomHeaders map[string]string
	Tags          map[string]string
}

// Validate checks the trigger set and the delivery target.
func (s WebhookSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("webhook name is required")
	}
	if len(s.Actions) == 0 {
		return fmt.Errorf("webhook %s: at least one action is required", s.Name)
	}
	seen := make(map[WebhookAction]bool, len(s.Actions))
	for _, a := range s.Actions {
		if a != ActionPush && a != ActionDelete {
			return fmt.Errorf("webhook %s: unsupported action %q", s.Name, a)
		}
		if seen[a] {
			return fmt.Errorf("webhook %s: duplicate action %q", s.Name, a)
		}
		seen[a] = true
	}
	u, err := url.Parse(s.ServiceURI)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("webhook %s: service URI %q must be an absolute http(s) URL", s.Name, s.ServiceURI)
	}
	return nil
}

// Status returns the status the webhook is created with.
func (s WebhookSpec) Status() WebhookStatus {
	if s.Enabled {
		return StatusEnabled
	}
	return StatusDisabled
}

// Webhook is a created webhook.
type Webhook struct {
	Name    string
	ID      string
	Actions []WebhookAction
	Status  WebhookStatus
	Scope   string
}

// HasActions reports whether the webhook triggers on exactly the given set.
func (w *Webhook) HasActions(actions ...WebhookAction) bool {
	if len(w.Actions) != len(actions) {
		return false
	}
	for _, a := range actions {
		if !slices.Contains(w.Actions, a) {
			return false
		}
	}
	return true
}

// WebhookEvent is one delivery attempt recorded for a webhook.
type WebhookEvent struct {
	ID         string
	Action     string
	Repository string
	Tag        string
	StatusCode string
	// Content is the response payload returned by the delivery target.
	Content string
}

// RegistryCredentials are admin credentials for a registry login server.
type RegistryCredentials struct {
	Username string
	Password string
	Server   string
}

// ResourceGroupManager creates and deletes resource groups.
type ResourceGroupManager interface {
	CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error)
	// DeleteResourceGroup succeeds when the group does not exist.
	DeleteResourceGroup(ctx context.Context, name string) error
}

// RegistryManager creates registries.
type RegistryManager interface {
	CreateRegistry(ctx context.Context, resourceGroup string, spec RegistrySpec) (*Registry, error)
}

// CredentialProvider issues admin credentials for a registry.
type CredentialProvider interface {
	ListCredentials(ctx context.Context, resourceGroup, registry string) (*RegistryCredentials, error)
}

// WebhookManager configures webhooks and reads their delivery history.
type WebhookManager interface {
	CreateWebhook(ctx context.Context, resourceGroup, registry string, spec WebhookSpec) (*Webhook, error)
	GetWebhook(ctx context.Context, resourceGroup, registry, name string) (*Webhook, error)
	// PingWebhook sends a synthetic event and returns its ID.
	PingWebhook(ctx context.Context, resourceGroup, registry, name string) (string, error)
	// ListEvents returns the full delivery history in service order.
	ListEvents(ctx context.Context, resourceGroup, registry, name string) ([]WebhookEvent, error)
}

// CloudManager combines all management-plane interfaces.
type CloudManager interface {
	ResourceGroupManager
	RegistryManager
	CredentialProvider
	WebhookManager
}

// ResourceGroupID returns the ARM ID of a resource group.
func ResourceGroupID(subscriptionID, name string) string {
	return fmt.Sprintf("/subscriptions/%s/resourceGroups/%s", subscriptionID, name)
}
