package azure

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of CloudManager.
type MockClient struct {
	CreateResourceGroupFunc func(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error)
	DeleteResourceGroupFunc func(ctx context.Context, name string) error

	CreateRegistryFunc  func(ctx context.Context, resourceGroup string, spec RegistrySpec) (*Registry, error)
	ListCredentialsFunc func(ctx context.Context, resourceGroup, registry string) (*RegistryCredentials, error)

	CreateWebhookFunc func(ctx context.Context, resourceGroup, registry string, spec WebhookSpec) (*Webhook, error)
	GetWebhookFunc    func(ctx context.Context, resourceGroup, registry, name string) (*Webhook, error)
	PingWebhookFunc   func(ctx context.Context, resourceGroup, registry, name string) (string, error)
	ListEventsFunc    func(ctx context.Context, resourceGroup, registry, name string) ([]WebhookEvent, error)
}

// Ensure interface compliance
var _ CloudManager = (*MockClient)(nil)

// CreateResourceGroup mocks resource group creation.
func (m *MockClient) CreateResourceGroup(ctx context.Context, name, location string, tags map[string]string) (*ResourceGroup, error) {
	if m.CreateResourceGroupFunc != nil {
		return m.CreateResourceGroupFunc(ctx, name, location, tags)
	}
	return &ResourceGroup{
		Name:     name,
		ID:       "/subscriptions/mock/resourceGroups/" + name,
		Location: location,
	}, nil
}

// DeleteResourceGroup mocks resource group deletion.
func (m *MockClient) DeleteResourceGroup(ctx context.Context, name string) error {
	if m.DeleteResourceGroupFunc != nil {
		return m.DeleteResourceGroupFunc(ctx, name)
	}
	return nil
}

// CreateRegistry mocks registry creation.
func (m *MockClient) CreateRegistry(ctx context.Context, resourceGroup string, spec RegistrySpec) (*Registry, error) {
	if m.CreateRegistryFunc != nil {
		return m.CreateRegistryFunc(ctx, resourceGroup, spec)
	}
	return &Registry{
		Name:             spec.Name,
		ID:               fmt.Sprintf("/subscriptions/mock/resourceGroups/%s/providers/Microsoft.ContainerRegistry/registries/%s", resourceGroup, spec.Name),
		LoginServer:      spec.Name + ".azurecr.io",
		SKU:              spec.SKU,
		AdminUserEnabled: spec.AdminUserEnabled,
		Tags:             spec.Tags,
	}, nil
}

// ListCredentials mocks admin credential retrieval.
func (m *MockClient) ListCredentials(ctx context.Context, resourceGroup, registry string) (*RegistryCredentials, error) {
	if m.ListCredentialsFunc != nil {
		return m.ListCredentialsFunc(ctx, resourceGroup, registry)
	}
	return &RegistryCredentials{Username: registry, Password: "mock-password"}, nil
}

// CreateWebhook mocks webhook creation.
func (m *MockClient) CreateWebhook(ctx context.Context, resourceGroup, registry string, spec WebhookSpec) (*Webhook, error) {
	if m.CreateWebhookFunc != nil {
		return m.CreateWebhookFunc(ctx, resourceGroup, registry, spec)
	}
	return &Webhook{
		Name:    spec.Name,
		ID:      fmt.Sprintf("/subscriptions/mock/resourceGroups/%s/providers/Microsoft.ContainerRegistry/registries/%s/webhooks/%s", resourceGroup, registry, spec.Name),
		Actions: spec.Actions,
		Status:  spec.Status(),
		Scope:   spec.Scope,
	}, nil
}

// GetWebhook mocks webhook lookup.
func (m *MockClient) GetWebhook(ctx context.Context, resourceGroup, registry, name string) (*Webhook, error) {
	if m.GetWebhookFunc != nil {
		return m.GetWebhookFunc(ctx, resourceGroup, registry, name)
	}
	return &Webhook{Name: name, Status: StatusEnabled}, nil
}

// PingWebhook mocks a webhook ping.
func (m *MockClient) PingWebhook(ctx context.Context, resourceGroup, registry, name string) (string, error) {
	if m.PingWebhookFunc != nil {
		return m.PingWebhookFunc(ctx, resourceGroup, registry, name)
	}
	return "mock-event-id", nil
}

// ListEvents mocks webhook event listing.
func (m *MockClient) ListEvents(ctx context.Context, resourceGroup, registry, name string) ([]WebhookEvent, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc(ctx, resourceGroup, registry, name)
	}
	return nil, nil
}
