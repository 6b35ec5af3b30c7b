package testing

import (
	"context"
	"fmt"
	"sync"

	"github.com/imamik/acrwebhooks/internal/platform/azure"
)

// CloudFixture wraps an azure.MockClient that records the calls a workflow makes.
// Each ListEvents call returns one more event than the previous one, the way
// a registry accumulates deliveries after a ping and a push.
type CloudFixture struct {
	mu sync.Mutex

	Calls          []string
	DeletedGroups  []string
	WebhookSpecs   []azure.WebhookSpec
	RegistrySpecs  []azure.RegistrySpec
	eventListCalls int

	mock *azure.MockClient
}

// NewCloudFixture creates a fixture whose mock succeeds on every call.
func NewCloudFixture() *CloudFixture {
	f := &CloudFixture{}
	f.mock = &azure.MockClient{
		CreateResourceGroupFunc: func(_ context.Context, name, location string, _ map[string]string) (*azure.ResourceGroup, error) {
			f.record("CreateResourceGroup")
			return &azure.ResourceGroup{Name: name, ID: "/subscriptions/test/resourceGroups/" + name, Location: location}, nil
		},
		DeleteResourceGroupFunc: func(_ context.Context, name string) error {
			f.record("DeleteResourceGroup")
			f.mu.Lock()
			f.DeletedGroups = append(f.DeletedGroups, name)
			f.mu.Unlock()
			return nil
		},
		CreateRegistryFunc: func(_ context.Context, _ string, spec azure.RegistrySpec) (*azure.Registry, error) {
			f.record("CreateRegistry")
			f.mu.Lock()
			f.RegistrySpecs = append(f.RegistrySpecs, spec)
			f.mu.Unlock()
			return &azure.Registry{
				Name:             spec.Name,
				ID:               "/registries/" + spec.Name,
				LoginServer:      spec.Name + ".azurecr.io",
				SKU:              spec.SKU,
				AdminUserEnabled: spec.AdminUserEnabled,
				Tags:             spec.Tags,
			}, nil
		},
		ListCredentialsFunc: func(_ context.Context, _, registry string) (*azure.RegistryCredentials, error) {
			f.record("ListCredentials")
			return &azure.RegistryCredentials{Username: registry, Password: "secret", Server: registry + ".azurecr.io"}, nil
		},
		CreateWebhookFunc: func(_ context.Context, _, _ string, spec azure.WebhookSpec) (*azure.Webhook, error) {
			f.record("CreateWebhook")
			if err := spec.Validate(); err != nil {
				return nil, err
			}
			f.mu.Lock()
			f.WebhookSpecs = append(f.WebhookSpecs, spec)
			f.mu.Unlock()
			return &azure.Webhook{
				Name:    spec.Name,
				ID:      "/webhooks/" + spec.Name,
				Actions: spec.Actions,
				Status:  spec.Status(),
				Scope:   spec.Scope,
			}, nil
		},
		GetWebhookFunc: func(_ context.Context, _, _, name string) (*azure.Webhook, error) {
			f.record("GetWebhook")
			return &azure.Webhook{Name: name, Status: azure.StatusEnabled}, nil
		},
		PingWebhookFunc: func(_ context.Context, _, _, _ string) (string, error) {
			f.record("PingWebhook")
			return "ping-1", nil
		},
		ListEventsFunc: func(_ context.Context, _, _, _ string) ([]azure.WebhookEvent, error) {
			f.record("ListEvents")
			f.mu.Lock()
			f.eventListCalls++
			n := f.eventListCalls
			f.mu.Unlock()
			events := make([]azure.WebhookEvent, 0, n)
			for i := range n {
				events = append(events, azure.WebhookEvent{
					ID:         fmt.Sprintf("event-%d", i+1),
					Action:     "push",
					StatusCode: "200",
					Content:    "ok",
				})
			}
			return events, nil
		},
	}
	return f
}

// Mock returns the underlying mock for further customization.
func (f *CloudFixture) Mock() *azure.MockClient {
	return f.mock
}

// WithResourceGroupError makes resource group creation fail.
func (f *CloudFixture) WithResourceGroupError(err error) *CloudFixture {
	f.mock.CreateResourceGroupFunc = func(context.Context, string, string, map[string]string) (*azure.ResourceGroup, error) {
		f.record("CreateResourceGroup")
		return nil, err
	}
	return f
}

// WithRegistryError makes registry creation fail.
func (f *CloudFixture) WithRegistryError(err error) *CloudFixture {
	f.mock.CreateRegistryFunc = func(context.Context, string, azure.RegistrySpec) (*azure.Registry, error) {
		f.record("CreateRegistry")
		return nil, err
	}
	return f
}

// WithDeleteError makes resource group deletion fail.
func (f *CloudFixture) WithDeleteError(err error) *CloudFixture {
	f.mock.DeleteResourceGroupFunc = func(context.Context, string) error {
		f.record("DeleteResourceGroup")
		return err
	}
	return f
}

// CallCount returns how often the named method was called.
func (f *CloudFixture) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Calls {
		if c == method {
			n++
		}
	}
	return n
}

// CallOrder returns a copy of the recorded call sequence.
func (f *CloudFixture) CallOrder() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *CloudFixture) record(method string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, method)
	f.mu.Unlock()
}
