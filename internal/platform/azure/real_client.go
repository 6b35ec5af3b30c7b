package azure

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/arm"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/containerregistry/armcontainerregistry"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"

	"github.com/imamik/acrwebhooks/internal/config"
)

// minPollFrequency is the smallest interval the SDK poller accepts.
const minPollFrequency = time.Second

// RealClient implements CloudManager using Azure Resource Manager.
type RealClient struct {
	groups     *armresources.ResourceGroupsClient
	registries *armcontainerregistry.RegistriesClient
	webhooks   *armcontainerregistry.WebhooksClient
	timeouts   *config.Timeouts

	credential    azcore.TokenCredential
	clientOptions *arm.ClientOptions
}

// Ensure interface compliance
var _ CloudManager = (*RealClient)(nil)

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithTokenCredential replaces the service-principal credential.
func WithTokenCredential(cred azcore.TokenCredential) ClientOption {
	return func(c *RealClient) {
		c.credential = cred
	}
}

// WithARMClientOptions sets pipeline options (cloud endpoints, transport).
func WithARMClientOptions(opts *arm.ClientOptions) ClientOption {
	return func(c *RealClient) {
		c.clientOptions = opts
	}
}

// NewRealClient authenticates as the given service principal and builds the
// resource group, registry, and webhook clients for its subscription.
func NewRealClient(creds *config.Credentials, opts ...ClientOption) (*RealClient, error) {
	c := &RealClient{timeouts: config.LoadTimeouts()}
	for _, opt := range opts {
		opt(c)
	}

	if c.credential == nil {
		cred, err := azidentity.NewClientSecretCredential(creds.TenantID, creds.ClientID, creds.ClientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create service principal credential: %w", err)
		}
		c.credential = cred
	}

	var err error
	c.groups, err = armresources.NewResourceGroupsClient(creds.SubscriptionID, c.credential, c.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource groups client: %w", err)
	}
	c.registries, err = armcontainerregistry.NewRegistriesClient(creds.SubscriptionID, c.credential, c.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create registries client: %w", err)
	}
	c.webhooks, err = armcontainerregistry.NewWebhooksClient(creds.SubscriptionID, c.credential, c.clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create webhooks client: %w", err)
	}

	return c, nil
}

func (c *RealClient) pollOptions() *runtime.PollUntilDoneOptions {
	freq := c.timeouts.AzurePollFrequency
	if freq < minPollFrequency {
		freq = minPollFrequency
	}
	return &runtime.PollUntilDoneOptions{Frequency: freq}
}

// createContext bounds the wait for a create operation.
func (c *RealClient) createContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.timeouts.AzureCreate)
}
