package provisioning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
)

func TestGenerateNames(t *testing.T) {
	t.Parallel()
	cfg := config.Default()

	names := GenerateNames(cfg)

	assert.Regexp(t, `^acrw-rg-[a-z0-9]{8}$`, names.ResourceGroup)
	assert.Regexp(t, `^acrw[a-z0-9]{8}$`, names.Registry)
	assert.Equal(t, [2]string{"webhookbing1", "webhookbing2"}, names.Webhooks)
	assert.NotEqual(t, names.ResourceGroup, GenerateNames(cfg).ResourceGroup)
}

func TestNewState(t *testing.T) {
	t.Parallel()
	state := NewState("run-1", Names{ResourceGroup: "rg"})

	assert.Equal(t, "run-1", state.RunID)
	assert.Equal(t, "rg", state.ResourceGroup.Name)
	assert.False(t, state.ResourceGroupCreated())
	assert.Nil(t, state.PrimaryWebhook())

	state.ResourceGroup.ID = "/subscriptions/s/resourceGroups/rg"
	state.Webhooks = []*azure.Webhook{{Name: "webhookbing1"}, {Name: "webhookbing2"}}

	assert.True(t, state.ResourceGroupCreated())
	assert.Equal(t, "webhookbing1", state.PrimaryWebhook().Name)
}

func TestNewContext(t *testing.T) {
	t.Parallel()
	cfg := config.Default()
	cloud := &azure.MockClient{}
	observer := NewMockObserver()
	state := NewState("run-1", Names{})

	ctx := NewContext(context.Background(), cfg, state, cloud, nil, observer)

	require.NotNil(t, ctx)
	assert.Equal(t, cfg, ctx.Config)
	assert.Equal(t, cloud, ctx.Cloud)
	assert.Same(t, state, ctx.State)
	assert.NotNil(t, ctx.Verifier)
	assert.NotNil(t, ctx.Timeouts)
	assert.Nil(t, ctx.Metrics)

	detached := ctx.WithContext(context.WithoutCancel(ctx))
	assert.Same(t, state, detached.State)
	assert.NotSame(t, ctx, detached)
}
