package report

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
	"github.com/imamik/acrwebhooks/internal/platform/s3"
	"github.com/imamik/acrwebhooks/internal/provisioning"
)

func sampleState() *provisioning.State {
	state := provisioning.NewState("run-1", provisioning.Names{ResourceGroup: "acrw-rg-x", Registry: "acrwx"})
	state.ResourceGroup.ID = "/subscriptions/s/resourceGroups/acrw-rg-x"
	state.Registry = azure.Registry{Name: "acrwx", LoginServer: "acrwx.azurecr.io"}
	state.Webhooks = []*azure.Webhook{
		{Name: "webhookbing1", Actions: []azure.WebhookAction{azure.ActionPush, azure.ActionDelete}, Status: azure.StatusEnabled},
		{Name: "webhookbing2", Actions: []azure.WebhookAction{azure.ActionPush}, Status: azure.StatusDisabled},
	}
	state.EventsBeforePush = []azure.WebhookEvent{{ID: "e1", Action: "ping"}}
	state.EventsAfterPush = []azure.WebhookEvent{{ID: "e1", Action: "ping"}, {ID: "e2", Action: "push", Repository: "samples/sample-hello", Tag: "latest", StatusCode: "200", Content: `{"ok":true}`}}
	state.PushedImage = docker.ImageRef{Repository: "acrwx.azurecr.io/samples/sample-hello", Tag: "latest"}
	state.PushedDigest = "sha256:abc"
	state.EngineSource = "local"
	state.Timings = []provisioning.PhaseTiming{
		{Name: "resource-group", Duration: 1500 * time.Millisecond},
		{Name: "image", Duration: time.Second, Err: "push failed"},
	}
	return state
}

func TestNew(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	r := New(sampleState(), "eastus", false, start, start.Add(time.Minute), nil)

	assert.Equal(t, "run-1", r.RunID)
	assert.Equal(t, "acrw-rg-x", r.ResourceGroup)
	assert.Equal(t, "acrwx.azurecr.io", r.LoginServer)
	assert.Equal(t, "acrwx.azurecr.io/samples/sample-hello:latest", r.Image)
	assert.Equal(t, "sha256:abc", r.Digest)
	require.Len(t, r.Webhooks, 2)
	assert.Equal(t, []string{"push", "delete"}, r.Webhooks[0].Actions)
	assert.Equal(t, "disabled", r.Webhooks[1].Status)
	assert.Len(t, r.EventsBefore, 1)
	require.Len(t, r.EventsAfter, 2)
	assert.Equal(t, "200", r.EventsAfter[1].StatusCode)
	assert.Equal(t, `{"ok":true}`, r.EventsAfter[1].Content)
	assert.Empty(t, r.EventsAfter[0].Content)
	require.Len(t, r.Phases, 2)
	assert.Equal(t, int64(1500), r.Phases[0].DurationMS)
	assert.Equal(t, "push failed", r.Phases[1].Error)
	assert.True(t, r.Succeeded())
}

func TestNew_WithError(t *testing.T) {
	t.Parallel()
	state := provisioning.NewState("run-2", provisioning.Names{ResourceGroup: "rg"})

	r := New(state, "eastus", true, time.Now(), time.Now(), errors.New("registry phase failed"))

	assert.False(t, r.Succeeded())
	assert.Equal(t, "registry phase failed", r.Error)
	assert.Empty(t, r.Image)
	assert.NotNil(t, r.EventsBefore)
	assert.True(t, r.Retained)
}

func TestJSON(t *testing.T) {
	t.Parallel()
	r := New(sampleState(), "eastus", false, time.Now(), time.Now(), nil)

	data, err := r.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-1", decoded["runId"])
	assert.Equal(t, "sha256:abc", decoded["digest"])
	assert.NotContains(t, decoded, "error")
}

func TestUpload(t *testing.T) {
	t.Parallel()
	var (
		ensured string
		key     string
		body    []byte
	)
	store := &s3.MockStore{
		EnsureBucketFunc: func(_ context.Context, bucket string) error {
			ensured = bucket
			return nil
		},
		PutJSONFunc: func(_ context.Context, _, k string, data []byte) error {
			key = k
			body = data
			return nil
		},
	}
	r := New(sampleState(), "eastus", false, time.Now(), time.Now(), nil)

	require.NoError(t, Upload(context.Background(), store, "reports", "acrwebhooks/runs/run-1.json", r))

	assert.Equal(t, "reports", ensured)
	assert.Equal(t, "acrwebhooks/runs/run-1.json", key)
	assert.Contains(t, string(body), `"runId": "run-1"`)
}

func TestUpload_Errors(t *testing.T) {
	t.Parallel()
	r := New(sampleState(), "eastus", false, time.Now(), time.Now(), nil)

	err := Upload(context.Background(), &s3.MockStore{
		EnsureBucketFunc: func(context.Context, string) error { return errors.New("access denied") },
	}, "reports", "k", r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to prepare report bucket")

	err = Upload(context.Background(), &s3.MockStore{
		PutJSONFunc: func(context.Context, string, string, []byte) error { return errors.New("slow down") },
	}, "reports", "k", r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upload report")
}
