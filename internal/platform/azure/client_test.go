package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSpec() WebhookSpec {
	return WebhookSpec{
		Name:       "webhookbing1",
		Location:   "eastus",
		Actions:    []WebhookAction{ActionPush, ActionDelete},
		ServiceURI: "https://www.bing.com",
		Enabled:    true,
	}
}

func TestWebhookSpec_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*WebhookSpec)
		wantErr string
	}{
		{name: "valid", mutate: func(*WebhookSpec) {}},
		{name: "push only", mutate: func(s *WebhookSpec) { s.Actions = []WebhookAction{ActionPush} }},
		{name: "missing name", mutate: func(s *WebhookSpec) { s.Name = "" }, wantErr: "name is required"},
		{name: "no actions", mutate: func(s *WebhookSpec) { s.Actions = nil }, wantErr: "at least one action"},
		{name: "unknown action", mutate: func(s *WebhookSpec) { s.Actions = []WebhookAction{"quarantine"} }, wantErr: "unsupported action"},
		{name: "duplicate action", mutate: func(s *WebhookSpec) { s.Actions = []WebhookAction{ActionPush, ActionPush} }, wantErr: "duplicate action"},
		{name: "relative uri", mutate: func(s *WebhookSpec) { s.ServiceURI = "/hook" }, wantErr: "absolute http(s)"},
		{name: "ftp uri", mutate: func(s *WebhookSpec) { s.ServiceURI = "ftp://example.com" }, wantErr: "absolute http(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := validSpec()
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestWebhookSpec_Status(t *testing.T) {
	t.Parallel()

	spec := validSpec()
	assert.Equal(t, StatusEnabled, spec.Status())

	spec.Enabled = false
	assert.Equal(t, StatusDisabled, spec.Status())
}

func TestWebhook_HasActions(t *testing.T) {
	t.Parallel()

	w := &Webhook{Actions: []WebhookAction{ActionDelete, ActionPush}}
	assert.True(t, w.HasActions(ActionPush, ActionDelete))
	assert.False(t, w.HasActions(ActionPush))

	pushOnly := &Webhook{Actions: []WebhookAction{ActionPush}}
	assert.True(t, pushOnly.HasActions(ActionPush))
	assert.False(t, pushOnly.HasActions(ActionDelete))
}
