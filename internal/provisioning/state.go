package provisioning

import (
	"time"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
	"github.com/imamik/acrwebhooks/internal/util/naming"
)

// Names are the generated resource names of one run.
type Names struct {
	ResourceGroup string
	Registry      string
	Webhooks      [2]string
}

// GenerateNames derives fresh resource names from the configured prefixes.
func GenerateNames(cfg *config.Config) Names {
	suffix := naming.Suffix()
	return Names{
		ResourceGroup: naming.ResourceGroup(cfg.Prefix, suffix),
		Registry:      naming.Registry(cfg.Prefix, suffix),
		Webhooks: [2]string{
			naming.Webhook(cfg.Webhook.NamePrefix, 1),
			naming.Webhook(cfg.Webhook.NamePrefix, 2),
		},
	}
}

// PhaseTiming records how a phase went.
type PhaseTiming struct {
	Name     string
	Duration time.Duration
	Err      string
}

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	RunID string
	Names Names

	// ResourceGroup.ID is set only once creation succeeded; cleanup keys off it.
	ResourceGroup azure.ResourceGroup
	Registry      azure.Registry
	Webhooks      []*azure.Webhook
	Credentials   *azure.RegistryCredentials

	PingEventID      string
	EventsBeforePush []azure.WebhookEvent
	EventsAfterPush  []azure.WebhookEvent

	EngineSource string
	PushedImage  docker.ImageRef
	PushedDigest string

	Timings []PhaseTiming
}

// NewState creates an empty provisioning state for the given names.
func NewState(runID string, names Names) *State {
	return &State{
		RunID:         runID,
		Names:         names,
		ResourceGroup: azure.ResourceGroup{Name: names.ResourceGroup},
	}
}

// ResourceGroupCreated reports whether the resource group exists and must be cleaned up.
func (s *State) ResourceGroupCreated() bool {
	return s.ResourceGroup.ID != ""
}

// PrimaryWebhook returns webhook #1, or nil before it was created.
func (s *State) PrimaryWebhook() *azure.Webhook {
	if len(s.Webhooks) == 0 {
		return nil
	}
	return s.Webhooks[0]
}
