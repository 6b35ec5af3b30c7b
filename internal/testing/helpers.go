package testing

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/engine"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
	"github.com/imamik/acrwebhooks/internal/provisioning"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// TestNames returns fixed resource names.
func TestNames() provisioning.Names {
	return provisioning.Names{
		ResourceGroup: "acrw-rg-test",
		Registry:      "acrwtest",
		Webhooks:      [2]string{"webhookbing1", "webhookbing2"},
	}
}

// NewProvisioningContext builds a phase context writing logs to a test hook.
func NewProvisioningContext(t *testing.T, cfg *config.Config, cloud azure.CloudManager, engines engine.Provider) (*provisioning.Context, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	observer := provisioning.NewLogrusObserver(logger)
	pctx := provisioning.NewContext(TestContext(t), cfg, provisioning.NewState("run-test", TestNames()), cloud, engines, observer)
	pctx.Verifier = &docker.MockVerifier{}
	pctx.Timeouts = config.TestTimeouts()
	return pctx, hook
}

// EntriesAt returns the messages logged at level.
func EntriesAt(hook *test.Hook, level logrus.Level) []string {
	var out []string
	for _, e := range hook.AllEntries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
