package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/engine"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
	"github.com/imamik/acrwebhooks/internal/platform/s3"
	"github.com/imamik/acrwebhooks/internal/provisioning"
	"github.com/imamik/acrwebhooks/internal/report"
	testutil "github.com/imamik/acrwebhooks/internal/testing"
)

type handlerEnv struct {
	cfg      *config.Config
	fixture  *testutil.CloudFixture
	provider *testutil.StaticProvider
	output   *bytes.Buffer
	hook     *test.Hook
}

// setupHandlerEnv replaces every factory and restores them when the test ends.
func setupHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	origLoadConfig := loadConfig
	origLoadCredentials := loadCredentials
	origLoadTimeouts := loadTimeouts
	origCloud := newCloudClient
	origEngines := newEngineProvider
	origStore := newObjectStore
	origLogger := newLogger
	origOutput := summaryOutput
	origDestroy := newDestroyProvisioner
	t.Cleanup(func() {
		loadConfig = origLoadConfig
		loadCredentials = origLoadCredentials
		loadTimeouts = origLoadTimeouts
		newCloudClient = origCloud
		newEngineProvider = origEngines
		newObjectStore = origStore
		newLogger = origLogger
		summaryOutput = origOutput
		newDestroyProvisioner = origDestroy
	})

	logger, hook := test.NewNullLogger()
	env := &handlerEnv{
		cfg:      testutil.NewConfigBuilder().WithSkipVerify(true).Build(),
		fixture:  testutil.NewCloudFixture(),
		provider: testutil.NewStaticProvider(&docker.MockEngine{}),
		output:   &bytes.Buffer{},
		hook:     hook,
	}

	loadConfig = func(string) (*config.Config, error) { return env.cfg, nil }
	loadCredentials = func() (*config.Credentials, error) {
		return &config.Credentials{TenantID: "t", ClientID: "c", ClientSecret: "s", SubscriptionID: "sub"}, nil
	}
	loadTimeouts = config.TestTimeouts
	newCloudClient = func(*config.Credentials, *config.Timeouts) (azure.CloudManager, error) {
		return env.fixture.Mock(), nil
	}
	newEngineProvider = func(*config.Config, string, *config.Timeouts, logrus.FieldLogger) engine.Provider {
		return env.provider
	}
	newObjectStore = func(context.Context, config.ReportConfig, config.ReportKeys) (s3.ObjectStore, error) {
		return nil, errors.New("object store not expected")
	}
	newLogger = func(config.LogConfig) logrus.FieldLogger { return logger }
	summaryOutput = env.output
	return env
}

func TestRun_Success(t *testing.T) {
	env := setupHandlerEnv(t)

	require.NoError(t, Run(context.Background(), RunOptions{}))

	assert.Equal(t, 1, env.fixture.CallCount("DeleteResourceGroup"))
	assert.Equal(t, 1, env.provider.Released())
	assert.Contains(t, env.output.String(), "Run succeeded")
	assert.Contains(t, env.output.String(), "/samples/sample-hello:latest")
}

func TestRun_WorkflowErrorIsLogged(t *testing.T) {
	env := setupHandlerEnv(t)
	env.fixture.WithRegistryError(errors.New("registry quota reached"))

	require.NoError(t, Run(context.Background(), RunOptions{}))

	assert.Equal(t, 1, env.fixture.CallCount("DeleteResourceGroup"))
	assert.Contains(t, env.output.String(), "Run failed")

	var logged error
	for _, e := range env.hook.AllEntries() {
		if e.Level == logrus.ErrorLevel && e.Message == "Registry webhook sample failed" {
			logged, _ = e.Data[logrus.ErrorKey].(error)
		}
	}
	require.Error(t, logged)
	assert.Contains(t, logged.Error(), "registry quota reached")
}

func TestRun_MissingCredentials(t *testing.T) {
	env := setupHandlerEnv(t)
	loadCredentials = func() (*config.Credentials, error) {
		return nil, config.ErrMissingCredentials
	}
	cloudCreated := false
	newCloudClient = func(*config.Credentials, *config.Timeouts) (azure.CloudManager, error) {
		cloudCreated = true
		return env.fixture.Mock(), nil
	}

	err := Run(context.Background(), RunOptions{})

	require.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.False(t, cloudCreated)
	assert.Empty(t, env.fixture.CallOrder())
}

func TestRun_CloudClientError(t *testing.T) {
	setupHandlerEnv(t)
	newCloudClient = func(*config.Credentials, *config.Timeouts) (azure.CloudManager, error) {
		return nil, errors.New("bad tenant")
	}

	err := Run(context.Background(), RunOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create Azure client")
}

func TestRun_ConfigError(t *testing.T) {
	setupHandlerEnv(t)
	loadConfig = func(string) (*config.Config, error) { return nil, errors.New("failed to read config file") }

	require.Error(t, Run(context.Background(), RunOptions{ConfigPath: "missing.yaml"}))
}

func TestRun_OptionsOverrideConfig(t *testing.T) {
	env := setupHandlerEnv(t)

	require.NoError(t, Run(context.Background(), RunOptions{Location: "westeurope", SKU: config.SKUPremium, Keep: true}))

	require.Len(t, env.fixture.RegistrySpecs, 1)
	assert.Equal(t, config.SKUPremium, env.fixture.RegistrySpecs[0].SKU)
	assert.Equal(t, "westeurope", env.fixture.RegistrySpecs[0].Location)
	assert.Zero(t, env.fixture.CallCount("DeleteResourceGroup"))
	assert.Contains(t, env.output.String(), "acrwebhooks cleanup --resource-group")
}

func TestRun_InvalidSKU(t *testing.T) {
	env := setupHandlerEnv(t)

	err := Run(context.Background(), RunOptions{SKU: "Gold"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid registry sku")
	assert.Empty(t, env.fixture.CallOrder())
}

func TestRun_PublishesReportAndMetrics(t *testing.T) {
	env := setupHandlerEnv(t)

	var (
		mu       sync.Mutex
		pushPath string
	)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		mu.Lock()
		pushPath = r.URL.Path
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(gateway.Close)

	env.cfg.Report = config.ReportConfig{Bucket: "reports", Endpoint: "http://minio:9000", Region: "us-east-1", Prefix: "acrwebhooks"}
	env.cfg.Metrics = config.MetricsConfig{PushgatewayURL: gateway.URL, Job: "acrwebhooks"}

	var uploadedKey string
	var uploaded []byte
	newObjectStore = func(context.Context, config.ReportConfig, config.ReportKeys) (s3.ObjectStore, error) {
		return &s3.MockStore{
			PutJSONFunc: func(_ context.Context, _, key string, data []byte) error {
				uploadedKey = key
				uploaded = data
				return nil
			},
		}, nil
	}

	require.NoError(t, Run(context.Background(), RunOptions{}))

	assert.True(t, strings.HasPrefix(uploadedKey, "acrwebhooks/runs/"))
	assert.Contains(t, string(uploaded), `"runId"`)
	mu.Lock()
	defer mu.Unlock()
	assert.True(t, strings.HasPrefix(pushPath, "/metrics/job/acrwebhooks/run_id/"))
}

func TestRun_PublishFailuresOnlyWarn(t *testing.T) {
	env := setupHandlerEnv(t)
	env.cfg.Report = config.ReportConfig{Bucket: "reports", Endpoint: "http://minio:9000", Region: "us-east-1", Prefix: "acrwebhooks"}

	require.NoError(t, Run(context.Background(), RunOptions{}))

	var warned bool
	for _, e := range env.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "Report upload failed" {
			warned = true
		}
	}
	assert.True(t, warned)
}

type destroyMock struct {
	state *provisioning.State
	err   error
}

func (m *destroyMock) Provision(ctx *provisioning.Context) error {
	m.state = ctx.State
	return m.err
}

func TestCleanup(t *testing.T) {
	env := setupHandlerEnv(t)

	require.NoError(t, Cleanup(context.Background(), "acrw-rg-leftover"))

	assert.Equal(t, []string{"acrw-rg-leftover"}, env.fixture.DeletedGroups)
}

func TestCleanup_RecordsGroupID(t *testing.T) {
	setupHandlerEnv(t)
	mock := &destroyMock{}
	newDestroyProvisioner = func() Provisioner { return mock }

	require.NoError(t, Cleanup(context.Background(), "acrw-rg-leftover"))

	require.NotNil(t, mock.state)
	assert.Equal(t, "/subscriptions/sub/resourceGroups/acrw-rg-leftover", mock.state.ResourceGroup.ID)
}

func TestCleanup_Errors(t *testing.T) {
	env := setupHandlerEnv(t)

	require.Error(t, Cleanup(context.Background(), ""))

	env.fixture.WithDeleteError(errors.New("locked"))
	err := Cleanup(context.Background(), "acrw-rg-leftover")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup failed")
}

func TestApplyRunOptions(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, applyRunOptions(cfg, RunOptions{Location: "northeurope", SKU: config.SKUStandard, Keep: true}))

	assert.Equal(t, "northeurope", cfg.Location)
	assert.Equal(t, config.SKUStandard, cfg.Registry.SKU)
	assert.True(t, cfg.KeepResources)
}

func TestDefaultEngineProvider(t *testing.T) {
	logger, _ := test.NewNullLogger()
	t.Setenv(config.EnvHCloudToken, "")

	provider := defaultEngineProvider(config.Default(), "run-1", config.TestTimeouts(), logger)

	assert.IsType(t, &engine.Acquirer{}, provider)
}

func TestRenderRunSummary(t *testing.T) {
	r := &report.Report{
		RunID:         "run-1",
		ResourceGroup: "acrw-rg-x",
		Location:      "eastus",
		LoginServer:   "acrwx.azurecr.io",
		Webhooks:      []report.Webhook{{Name: "webhookbing1", Actions: []string{"push", "delete"}, Status: "enabled"}},
		Image:         "acrwx.azurecr.io/samples/sample-hello:latest",
		EventsBefore:  []report.Event{{ID: "e1"}},
		EventsAfter:   []report.Event{{ID: "e1"}, {ID: "e2"}},
		Phases: []report.Phase{
			{Name: "resource-group", DurationMS: 1200},
			{Name: "image", DurationMS: 300, Error: "push failed"},
		},
		StartedAt: time.Now(),
		Error:     "image phase failed: push failed",
	}

	out := renderRunSummary(r)

	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "webhookbing1 [push,delete] enabled")
	assert.Contains(t, out, "Before push:")
	assert.Contains(t, out, "resource-group")
	assert.Contains(t, out, "1.2s")
	assert.Contains(t, out, "Run failed: image phase failed: push failed")
	assert.Contains(t, out, "Digest:          -")
}
