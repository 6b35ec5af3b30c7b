package handlers

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/engine"
	"github.com/imamik/acrwebhooks/internal/logging"
	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/hcloud"
	"github.com/imamik/acrwebhooks/internal/platform/s3"
)

// Factory function variables - can be replaced in tests.
var (
	loadConfig      = config.Load
	loadCredentials = config.LoadCredentials
	loadTimeouts    = config.LoadTimeouts

	newCloudClient = func(creds *config.Credentials, timeouts *config.Timeouts) (azure.CloudManager, error) {
		return azure.NewRealClient(creds, azure.WithTimeouts(timeouts))
	}

	newEngineProvider = defaultEngineProvider

	newObjectStore = func(ctx context.Context, cfg config.ReportConfig, keys config.ReportKeys) (s3.ObjectStore, error) {
		return s3.NewClient(ctx, cfg.Endpoint, cfg.Region, keys.AccessKey, keys.SecretKey)
	}

	newLogger = func(cfg config.LogConfig) logrus.FieldLogger {
		return logging.NewLogger(logging.LogLevel(cfg.Level), logging.Format(cfg.Format))
	}

	summaryOutput io.Writer = os.Stdout
)

// defaultEngineProvider tries the local engine first and falls back to a
// Hetzner Cloud host when a token is available.
func defaultEngineProvider(cfg *config.Config, runID string, timeouts *config.Timeouts, log logrus.FieldLogger) engine.Provider {
	strategies := []engine.Strategy{engine.NewLocalStrategy()}

	token := os.Getenv(config.EnvHCloudToken)
	switch {
	case cfg.Engine.DisableRemote:
		log.Debug("Remote engine fallback disabled by configuration")
	case token == "":
		log.Debugf("%s not set, remote engine fallback unavailable", config.EnvHCloudToken)
	default:
		hosts := hcloud.NewRealClient(token, hcloud.WithTimeouts(timeouts))
		strategies = append(strategies, engine.NewRemoteStrategy(hosts, cfg.Engine, cfg.Prefix, runID, timeouts, log))
	}

	return engine.NewAcquirer(log, strategies...)
}
