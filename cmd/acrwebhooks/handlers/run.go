package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/imamik/acrwebhooks/internal/config"
	"github.com/imamik/acrwebhooks/internal/metrics"
	"github.com/imamik/acrwebhooks/internal/orchestration"
	"github.com/imamik/acrwebhooks/internal/provisioning"
	"github.com/imamik/acrwebhooks/internal/report"
	"github.com/imamik/acrwebhooks/internal/util/naming"
)

// RunOptions are the flags of the run command.
type RunOptions struct {
	ConfigPath string
	Location   string
	SKU        string
	Keep       bool
}

// Run handles the run command.
//
// It loads configuration and credentials, runs the workflow, and then
// prints a summary. Report upload and metrics push are best effort.
// Configuration and credential errors are returned. A workflow failure is
// logged after cleanup and the run still ends normally.
func Run(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := applyRunOptions(cfg, opts); err != nil {
		return err
	}

	log := newLogger(cfg.Log)

	creds, err := loadCredentials()
	if err != nil {
		return err
	}
	timeouts := loadTimeouts()

	cloud, err := newCloudClient(creds, timeouts)
	if err != nil {
		return fmt.Errorf("failed to create Azure client: %w", err)
	}

	runID := naming.RunID()
	log = log.WithField("run", runID)
	names := provisioning.GenerateNames(cfg)
	state := provisioning.NewState(runID, names)

	pCtx := provisioning.NewContext(ctx, cfg, state, cloud,
		newEngineProvider(cfg, runID, timeouts, log),
		provisioning.NewLogrusObserver(log))
	pCtx.Timeouts = timeouts
	pCtx.Metrics = metrics.NewRecorder()

	log.WithFields(logrus.Fields{
		"resourceGroup": names.ResourceGroup,
		"registry":      names.Registry,
		"location":      cfg.Location,
	}).Info("Starting registry webhook sample")

	startedAt := time.Now()
	runErr := orchestration.NewWorkflow(pCtx).Run()
	finishedAt := time.Now()

	r := report.New(state, cfg.Location, cfg.KeepResources && state.ResourceGroupCreated(), startedAt, finishedAt, runErr)
	fmt.Fprint(summaryOutput, renderRunSummary(r))

	publish(ctx, cfg, pCtx.Metrics, r, log)

	if runErr != nil {
		log.WithError(runErr).Error("Registry webhook sample failed")
	}
	return nil
}

func applyRunOptions(cfg *config.Config, opts RunOptions) error {
	if opts.Location != "" {
		cfg.Location = opts.Location
	}
	if opts.SKU != "" {
		cfg.Registry.SKU = opts.SKU
	}
	if opts.Keep {
		cfg.KeepResources = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// publish uploads the report and pushes metrics when configured. Failures
// only produce warnings.
func publish(ctx context.Context, cfg *config.Config, recorder *metrics.Recorder, r *report.Report, log logrus.FieldLogger) {
	// The run context may already be cancelled.
	ctx = context.WithoutCancel(ctx)

	if cfg.Report.Enabled() {
		key := naming.ReportObject(cfg.Report.Prefix, r.RunID)
		if err := uploadReport(ctx, cfg.Report, key, r); err != nil {
			log.WithError(err).Warn("Report upload failed")
		} else {
			log.Infof("Report uploaded to s3://%s/%s", cfg.Report.Bucket, key)
		}
	}

	if cfg.Metrics.Enabled() {
		if err := recorder.Push(ctx, cfg.Metrics.PushgatewayURL, cfg.Metrics.Job, r.RunID); err != nil {
			log.WithError(err).Warn("Metrics push failed")
		}
	}
}

func uploadReport(ctx context.Context, cfg config.ReportConfig, key string, r *report.Report) error {
	store, err := newObjectStore(ctx, cfg, config.LoadReportKeys())
	if err != nil {
		return err
	}
	return report.Upload(ctx, store, cfg.Bucket, key, r)
}
