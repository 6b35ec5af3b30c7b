// Package report summarizes a workflow run and uploads the summary to object storage.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/imamik/acrwebhooks/internal/platform/azure"
	"github.com/imamik/acrwebhooks/internal/platform/s3"
	"github.com/imamik/acrwebhooks/internal/provisioning"
)

// Phase is the outcome of one phase.
type Phase struct {
	Name       string `json:"name"`
	DurationMS int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

// Event is a webhook delivery in report form.
type Event struct {
	ID         string `json:"id"`
	Action     string `json:"action,omitempty"`
	Repository string `json:"repository,omitempty"`
	Tag        string `json:"tag,omitempty"`
	StatusCode string `json:"statusCode,omitempty"`
	Content    string `json:"content,omitempty"`
}

// Webhook is a created webhook in report form.
type Webhook struct {
	Name    string   `json:"name"`
	Actions []string `json:"actions"`
	Status  string   `json:"status"`
}

// Report is the persisted summary of a run.
type Report struct {
	RunID         string    `json:"runId"`
	StartedAt     time.Time `json:"startedAt"`
	FinishedAt    time.Time `json:"finishedAt"`
	Location      string    `json:"location"`
	ResourceGroup string    `json:"resourceGroup"`
	Registry      string    `json:"registry"`
	LoginServer   string    `json:"loginServer,omitempty"`
	Webhooks      []Webhook `json:"webhooks,omitempty"`
	EngineSource  string    `json:"engineSource,omitempty"`
	Image         string    `json:"image,omitempty"`
	Digest        string    `json:"digest,omitempty"`
	EventsBefore  []Event   `json:"eventsBefore"`
	EventsAfter   []Event   `json:"eventsAfter"`
	Phases        []Phase   `json:"phases"`
	Retained      bool      `json:"retained"`
	Error         string    `json:"error,omitempty"`
}

// Succeeded reports whether the run finished without error.
func (r *Report) Succeeded() bool {
	return r.Error == ""
}

// New builds a report from the final state of a run.
func New(state *provisioning.State, location string, retained bool, startedAt, finishedAt time.Time, runErr error) *Report {
	r := &Report{
		RunID:         state.RunID,
		StartedAt:     startedAt.UTC(),
		FinishedAt:    finishedAt.UTC(),
		Location:      location,
		ResourceGroup: state.ResourceGroup.Name,
		Registry:      state.Names.Registry,
		LoginServer:   state.Registry.LoginServer,
		EngineSource:  state.EngineSource,
		Digest:        state.PushedDigest,
		EventsBefore:  toEvents(state.EventsBeforePush),
		EventsAfter:   toEvents(state.EventsAfterPush),
		Phases:        make([]Phase, 0, len(state.Timings)),
		Retained:      retained,
	}
	if state.PushedImage.Repository != "" {
		r.Image = state.PushedImage.String()
	}
	for _, wh := range state.Webhooks {
		actions := make([]string, 0, len(wh.Actions))
		for _, a := range wh.Actions {
			actions = append(actions, string(a))
		}
		r.Webhooks = append(r.Webhooks, Webhook{Name: wh.Name, Actions: actions, Status: string(wh.Status)})
	}
	for _, t := range state.Timings {
		r.Phases = append(r.Phases, Phase{
			Name:       t.Name,
			DurationMS: t.Duration.Milliseconds(),
			Error:      t.Err,
		})
	}
	if runErr != nil {
		r.Error = runErr.Error()
	}
	return r
}

func toEvents(events []azure.WebhookEvent) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		out = append(out, Event{
			ID:         e.ID,
			Action:     e.Action,
			Repository: e.Repository,
			Tag:        e.Tag,
			StatusCode: e.StatusCode,
			Content:    e.Content,
		})
	}
	return out
}

// JSON returns the indented JSON encoding of the report.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// Upload writes the report to bucket under key, creating the bucket if needed.
func Upload(ctx context.Context, store s3.ObjectStore, bucket, key string, r *Report) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	if err := store.EnsureBucket(ctx, bucket); err != nil {
		return fmt.Errorf("failed to prepare report bucket: %w", err)
	}
	if err := store.PutJSON(ctx, bucket, key, data); err != nil {
		return fmt.Errorf("failed to upload report: %w", err)
	}
	return nil
}
