package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/imamik/acrwebhooks/internal/engine"
	"github.com/imamik/acrwebhooks/internal/platform/docker"
	"github.com/imamik/acrwebhooks/internal/provisioning"
)

const phase = "image"

// Provisioner pushes a committed container image to the run's registry.
type Provisioner struct{}

// NewProvisioner creates an image provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the Phase interface.
func (p *Provisioner) Name() string {
	return phase
}

// Provision fetches admin credentials, acquires an engine, and runs the
// pull, commit, and push sequence. The engine is released on every path.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	creds, err := ctx.Cloud.ListCredentials(ctx, ctx.State.ResourceGroup.Name, ctx.State.Registry.Name)
	if err != nil {
		return fmt.Errorf("failed to get registry credentials: %w", err)
	}
	if creds.Server == "" {
		creds.Server = ctx.State.Registry.LoginServer
	}
	ctx.State.Credentials = creds

	if ctx.Engines == nil {
		return engine.ErrNoEngine
	}
	session, err := ctx.Engines.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire container engine: %w", err)
	}
	ctx.State.EngineSource = session.Source
	ctx.Observer.Printf("[%s] Using container engine from %s", phase, session.Source)

	defer func() {
		// Release even when ctx is already cancelled.
		if relErr := session.Release(context.WithoutCancel(ctx)); relErr != nil {
			ctx.Observer.Event(provisioning.Event{
				Type:    provisioning.EventResourceFailed,
				Phase:   phase,
				Message: fmt.Sprintf("failed to release engine: %v", relErr),
			})
		}
	}()

	return p.pushSample(ctx, session.Engine)
}

func (p *Provisioner) pushSample(ctx *provisioning.Context, eng docker.Engine) error {
	cfg := ctx.Config.Image
	source := docker.ImageRef{Repository: cfg.Source, Tag: cfg.Tag}

	ctx.Observer.Printf("[%s] Pulling %s", phase, source)
	if err := eng.PullImage(ctx, source); err != nil {
		return fmt.Errorf("failed to pull %s: %w", source, err)
	}

	images, err := eng.ListImages(ctx)
	if err != nil {
		provisioning.LogWarning(ctx.Observer, phase, fmt.Sprintf("failed to list images: %v", err))
	}
	for _, img := range images {
		ctx.Observer.Printf("[%s] image %s %v", phase, shortID(img.ID), img.Tags)
	}

	containers, err := eng.ListContainers(ctx)
	if err != nil {
		provisioning.LogWarning(ctx.Observer, phase, fmt.Sprintf("failed to list containers: %v", err))
	}
	for _, c := range containers {
		ctx.Observer.Printf("[%s] container %s %v image=%s state=%s", phase, shortID(c.ID), c.Names, c.Image, c.State)
	}

	containerID, err := eng.CreateContainer(ctx, source, cfg.ContainerName)
	if err != nil {
		return fmt.Errorf("failed to create container %s: %w", cfg.ContainerName, err)
	}
	defer func() {
		if rmErr := eng.RemoveContainer(context.WithoutCancel(ctx), containerID); rmErr != nil {
			provisioning.LogWarning(ctx.Observer, phase, fmt.Sprintf("failed to remove container %s: %v", cfg.ContainerName, rmErr))
		}
	}()

	target := docker.TargetRef(ctx.State.Registry.LoginServer, cfg.RelativePath, cfg.ContainerName)
	imageID, err := eng.CommitContainer(ctx, containerID, target)
	if err != nil {
		return fmt.Errorf("failed to commit container to %s: %w", target, err)
	}
	ctx.Observer.Printf("[%s] Committed %s as %s", phase, shortID(imageID), target)

	auth := docker.Auth{
		Username:      ctx.State.Credentials.Username,
		Password:      ctx.State.Credentials.Password,
		ServerAddress: ctx.State.Credentials.Server,
	}
	digest, err := eng.PushImage(ctx, target, auth)
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", target, err)
	}
	ctx.State.PushedImage = target
	ctx.State.PushedDigest = digest
	ctx.Observer.Printf("[%s] Pushed %s (%s)", phase, target, digest)

	if cfg.SkipVerify || ctx.Verifier == nil {
		return nil
	}
	remoteDigest, err := ctx.Verifier.ManifestDigest(ctx, target, auth)
	if err != nil {
		return fmt.Errorf("failed to verify pushed image: %w", err)
	}
	if digest != "" && remoteDigest != digest {
		provisioning.LogWarning(ctx.Observer, phase,
			fmt.Sprintf("registry serves %s for %s, engine reported %s", remoteDigest, target, digest))
	}
	if ctx.State.PushedDigest == "" {
		ctx.State.PushedDigest = remoteDigest
	}
	return nil
}

func shortID(id string) string {
	id = strings.TrimPrefix(id, "sha256:")
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
