package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/acrwebhooks/internal/util/retry"
)

// CreateServer creates a host and waits for the create action to finish.
func (c *RealClient) CreateServer(ctx context.Context, spec HostSpec) (int64, error) {
	if spec.Name == "" || spec.Image == "" || spec.ServerType == "" {
		return 0, fmt.Errorf("server name, image, and type are required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.ServerCreate)
	defer cancel()

	opts, err := c.buildServerCreateOpts(ctx, spec)
	if err != nil {
		return 0, err
	}

	var result hcloud.ServerCreateResult
	err = retry.WithExponentialBackoff(ctx, func() error {
		res, _, err := c.client.Server.Create(ctx, opts)
		if err != nil {
			if isInvalidParameter(err) {
				return retry.Fatal(err)
			}
			return err
		}
		result = res
		return nil
	}, retry.WithMaxRetries(c.timeouts.RetryMaxAttempts), retry.WithInitialDelay(c.timeouts.RetryInitialDelay))
	if err != nil {
		return 0, fmt.Errorf("failed to create server %s: %w", spec.Name, err)
	}

	actions := append([]*hcloud.Action{result.Action}, result.NextActions...)
	if err := waitForActions(ctx, c.client, actions...); err != nil {
		return 0, fmt.Errorf("failed to wait for server %s: %w", spec.Name, err)
	}

	return result.Server.ID, nil
}

// buildServerCreateOpts resolves the server type, image, and location by name.
func (c *RealClient) buildServerCreateOpts(ctx context.Context, spec HostSpec) (hcloud.ServerCreateOpts, error) {
	serverType, _, err := c.client.ServerType.Get(ctx, spec.ServerType)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get server type: %w", err)
	}
	if serverType == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("server type not found: %s", spec.ServerType)
	}

	image, _, err := c.client.Image.GetForArchitecture(ctx, spec.Image, serverType.Architecture)
	if err != nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get image: %w", err)
	}
	if image == nil {
		return hcloud.ServerCreateOpts{}, fmt.Errorf("image not found: %s (%s)", spec.Image, serverType.Architecture)
	}

	opts := hcloud.ServerCreateOpts{
		Name:       spec.Name,
		ServerType: serverType,
		Image:      image,
		Labels:     spec.Labels,
	}

	if spec.Location != "" {
		location, _, err := c.client.Location.Get(ctx, spec.Location)
		if err != nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("failed to get location: %w", err)
		}
		if location == nil {
			return hcloud.ServerCreateOpts{}, fmt.Errorf("location not found: %s", spec.Location)
		}
		opts.Location = location
	}

	for _, id := range spec.SSHKeyIDs {
		opts.SSHKeys = append(opts.SSHKeys, &hcloud.SSHKey{ID: id})
	}

	return opts, nil
}

// waitForActions waits for the non-nil actions to complete.
func waitForActions(ctx context.Context, client *hcloud.Client, actions ...*hcloud.Action) error {
	pending := make([]*hcloud.Action, 0, len(actions))
	for _, a := range actions {
		if a != nil {
			pending = append(pending, a)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	return client.Action.WaitFor(ctx, pending...)
}

// GetServerIP returns the public IPv4 address of the server.
func (c *RealClient) GetServerIP(ctx context.Context, name string) (string, error) {
	server, _, err := c.client.Server.Get(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to get server: %w", err)
	}
	if server == nil {
		return "", fmt.Errorf("server not found: %s", name)
	}

	if server.PublicNet.IPv4.IP == nil || server.PublicNet.IPv4.IP.IsUnspecified() {
		return "", fmt.Errorf("server %s has no public IPv4", name)
	}

	return server.PublicNet.IPv4.IP.String(), nil
}

// DeleteServer deletes the server with the given name.
func (c *RealClient) DeleteServer(ctx context.Context, name string) error {
	return (&DeleteOperation[*hcloud.Server]{
		Name:         name,
		ResourceType: "server",
		Get:          c.client.Server.Get,
		Delete: func(ctx context.Context, server *hcloud.Server) (*hcloud.Response, error) {
			result, resp, err := c.client.Server.DeleteWithResult(ctx, server)
			if err != nil {
				return resp, err
			}
			return resp, waitForActions(ctx, c.client, result.Action)
		},
	}).Execute(ctx, c)
}
