package docker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"
	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
)

// DefaultSocketPath is where the engine listens on a standard Linux host.
const DefaultSocketPath = "/var/run/docker.sock"

// ErrClientNil is returned when a Client is built around a nil API client.
var ErrClientNil = errors.New("docker api client cannot be nil")

// apiClient is the slice of the Docker API the Client calls.
type apiClient interface {
	Ping(ctx context.Context) (types.Ping, error)
	ImagePull(ctx context.Context, ref string, options image.PullOptions) (io.ReadCloser, error)
	ImageList(ctx context.Context, options image.ListOptions) ([]image.Summary, error)
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	ContainerCreate(ctx context.Context, config *container.Config, hostConfig *container.HostConfig, networkingConfig *network.NetworkingConfig, platform *ocispec.Platform, containerName string) (container.CreateResponse, error)
	ContainerCommit(ctx context.Context, container string, options container.CommitOptions) (container.CommitResponse, error)
	ImagePush(ctx context.Context, ref string, options image.PushOptions) (io.ReadCloser, error)
	ContainerRemove(ctx context.Context, container string, options container.RemoveOptions) error
	Close() error
}

// Client implements Engine using the Docker Engine API.
type Client struct {
	api apiClient
}

// Ensure interface compliance
var _ Engine = (*Client)(nil)

// NewLocalClient connects to the engine configured by DOCKER_HOST and friends.
func NewLocalClient() (*Client, error) {
	api, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &Client{api: api}, nil
}

// DialFunc opens a connection to the engine socket.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// NewDialerClient connects to an engine whose socket is reached through dial,
// typically an SSH tunnel to a remote host.
func NewDialerClient(dial DialFunc) (*Client, error) {
	api, err := client.NewClientWithOpts(
		client.WithHost("unix://"+DefaultSocketPath),
		client.WithDialContext(dial),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tunneled Docker client: %w", err)
	}
	return &Client{api: api}, nil
}

func newClient(api apiClient) (*Client, error) {
	if api == nil {
		return nil, ErrClientNil
	}
	return &Client{api: api}, nil
}

// Ping checks that the engine answers.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.api.Ping(ctx); err != nil {
		return fmt.Errorf("container engine is not reachable: %w", err)
	}
	return nil
}

// PullImage pulls ref and waits for the pull stream to finish.
func (c *Client) PullImage(ctx context.Context, ref ImageRef) error {
	reader, err := c.api.ImagePull(ctx, ref.String(), image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}

	err = jsonmessage.DisplayJSONMessagesStream(reader, io.Discard, 0, false, nil)
	closeErr := reader.Close()

	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close image pull reader: %w", closeErr)
	}
	return nil
}

// ListImages lists local images.
func (c *Client) ListImages(ctx context.Context) ([]ImageSummary, error) {
	images, err := c.api.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	out := make([]ImageSummary, 0, len(images))
	for _, img := range images {
		out = append(out, ImageSummary{ID: img.ID, Tags: img.RepoTags})
	}
	return out, nil
}

// ListContainers lists all containers, running or not.
func (c *Client) ListContainers(ctx context.Context) ([]ContainerSummary, error) {
	containers, err := c.api.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	out := make([]ContainerSummary, 0, len(containers))
	for _, ctr := range containers {
		out = append(out, ContainerSummary{
			ID:    ctr.ID,
			Names: ctr.Names,
			Image: ctr.Image,
			State: string(ctr.State),
		})
	}
	return out, nil
}

// CreateContainer creates (without starting) a container from image.
func (c *Client) CreateContainer(ctx context.Context, img ImageRef, name string) (string, error) {
	resp, err := c.api.ContainerCreate(ctx, &container.Config{Image: img.String()}, nil, nil, nil, name)
	if err != nil {
		return "", fmt.Errorf("failed to create container %s: %w", name, err)
	}
	return resp.ID, nil
}

// CommitContainer commits the container to a new image tagged target.
func (c *Client) CommitContainer(ctx context.Context, containerID string, target ImageRef) (string, error) {
	resp, err := c.api.ContainerCommit(ctx, containerID, container.CommitOptions{Reference: target.String()})
	if err != nil {
		return "", fmt.Errorf("failed to commit container %s to %s: %w", containerID, target, err)
	}
	return resp.ID, nil
}

// PushImage pushes ref with the given registry credentials. Errors reported
// inside the progress stream are returned as errors.
func (c *Client) PushImage(ctx context.Context, ref ImageRef, auth Auth) (string, error) {
	encoded, err := registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      auth.Username,
		Password:      auth.Password,
		ServerAddress: auth.ServerAddress,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode registry auth: %w", err)
	}

	reader, err := c.api.ImagePush(ctx, ref.String(), image.PushOptions{RegistryAuth: encoded})
	if err != nil {
		return "", fmt.Errorf("failed to push image %s: %w", ref, err)
	}

	var digest string
	err = jsonmessage.DisplayJSONMessagesStream(reader, io.Discard, 0, false, func(msg jsonmessage.JSONMessage) {
		if d := pushDigest(msg); d != "" {
			digest = d
		}
	})
	closeErr := reader.Close()

	if err != nil {
		return "", fmt.Errorf("failed to push image %s: %w", ref, err)
	}
	if closeErr != nil {
		return "", fmt.Errorf("failed to close image push reader: %w", closeErr)
	}
	return digest, nil
}

// pushDigest extracts the digest from the aux message sent at the end of a push.
func pushDigest(msg jsonmessage.JSONMessage) string {
	if msg.Aux == nil {
		return ""
	}
	var aux struct {
		Digest string `json:"Digest"`
	}
	if err := json.Unmarshal(*msg.Aux, &aux); err != nil {
		return ""
	}
	return aux.Digest
}

// RemoveContainer force-removes a container.
func (c *Client) RemoveContainer(ctx context.Context, containerID string) error {
	err := c.api.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true})
	if err != nil && !cerrdefs.IsNotFound(err) {
		return fmt.Errorf("failed to remove container %s: %w", containerID, err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.api.Close()
}
