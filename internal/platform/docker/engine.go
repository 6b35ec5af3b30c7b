package docker

import (
	"context"
	"fmt"
)

// DefaultTag is the tag used when a reference carries none.
const DefaultTag = "latest"

// ImageRef is a repository plus tag.
type ImageRef struct {
	Repository string
	Tag        string
}

// String returns "repository:tag", defaulting the tag to latest.
func (r ImageRef) String() string {
	tag := r.Tag
	if tag == "" {
		tag = DefaultTag
	}
	return r.Repository + ":" + tag
}

// TargetRef builds the registry-qualified reference
// {loginServer}/{relativePath}/{name}:latest.
func TargetRef(loginServer, relativePath, name string) ImageRef {
	repo := loginServer
	if relativePath != "" {
		repo += "/" + relativePath
	}
	return ImageRef{Repository: fmt.Sprintf("%s/%s", repo, name), Tag: DefaultTag}
}

// ImageSummary is a local image as reported by the engine.
type ImageSummary struct {
	ID   string
	Tags []string
}

// ContainerSummary is a container as reported by the engine.
type ContainerSummary struct {
	ID    string
	Names []string
	Image string
	State string
}

// Auth holds registry login details for a push.
type Auth struct {
	Username      string
	Password      string
	ServerAddress string
}

// Engine is the subset of container engine operations the image phase needs.
type Engine interface {
	Ping(ctx context.Context) error
	// PullImage blocks until the pull has completed.
	PullImage(ctx context.Context, ref ImageRef) error
	ListImages(ctx context.Context) ([]ImageSummary, error)
	// ListContainers includes stopped containers.
	ListContainers(ctx context.Context) ([]ContainerSummary, error)
	CreateContainer(ctx context.Context, image ImageRef, name string) (string, error)
	// CommitContainer snapshots a container into a new image tagged target.
	CommitContainer(ctx context.Context, containerID string, target ImageRef) (string, error)
	// PushImage uploads an image and returns the digest reported by the engine.
	PushImage(ctx context.Context, ref ImageRef, auth Auth) (string, error)
	// RemoveContainer succeeds when the container no longer exists.
	RemoveContainer(ctx context.Context, containerID string) error
	Close() error
}
