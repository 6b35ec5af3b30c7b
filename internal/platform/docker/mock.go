package docker

import "context"

// MockEngine is a mock implementation of Engine.
type MockEngine struct {
	PingFunc            func(ctx context.Context) error
	PullImageFunc       func(ctx context.Context, ref ImageRef) error
	ListImagesFunc      func(ctx context.Context) ([]ImageSummary, error)
	ListContainersFunc  func(ctx context.Context) ([]ContainerSummary, error)
	CreateContainerFunc func(ctx context.Context, image ImageRef, name string) (string, error)
	CommitContainerFunc func(ctx context.Context, containerID string, target ImageRef) (string, error)
	PushImageFunc       func(ctx context.Context, ref ImageRef, auth Auth) (string, error)
	RemoveContainerFunc func(ctx context.Context, containerID string) error
	CloseFunc           func() error
}

// Ensure interface compliance
var _ Engine = (*MockEngine)(nil)

// Ping mocks an engine health check.
func (m *MockEngine) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}

// PullImage mocks an image pull.
func (m *MockEngine) PullImage(ctx context.Context, ref ImageRef) error {
	if m.PullImageFunc != nil {
		return m.PullImageFunc(ctx, ref)
	}
	return nil
}

// ListImages mocks image listing.
func (m *MockEngine) ListImages(ctx context.Context) ([]ImageSummary, error) {
	if m.ListImagesFunc != nil {
		return m.ListImagesFunc(ctx)
	}
	return []ImageSummary{{ID: "sha256:mock", Tags: []string{"hello-world:latest"}}}, nil
}

// ListContainers mocks container listing.
func (m *MockEngine) ListContainers(ctx context.Context) ([]ContainerSummary, error) {
	if m.ListContainersFunc != nil {
		return m.ListContainersFunc(ctx)
	}
	return nil, nil
}

// CreateContainer mocks container creation.
func (m *MockEngine) CreateContainer(ctx context.Context, image ImageRef, name string) (string, error) {
	if m.CreateContainerFunc != nil {
		return m.CreateContainerFunc(ctx, image, name)
	}
	return "mock-container-id", nil
}

// CommitContainer mocks a container commit.
func (m *MockEngine) CommitContainer(ctx context.Context, containerID string, target ImageRef) (string, error) {
	if m.CommitContainerFunc != nil {
		return m.CommitContainerFunc(ctx, containerID, target)
	}
	return "sha256:mock-commit", nil
}

// PushImage mocks an image push.
func (m *MockEngine) PushImage(ctx context.Context, ref ImageRef, auth Auth) (string, error) {
	if m.PushImageFunc != nil {
		return m.PushImageFunc(ctx, ref, auth)
	}
	return "sha256:mock-digest", nil
}

// RemoveContainer mocks container removal.
func (m *MockEngine) RemoveContainer(ctx context.Context, containerID string) error {
	if m.RemoveContainerFunc != nil {
		return m.RemoveContainerFunc(ctx, containerID)
	}
	return nil
}

// Close mocks releasing the engine connection.
func (m *MockEngine) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// MockVerifier is a mock implementation of Verifier.
type MockVerifier struct {
	ManifestDigestFunc func(ctx context.Context, ref ImageRef, auth Auth) (string, error)
}

// Ensure interface compliance
var _ Verifier = (*MockVerifier)(nil)

// ManifestDigest mocks a manifest lookup.
func (m *MockVerifier) ManifestDigest(ctx context.Context, ref ImageRef, auth Auth) (string, error) {
	if m.ManifestDigestFunc != nil {
		return m.ManifestDigestFunc(ctx, ref, auth)
	}
	return "sha256:mock-digest", nil
}
