package hcloud

import "context"

// MockClient is a mock implementation of HostManager.
type MockClient struct {
	CreateSSHKeyFunc func(ctx context.Context, name, publicKey string, labels map[string]string) (int64, error)
	DeleteSSHKeyFunc func(ctx context.Context, name string) error
	CreateServerFunc func(ctx context.Context, spec HostSpec) (int64, error)
	GetServerIPFunc  func(ctx context.Context, name string) (string, error)
	DeleteServerFunc func(ctx context.Context, name string) error
}

// Ensure interface compliance
var _ HostManager = (*MockClient)(nil)

// CreateSSHKey mocks SSH key registration.
func (m *MockClient) CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (int64, error) {
	if m.CreateSSHKeyFunc != nil {
		return m.CreateSSHKeyFunc(ctx, name, publicKey, labels)
	}
	return 1, nil
}

// DeleteSSHKey mocks SSH key deletion.
func (m *MockClient) DeleteSSHKey(ctx context.Context, name string) error {
	if m.DeleteSSHKeyFunc != nil {
		return m.DeleteSSHKeyFunc(ctx, name)
	}
	return nil
}

// CreateServer mocks server creation.
func (m *MockClient) CreateServer(ctx context.Context, spec HostSpec) (int64, error) {
	if m.CreateServerFunc != nil {
		return m.CreateServerFunc(ctx, spec)
	}
	return 42, nil
}

// GetServerIP mocks public address lookup.
func (m *MockClient) GetServerIP(ctx context.Context, name string) (string, error) {
	if m.GetServerIPFunc != nil {
		return m.GetServerIPFunc(ctx, name)
	}
	return "127.0.0.1", nil
}

// DeleteServer mocks server deletion.
func (m *MockClient) DeleteServer(ctx context.Context, name string) error {
	if m.DeleteServerFunc != nil {
		return m.DeleteServerFunc(ctx, name)
	}
	return nil
}
