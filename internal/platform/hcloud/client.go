package hcloud

import "context"

// HostSpec describes an engine host to create.
type HostSpec struct {
	Name       string
	Image      string
	ServerType string
	Location   string
	SSHKeyIDs  []int64
	Labels     map[string]string
}

// HostManager creates and removes engine hosts and the SSH keys that reach them.
type HostManager interface {
	// CreateSSHKey registers a public key and returns its ID.
	CreateSSHKey(ctx context.Context, name, publicKey string, labels map[string]string) (int64, error)
	DeleteSSHKey(ctx context.Context, name string) error
	// CreateServer blocks until the server is running and returns its ID.
	CreateServer(ctx context.Context, spec HostSpec) (int64, error)
	// GetServerIP returns the public IPv4 address of the server.
	GetServerIP(ctx context.Context, name string) (string, error)
	DeleteServer(ctx context.Context, name string) error
}
