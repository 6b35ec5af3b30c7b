// Package hcloud provisions short-lived Hetzner Cloud hosts that run a
// container engine when none is reachable locally.
//
//   - client.go: [HostSpec] and the [HostManager] interface
//   - real_client.go: [RealClient] construction and options
//   - server.go: host create, address lookup, and delete
//   - ssh_key.go: SSH key registration and removal
//   - operations.go: generic idempotent delete with retry on locked resources
//   - errors.go: API error classification for retry decisions
//   - mock_client.go: function-field mock
//
// Deletes succeed when the resource is already gone. Locked resources are
// retried with exponential backoff; invalid input fails immediately.
package hcloud
