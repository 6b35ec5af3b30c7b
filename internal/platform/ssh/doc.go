// Package ssh opens SSH connections to engine hosts and forwards connections
// to the remote container engine socket over them.
//
// Hosts are freshly booted when the connection is attempted, so connecting is
// retried with exponential backoff until the host accepts the key.
package ssh
