// Package image drives the container engine: it pulls the sample image,
// snapshots a container into a registry-qualified image, and pushes it.
package image
