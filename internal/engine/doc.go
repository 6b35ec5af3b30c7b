// Package engine decides where the container engine used by the image phase
// comes from.
//
// An [Acquirer] tries its strategies in order and returns the first working
// [Session]. [LocalStrategy] uses the daemon configured in the environment.
// [RemoteStrategy] boots a Hetzner Cloud host from the docker-ce app image
// and reaches its engine socket through an SSH tunnel. Every session must be
// released; releasing a remote session deletes the host and its SSH key.
package engine
