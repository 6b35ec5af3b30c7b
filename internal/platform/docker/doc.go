// Package docker is the container engine client used to move the sample image
// into the registry.
//
// [Engine] is the narrow surface the image phase depends on. [Client] implements
// it on top of the Docker Engine API, either against the local daemon resolved
// from the environment or against a remote socket reached through a custom
// dialer. [MockEngine] is the function-field mock used in tests.
//
// [RemoteVerifier] confirms a pushed tag exists in the registry by issuing a
// manifest HEAD request with the registry credentials.
package docker
