// Package config defines the run configuration for the webhook sample.
//
// A [Config] is read from an optional YAML file, completed with defaults, and
// then overridden by command-line flags. Secrets never live in the file:
// service-principal credentials come from the environment via
// [LoadCredentials], and operation timeouts via [LoadTimeouts].
package config
