package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	AzureCreate        time.Duration // Bound on waiting for an ARM create to finish
	AzureDelete        time.Duration // Bound on waiting for resource group deletion
	AzurePollFrequency time.Duration // Interval between long-running operation polls

	ServerCreate      time.Duration // Hetzner engine host creation
	Delete            time.Duration // Hetzner engine host and key deletion
	SSHConnect        time.Duration // Waiting for the engine host to accept SSH
	RetryMaxAttempts  int           // Maximum number of retry attempts
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - AZURE_TIMEOUT_CREATE (default: 15m)
//   - AZURE_TIMEOUT_DELETE (default: 30m)
//   - AZURE_POLL_FREQUENCY (default: 5s)
//   - HCLOUD_TIMEOUT_SERVER_CREATE (default: 10m)
//   - HCLOUD_TIMEOUT_DELETE (default: 5m)
//   - HCLOUD_TIMEOUT_SSH (default: 5m)
//   - HCLOUD_RETRY_MAX_ATTEMPTS (default: 5)
//   - HCLOUD_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		AzureCreate:        parseDuration("AZURE_TIMEOUT_CREATE", 15*time.Minute),
		AzureDelete:        parseDuration("AZURE_TIMEOUT_DELETE", 30*time.Minute),
		AzurePollFrequency: parseDuration("AZURE_POLL_FREQUENCY", 5*time.Second),
		ServerCreate:       parseDuration("HCLOUD_TIMEOUT_SERVER_CREATE", 10*time.Minute),
		Delete:             parseDuration("HCLOUD_TIMEOUT_DELETE", 5*time.Minute),
		SSHConnect:         parseDuration("HCLOUD_TIMEOUT_SSH", 5*time.Minute),
		RetryMaxAttempts:   parseInt("HCLOUD_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay:  parseDuration("HCLOUD_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// TestTimeouts returns short timeouts for tests that exercise retry and wait paths.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		AzureCreate:        10 * time.Second,
		AzureDelete:        10 * time.Second,
		AzurePollFrequency: time.Second,
		ServerCreate:       10 * time.Second,
		Delete:             10 * time.Second,
		SSHConnect:         time.Second,
		RetryMaxAttempts:   3,
		RetryInitialDelay:  10 * time.Millisecond,
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
