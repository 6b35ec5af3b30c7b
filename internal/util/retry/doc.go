// Package retry provides exponential backoff retry logic for transient failures.
//
// The [WithExponentialBackoff] function retries an operation with configurable max
// attempts, initial delay, and maximum delay. It is used by the Hetzner Cloud host
// provisioning and the SSH tunnel that back the remote container engine. The Azure
// workflow itself never retries; long-running operations there are awaited once.
package retry
