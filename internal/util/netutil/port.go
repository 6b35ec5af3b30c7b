// Package netutil provides network utility functions for port checking.
package netutil

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// SSHPort is the port engine hosts accept SSH on.
const SSHPort = 22

// dialTimeout bounds a single connection attempt.
const dialTimeout = 2 * time.Second

// WaitForPort waits for a TCP port to be open on the target host.
// It retries every interval until the port is accessible or the timeout is reached.
func WaitForPort(ctx context.Context, host string, port int, timeout, interval time.Duration) error {
	address := net.JoinHostPort(host, strconv.Itoa(port))
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Check immediately before waiting for ticker
	if probe(ctx, address) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return fmt.Errorf("timeout waiting for %s", address)
			}
			return ctx.Err()
		case <-ticker.C:
			if probe(ctx, address) {
				return nil
			}
		}
	}
}

func probe(ctx context.Context, address string) bool {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
