package netutil

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listenerPort(t *testing.T, ln net.Listener) int {
	t.Helper()
	_, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return port
}

func TestWaitForPort_Success(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	err = WaitForPort(context.Background(), "127.0.0.1", listenerPort(t, ln), 2*time.Second, 50*time.Millisecond)
	assert.NoError(t, err)
}

func TestWaitForPort_Timeout(t *testing.T) {
	t.Parallel()
	// Reserve a port, then close it so nothing listens there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listenerPort(t, ln)
	require.NoError(t, ln.Close())

	start := time.Now()
	timeout := 200 * time.Millisecond

	err = WaitForPort(context.Background(), "127.0.0.1", port, timeout, 50*time.Millisecond)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout waiting for")
	assert.GreaterOrEqual(t, time.Since(start), timeout)
}

func TestWaitForPort_DelayedStart(t *testing.T) {
	t.Parallel()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listenerPort(t, ln)
	require.NoError(t, ln.Close())

	go func() {
		time.Sleep(150 * time.Millisecond)
		late, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
		if err != nil {
			return
		}
		time.Sleep(2 * time.Second)
		_ = late.Close()
	}()

	err = WaitForPort(context.Background(), "127.0.0.1", port, 2*time.Second, 50*time.Millisecond)
	assert.NoError(t, err)
}

func TestWaitForPort_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WaitForPort(ctx, "127.0.0.1", 1, time.Second, 50*time.Millisecond)
	assert.ErrorIs(t, err, context.Canceled)
}
