package netcheck

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupyPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })
	return ln.Addr().(*net.TCPAddr).Port
}

func TestAvailable(t *testing.T) {
	t.Run("bound port is unavailable", func(t *testing.T) {
		port := occupyPort(t)

		assert.False(t, Available("127.0.0.1", port))
	})

	t.Run("released port is available again", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		port := ln.Addr().(*net.TCPAddr).Port
		require.NoError(t, ln.Close())

		assert.True(t, Available("127.0.0.1", port))
	})
}

func TestFindAvailable(t *testing.T) {
	t.Run("skips past a bound port", func(t *testing.T) {
		port := occupyPort(t)

		found, err := FindAvailable("127.0.0.1", port, MaxAttempts)
		require.NoError(t, err)
		assert.Greater(t, found, port)
		assert.LessOrEqual(t, found, port+MaxAttempts-1)
		assert.True(t, Available("127.0.0.1", found))
	})

	t.Run("gives up after the attempt limit", func(t *testing.T) {
		port := occupyPort(t)

		_, err := FindAvailable("127.0.0.1", port, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no available port")
	})
}
