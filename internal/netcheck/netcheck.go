// Package netcheck probes TCP ports so the serve command can settle on a
// working listen address before the server starts.
package netcheck

import (
	"fmt"
	"net"
	"strconv"
)

// MaxAttempts bounds the upward search for a free port.
const MaxAttempts = 10

// Available reports whether the port can be bound on the host right now.
func Available(host string, port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return false
	}
	ln.Close()
	return true
}

// FindAvailable scans upward from start and returns the first port that
// can be bound, giving up after attempts probes.
func FindAvailable(host string, start, attempts int) (int, error) {
	for i := 0; i < attempts; i++ {
		if Available(host, start+i) {
			return start + i, nil
		}
	}
	return 0, fmt.Errorf("no available port between %d and %d", start, start+attempts-1)
}
