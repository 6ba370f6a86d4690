// Package netutil provides small networking helpers shared by the server
// entry points.
package netutil

import (
	"fmt"
	"net"
)

// ListenWithFallback listens on the preferred TCP port, falling back to a
// system-assigned port when it is taken. It returns the listener and the
// port actually bound; callers should log the port rather than assume the
// preferred one.
func ListenWithFallback(preferredPort string) (net.Listener, int, error) {
	lis, err := net.Listen("tcp", ":"+preferredPort)
	if err != nil {
		lis, err = net.Listen("tcp", ":0")
		if err != nil {
			return nil, 0, fmt.Errorf("failed to listen on port %s or a fallback port: %w", preferredPort, err)
		}
	}
	return lis, lis.Addr().(*net.TCPAddr).Port, nil
}
