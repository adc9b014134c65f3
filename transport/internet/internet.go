// Package internet opens the TCP sockets of the relay.
package internet

import (
	"strings"
)

func isTCPSocket(network string) bool {
	return strings.HasPrefix(network, "tcp")
}
