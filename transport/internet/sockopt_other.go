//go:build !linux

package internet

func applyInboundSocketOptions(network string, fd uintptr, config *SocketConfig) error {
	return nil
}

func applyOutboundSocketOptions(network string, fd uintptr, config *SocketConfig) error {
	return nil
}

func getReuseAddr(fd uintptr) (bool, error) {
	return false, nil
}
