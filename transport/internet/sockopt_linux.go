package internet

import (
	"golang.org/x/sys/unix"

	"github.com/xtls/xrelay/common/errors"
)

func applyInboundSocketOptions(network string, fd uintptr, config *SocketConfig) error {
	if config.ReuseAddr {
		if err := setReuseAddr(fd); err != nil {
			return err
		}
	}
	if isTCPSocket(network) && config.TCPKeepAliveIdle > 0 {
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, int(config.TCPKeepAliveIdle)); err != nil {
			return errors.New("failed to set TCP_KEEPIDLE").Base(err)
		}
	}
	return nil
}

func applyOutboundSocketOptions(network string, fd uintptr, config *SocketConfig) error {
	if !isTCPSocket(network) {
		return nil
	}
	if config.TCPKeepAliveIdle > 0 {
		if err := unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_KEEPIDLE, int(config.TCPKeepAliveIdle)); err != nil {
			return errors.New("failed to set TCP_KEEPIDLE").Base(err)
		}
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, 1); err != nil {
			return errors.New("failed to set SO_KEEPALIVE").Base(err)
		}
	} else if config.TCPKeepAliveIdle < 0 {
		if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_KEEPALIVE, 0); err != nil {
			return errors.New("failed to unset SO_KEEPALIVE").Base(err)
		}
	}
	return nil
}

func setReuseAddr(fd uintptr) error {
	if err := unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return errors.New("failed to set SO_REUSEADDR").Base(err).AtWarning()
	}
	return nil
}

func getReuseAddr(fd uintptr) (bool, error) {
	v, err := unix.GetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}
