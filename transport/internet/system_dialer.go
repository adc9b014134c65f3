package internet

import (
	"context"
	"syscall"
	"time"

	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/net"
)

var effectiveSystemDialer = &DefaultSystemDialer{}

type DefaultSystemDialer struct{}

func secondsToDuration(s int32) time.Duration {
	return time.Duration(s) * time.Second
}

func (d *DefaultSystemDialer) Dial(ctx context.Context, dest net.Destination, sockopt *SocketConfig) (net.Conn, error) {
	errors.LogDebug(ctx, "dialing to ", dest)

	dialer := &net.Dialer{
		Timeout: net.DefaultDialTimeout,
	}
	if sockopt != nil && sockopt.TCPKeepAliveIdle != 0 {
		// the control hook owns keepalive
		dialer.KeepAlive = -1
	}
	dialer.Control = func(network, address string, c syscall.RawConn) error {
		return c.Control(func(fd uintptr) {
			if sockopt != nil {
				if err := applyOutboundSocketOptions(network, fd, sockopt); err != nil {
					errors.LogInfoInner(ctx, err, "failed to apply socket options")
				}
			}
		})
	}

	conn, err := dialer.DialContext(ctx, "tcp", dest.NetAddr())
	if err != nil {
		return nil, errors.New("failed to dial ", dest).Base(err)
	}
	return conn, nil
}

// DialSystem opens a TCP connection to dest.
func DialSystem(ctx context.Context, dest net.Destination, sockopt *SocketConfig) (net.Conn, error) {
	return effectiveSystemDialer.Dial(ctx, dest, sockopt)
}

