package internet

import (
	"context"
	"syscall"

	"github.com/pires/go-proxyproto"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/net"
)

// Controller operates on a raw socket before it is put into use.
type Controller func(network, address string, c syscall.RawConn) error

var effectiveListener = DefaultListener{}

type DefaultListener struct {
	controllers []Controller
}

func getControlFunc(ctx context.Context, sockopt *SocketConfig, controllers []Controller) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		for _, controller := range controllers {
			if err := controller(network, address, c); err != nil {
				errors.LogInfoInner(ctx, err, "failed to apply external controller")
			}
		}
		return c.Control(func(fd uintptr) {
			if sockopt != nil {
				if err := applyInboundSocketOptions(network, fd, sockopt); err != nil {
					errors.LogInfoInner(ctx, err, "failed to apply socket options to incoming connection")
				}
			}
		})
	}
}

func (dl *DefaultListener) Listen(ctx context.Context, dest net.Destination, sockopt *SocketConfig) (net.Listener, error) {
	var lc net.ListenConfig
	lc.Control = getControlFunc(ctx, sockopt, dl.controllers)
	// default disable keepalive
	lc.KeepAlive = -1
	if sockopt != nil && sockopt.TCPKeepAliveIdle > 0 {
		lc.KeepAlive = secondsToDuration(sockopt.TCPKeepAliveIdle)
	}

	l, err := lc.Listen(ctx, "tcp", dest.NetAddr())
	if err != nil {
		return nil, errors.New("failed to listen on ", dest).Base(err)
	}
	if sockopt != nil && sockopt.AcceptProxyProtocol {
		policyFunc := func(upstream net.Addr) (proxyproto.Policy, error) { return proxyproto.REQUIRE, nil }
		l = &proxyproto.Listener{Listener: l, Policy: policyFunc}
	}
	return l, nil
}

// ListenSystem opens a TCP listener on dest with the given socket options.
func ListenSystem(ctx context.Context, dest net.Destination, sockopt *SocketConfig) (net.Listener, error) {
	return effectiveListener.Listen(ctx, dest, sockopt)
}

// RegisterListenerController adds a controller to the effective system listener.
// The controller can be used to operate on file descriptors before they are put into use.
func RegisterListenerController(controller Controller) error {
	if controller == nil {
		return errors.New("nil listener controller")
	}

	effectiveListener.controllers = append(effectiveListener.controllers, controller)
	return nil
}
