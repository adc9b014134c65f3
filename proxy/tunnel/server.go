package tunnel

import (
	"context"
	goerrors "errors"
	"io"
	"strings"
	"time"

	"github.com/xtls/xrelay/common/buf"
	c "github.com/xtls/xrelay/common/ctx"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/log"
	"github.com/xtls/xrelay/common/net"
	"github.com/xtls/xrelay/common/session"
	"github.com/xtls/xrelay/common/signal"
	"github.com/xtls/xrelay/transport/internet"
)

// Server is the reverse proxy: it accepts encrypted connections and relays
// them in plaintext to the configured backend, one connection at a time.
type Server struct {
	config *Config
}

// NewServer creates a server for config. config.Key and config.Destination must be set.
func NewServer(config *Config) *Server {
	return &Server{config: config}
}

// Serve accepts connections on l until l is closed or ctx is done. A
// connection is fully relayed before the next one is accepted. Failures of a
// single connection are logged and never end the loop.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		l.Close()
	})
	defer stop()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil || goerrors.Is(err, net.ErrClosed) {
				return nil
			}
			errors.LogWarningInner(ctx, err, "failed to accept connection")
			if strings.Contains(err.Error(), "too many") {
				time.Sleep(time.Millisecond * 500)
			}
			continue
		}
		s.handle(ctx, conn)
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	ctx = c.ContextWithID(ctx, session.NewID())
	ctx = session.ContextWithInbound(ctx, &session.Inbound{
		Source:  conn.RemoteAddr(),
		Gateway: conn.LocalAddr(),
		Tag:     "tunnel",
	})
	errors.LogInfo(ctx, "accepted connection from ", conn.RemoteAddr())

	if err := s.process(ctx, conn); err != nil {
		if IsHandshakeError(err) {
			errors.LogWarningInner(ctx, err, "connection rejected")
		} else {
			errors.LogInfoInner(ctx, err, "connection ends")
		}
	}
}

func (s *Server) process(ctx context.Context, conn net.Conn) error {
	dest := s.config.Destination
	inbound := session.InboundFromContext(ctx)
	access := &log.AccessMessage{
		From:     inbound.Source,
		To:       dest,
		Status:   log.AccessRejected,
		Uplink:   -1,
		Downlink: -1,
	}
	defer func() {
		log.Record(access)
	}()

	sess, err := Handshake(ctx, conn, s.config.Key, s.config.handshakeOptions(s.config.ReplayFilter))
	if err != nil {
		conn.Close()
		access.Reason = err
		return err
	}

	backend, err := internet.DialSystem(ctx, dest, s.config.SocketConfig)
	if err != nil {
		conn.Close()
		sess.Close()
		access.Reason = "backend unreachable"
		return errors.New("failed to dial backend ", dest).Base(err).AtWarning()
	}
	errors.LogInfo(ctx, "relaying to ", dest)

	var uplink, downlink buf.SizeCounter
	err = relay(ctx, s.config, backend, conn, sess, &downlink, &uplink)

	access.Status = log.AccessAccepted
	access.Uplink = uplink.Size
	access.Downlink = downlink.Size
	if err != nil {
		access.Reason = err
	}
	return err
}

// relay runs Relay with the idle timeout and byte counters of config.
func relay(ctx context.Context, config *Config, local, remote io.ReadWriteCloser, sess *Session, sent, received *buf.SizeCounter) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	outbound := []buf.CopyOption{buf.CountSize(sent)}
	inbound := []buf.CopyOption{buf.CountSize(received)}
	if config.IdleTimeout > 0 {
		timer := signal.CancelAfterInactivity(ctx, cancel, config.IdleTimeout)
		defer timer.SetTimeout(0)
		outbound = append(outbound, buf.UpdateActivity(timer))
		inbound = append(inbound, buf.UpdateActivity(timer))
	}

	return Relay(ctx, local, remote, sess,
		WithBufferSize(config.bufferSize()),
		WithOutbound(outbound...),
		WithInbound(inbound...))
}
