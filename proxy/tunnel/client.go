package tunnel

import (
	"context"
	"io"

	"github.com/xtls/xrelay/common"
	"github.com/xtls/xrelay/common/buf"
	c "github.com/xtls/xrelay/common/ctx"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/log"
	"github.com/xtls/xrelay/common/session"
	"github.com/xtls/xrelay/transport/internet"
)

// Client is the forward proxy: it relays one plaintext stream to the
// configured peer over an encrypted connection.
type Client struct {
	config *Config
}

// NewClient creates a client for config. config.Key and config.Destination must be set.
func NewClient(config *Config) *Client {
	return &Client{config: config}
}

// Run dials the peer, performs the handshake and relays between local and
// the connection until either closes. local is closed on return.
func (cl *Client) Run(ctx context.Context, local io.ReadWriteCloser) error {
	ctx = c.ContextWithID(ctx, session.NewID())
	dest := cl.config.Destination

	conn, err := internet.DialSystem(ctx, dest, cl.config.SocketConfig)
	if err != nil {
		local.Close()
		return errors.New("failed to dial peer ", dest).Base(err)
	}
	errors.LogInfo(ctx, "connected to ", dest)

	sess, err := Handshake(ctx, conn, cl.config.Key, cl.config.handshakeOptions(nil))
	if err != nil {
		common.CloseAll(conn, local)
		return err
	}

	var uplink, downlink buf.SizeCounter
	err = relay(ctx, cl.config, local, conn, sess, &uplink, &downlink)

	access := &log.AccessMessage{
		From:     "stdio",
		To:       dest,
		Status:   log.AccessAccepted,
		Uplink:   uplink.Size,
		Downlink: downlink.Size,
	}
	if err != nil {
		access.Reason = err
	}
	log.Record(access)
	return err
}

// Stdio joins a reader and a writer into one endpoint. Closing it closes both.
type Stdio struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

func (s *Stdio) Read(b []byte) (int, error) {
	return s.In.Read(b)
}

func (s *Stdio) Write(b []byte) (int, error) {
	return s.Out.Write(b)
}

func (s *Stdio) Close() error {
	return common.CloseAll(s.In, s.Out)
}
