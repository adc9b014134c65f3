package tunnel

import (
	"io"
	"time"

	"github.com/xtls/xrelay/common/antireplay"
	"github.com/xtls/xrelay/common/buf"
	"github.com/xtls/xrelay/common/crypto"
	"github.com/xtls/xrelay/common/net"
	"github.com/xtls/xrelay/transport/internet"
)

// DefaultBufferSize is the largest chunk read from an endpoint at once.
const DefaultBufferSize = 1024

// Config of a tunnel endpoint.
type Config struct {
	// Listen is the address of the reverse proxy. Unused in forward mode.
	Listen net.Destination
	// Destination is the backend in reverse mode and the remote peer in forward mode.
	Destination net.Destination
	Key         *crypto.Key

	BufferSize       int32
	HandshakeTimeout time.Duration
	// IdleTimeout closes a relay without traffic in either direction. Zero disables it.
	IdleTimeout time.Duration
	// ReplayFilter rejects peer nonces seen before. Nil disables it.
	ReplayFilter antireplay.Filter
	SocketConfig *internet.SocketConfig

	// Random is the nonce source. Nil means crypto/rand.
	Random io.Reader
}

func (c *Config) bufferSize() int32 {
	if c.BufferSize <= 0 {
		return DefaultBufferSize
	}
	if c.BufferSize > buf.Size {
		return buf.Size
	}
	return c.BufferSize
}

func (c *Config) handshakeOptions(filter antireplay.Filter) *HandshakeOptions {
	return &HandshakeOptions{
		Random:  c.Random,
		Timeout: c.HandshakeTimeout,
		Filter:  filter,
	}
}
