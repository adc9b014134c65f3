package tunnel

import (
	"context"
	goerrors "errors"
	"io"

	"github.com/xtls/xrelay/common"
	"github.com/xtls/xrelay/common/buf"
	"github.com/xtls/xrelay/common/crypto"
	"github.com/xtls/xrelay/common/errors"
)

type relayOptions struct {
	bufferSize int32
	outbound   []buf.CopyOption
	inbound    []buf.CopyOption
}

// RelayOption configures Relay.
type RelayOption func(*relayOptions)

// WithBufferSize sets the largest chunk read from either endpoint at once.
func WithBufferSize(size int32) RelayOption {
	return func(o *relayOptions) {
		o.bufferSize = size
	}
}

// WithOutbound observes chunks flowing from the local endpoint to the peer.
func WithOutbound(options ...buf.CopyOption) RelayOption {
	return func(o *relayOptions) {
		o.outbound = append(o.outbound, options...)
	}
}

// WithInbound observes chunks flowing from the peer to the local endpoint.
func WithInbound(options ...buf.CopyOption) RelayOption {
	return func(o *relayOptions) {
		o.inbound = append(o.inbound, options...)
	}
}

type chunk struct {
	b   *buf.Buffer
	err error
}

// readLoop hands chunks read from r to the relay one at a time. It does not
// read again before the previous chunk was taken.
func readLoop(r io.Reader, size int32, out chan<- chunk, done <-chan struct{}) {
	for {
		b, err := buf.ReadChunk(r, size)
		if b.IsEmpty() {
			b.Release()
		} else {
			select {
			case out <- chunk{b: b}:
			case <-done:
				b.Release()
				return
			}
		}
		if err != nil {
			select {
			case out <- chunk{err: err}:
			case <-done:
			}
			return
		}
	}
}

// forward moves one chunk through state into w. It reports whether the
// source reached EOF.
func forward(c chunk, state *crypto.CounterState, w io.Writer, handler *buf.CopyHandler) (bool, error) {
	if c.err != nil {
		if goerrors.Is(c.err, io.EOF) {
			return true, nil
		}
		return false, c.err
	}
	defer c.b.Release()

	if err := state.Transform(c.b.Bytes(), c.b.Bytes()); err != nil {
		return false, err
	}
	handler.Handle(c.b)
	return false, buf.WriteChunk(w, c.b.Bytes())
}

// Relay copies data between the plaintext endpoint local and the encrypted
// endpoint remote until either side reaches EOF, an error occurs or ctx is
// done. Data from local is encrypted with the session's outbound state and
// data from remote is decrypted with its inbound state. A clean EOF returns
// nil, anything else an error matching ErrTransport. Both endpoints are
// closed and both cipher states are wiped on return.
func Relay(ctx context.Context, local, remote io.ReadWriteCloser, sess *Session, options ...RelayOption) error {
	opts := relayOptions{bufferSize: DefaultBufferSize}
	for _, option := range options {
		option(&opts)
	}
	outbound := buf.NewCopyHandler(opts.outbound...)
	inbound := buf.NewCopyHandler(opts.inbound...)

	fromLocal := make(chan chunk)
	fromRemote := make(chan chunk)
	done := make(chan struct{})

	// The local reader may sit in a read that Close cannot interrupt
	// (stdin), so teardown never waits for the readers.
	go readLoop(local, opts.bufferSize, fromLocal, done)
	go readLoop(remote, opts.bufferSize, fromRemote, done)

	defer func() {
		close(done)
		if err := common.CloseAll(local, remote); err != nil {
			errors.LogDebugInner(ctx, err, "failed to close endpoints")
		}
		sess.Close()
	}()

	for {
		var eof bool
		var err error
		select {
		case <-ctx.Done():
			return transportError{errors.New("relay interrupted").Base(ctx.Err())}
		case c := <-fromLocal:
			eof, err = forward(c, sess.Outbound, remote, outbound)
			if err != nil {
				return transportError{errors.New("failed to relay to peer").Base(err)}
			}
			if eof {
				errors.LogDebug(ctx, "local endpoint closed")
			}
		case c := <-fromRemote:
			eof, err = forward(c, sess.Inbound, local, inbound)
			if err != nil {
				return transportError{errors.New("failed to relay from peer").Base(err)}
			}
			if eof {
				errors.LogDebug(ctx, "peer closed")
			}
		}
		if eof {
			return nil
		}
	}
}
