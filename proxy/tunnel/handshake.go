package tunnel

import (
	"context"
	"io"
	"time"

	"github.com/xtls/xrelay/common/antireplay"
	"github.com/xtls/xrelay/common/buf"
	"github.com/xtls/xrelay/common/crypto"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/task"
)

// HandshakeOptions tunes Handshake. The zero value is usable.
type HandshakeOptions struct {
	// Random is the nonce source. Nil means crypto/rand.
	Random io.Reader
	// Timeout bounds the whole exchange on connections with deadlines.
	Timeout time.Duration
	// Filter, if set, records the peer nonce and rejects replays.
	Filter antireplay.Filter
}

// Session is the keystream state of an established connection.
type Session struct {
	LocalNonce uint64
	PeerNonce  uint64
	// Outbound encrypts what is sent to the peer.
	Outbound *crypto.CounterState
	// Inbound decrypts what is received from the peer.
	Inbound *crypto.CounterState
}

// Close wipes both cipher states.
func (s *Session) Close() error {
	s.Outbound.Reset()
	s.Inbound.Reset()
	return nil
}

type deadliner interface {
	SetDeadline(time.Time) error
}

var aLongTimeAgo = time.Unix(1, 0)

// Handshake exchanges counter registers with the peer on conn. Both sides
// send their own register and read the peer's at the same time, so either
// side may start first. No application data may be sent on conn before
// Handshake returns. All errors match ErrHandshake.
func Handshake(ctx context.Context, conn io.ReadWriter, key *crypto.Key, opts *HandshakeOptions) (*Session, error) {
	if opts == nil {
		opts = new(HandshakeOptions)
	}

	nonce, err := crypto.NewNonce(opts.Random)
	if err != nil {
		return nil, handshakeError{errors.New("failed to draw nonce").Base(err)}
	}
	local := crypto.NewRegister(nonce)
	errors.LogDebug(ctx, "local register ", local)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if d, ok := conn.(deadliner); ok {
		if opts.Timeout > 0 {
			setDeadline(ctx, d, time.Now().Add(opts.Timeout))
		}
		// unblock the other half once one of them fails
		stop := context.AfterFunc(ctx, func() {
			setDeadline(ctx, d, aLongTimeAgo)
		})
		defer func() {
			stop()
			setDeadline(ctx, d, time.Time{})
		}()
	}

	var peerBytes [crypto.RegisterSize]byte
	err = task.Run(ctx, func(context.Context) error {
		if err := buf.WriteChunk(conn, local.Bytes()); err != nil {
			cancel()
			return errors.New("failed to send register").Base(err)
		}
		return nil
	}, func(context.Context) error {
		if _, err := io.ReadFull(conn, peerBytes[:]); err != nil {
			cancel()
			return errors.New("failed to read peer register").Base(err)
		}
		return nil
	})
	if err != nil {
		return nil, handshakeError{err}
	}

	peer, err := crypto.ParseRegister(peerBytes[:])
	if err != nil {
		return nil, handshakeError{err}
	}
	errors.LogDebug(ctx, "peer register ", peer)

	switch {
	case peer.Counter != 0:
		return nil, handshakeError{errors.New("counter ", peer.Counter).Base(ErrPeerCounter)}
	case peer.Nonce == local.Nonce:
		return nil, handshakeError{errors.New("nonce ", peerBytes[:crypto.NonceSize]).Base(ErrNonceReuse)}
	case opts.Filter != nil && !opts.Filter.Check(peerBytes[:crypto.NonceSize]):
		return nil, handshakeError{errors.New("nonce ", peerBytes[:crypto.NonceSize]).Base(ErrReplay)}
	}

	return &Session{
		LocalNonce: local.Nonce,
		PeerNonce:  peer.Nonce,
		Outbound:   crypto.NewCounterState(key, local),
		Inbound:    crypto.NewCounterState(key, peer),
	}, nil
}

func setDeadline(ctx context.Context, d deadliner, t time.Time) {
	if err := d.SetDeadline(t); err != nil {
		errors.LogDebugInner(ctx, err, "failed to set handshake deadline")
	}
}
