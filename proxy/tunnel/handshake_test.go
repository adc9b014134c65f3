package tunnel_test

import (
	"bytes"
	"context"
	goerrors "errors"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtls/xrelay/common"
	"github.com/xtls/xrelay/common/antireplay"
	"github.com/xtls/xrelay/common/crypto"
	clog "github.com/xtls/xrelay/common/log"
	. "github.com/xtls/xrelay/proxy/tunnel"
	"github.com/xtls/xrelay/testing/mocks"
	"golang.org/x/sync/errgroup"
)

func newKey(t *testing.T) *crypto.Key {
	t.Helper()
	raw, err := crypto.GenerateKey(nil)
	require.NoError(t, err)
	key, err := crypto.NewKey(raw)
	require.NoError(t, err)
	return key
}

// handshakePair runs both sides of a handshake over a in-memory pipe.
func handshakePair(t *testing.T, key *crypto.Key, a, b *HandshakeOptions) (*Session, *Session, net.Conn, net.Conn, error, error) {
	t.Helper()
	connA, connB := net.Pipe()

	var sessA, sessB *Session
	var errA, errB error
	var g errgroup.Group
	g.Go(func() error {
		sessA, errA = Handshake(context.Background(), connA, key, a)
		if errA != nil {
			connA.Close()
		}
		return nil
	})
	g.Go(func() error {
		sessB, errB = Handshake(context.Background(), connB, key, b)
		if errB != nil {
			connB.Close()
		}
		return nil
	})
	common.Must(g.Wait())
	return sessA, sessB, connA, connB, errA, errB
}

func TestHandshake(t *testing.T) {
	key := newKey(t)
	sessA, sessB, connA, connB, errA, errB := handshakePair(t, key, nil, nil)
	require.NoError(t, errA)
	require.NoError(t, errB)
	defer connA.Close()
	defer connB.Close()

	assert.Equal(t, sessA.LocalNonce, sessB.PeerNonce)
	assert.Equal(t, sessB.LocalNonce, sessA.PeerNonce)
	assert.NotEqual(t, sessA.LocalNonce, sessA.PeerNonce)
	assert.Equal(t, crypto.Register{Nonce: sessA.LocalNonce}, sessA.Outbound.Register())
	assert.Equal(t, crypto.Register{Nonce: sessA.PeerNonce}, sessA.Inbound.Register())

	msg := []byte("handshake complete")
	ct := make([]byte, len(msg))
	require.NoError(t, sessA.Outbound.Transform(ct, msg))
	pt := make([]byte, len(ct))
	require.NoError(t, sessB.Inbound.Transform(pt, ct))
	assert.Equal(t, msg, pt)
}

func TestHandshakeShortRead(t *testing.T) {
	connA, connB := net.Pipe()
	go func() {
		buf := make([]byte, crypto.RegisterSize)
		io.ReadFull(connB, buf)
		connB.Write(make([]byte, 10))
		connB.Close()
	}()

	_, err := Handshake(context.Background(), connA, newKey(t), nil)
	assert.True(t, IsHandshakeError(err))
	assert.True(t, goerrors.Is(err, io.ErrUnexpectedEOF))
	assert.False(t, IsTransportError(err))
}

func TestHandshakePeerGone(t *testing.T) {
	connA, connB := net.Pipe()
	connB.Close()

	_, err := Handshake(context.Background(), connA, newKey(t), nil)
	assert.True(t, IsHandshakeError(err))
}

func TestHandshakeNonceReuse(t *testing.T) {
	nonce := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	_, _, _, _, errA, errB := handshakePair(t, newKey(t),
		&HandshakeOptions{Random: bytes.NewReader(nonce)},
		&HandshakeOptions{Random: bytes.NewReader(nonce)})

	assert.True(t, IsHandshakeError(errA))
	assert.True(t, goerrors.Is(errA, ErrNonceReuse))
	assert.True(t, goerrors.Is(errB, ErrNonceReuse))
}

func TestHandshakeNonZeroCounter(t *testing.T) {
	connA, connB := net.Pipe()
	defer connA.Close()
	go func() {
		defer connB.Close()
		buf := make([]byte, crypto.RegisterSize)
		go connB.Write(crypto.Register{Nonce: 99, Counter: 1}.Bytes())
		io.ReadFull(connB, buf)
	}()

	_, err := Handshake(context.Background(), connA, newKey(t), nil)
	assert.True(t, IsHandshakeError(err))
	assert.True(t, goerrors.Is(err, ErrPeerCounter))
}

func TestHandshakeReplay(t *testing.T) {
	key := newKey(t)
	filter := antireplay.NewMapFilter(120)
	nonce := []byte{8, 7, 6, 5, 4, 3, 2, 1}

	_, _, connA, connB, errA, errB := handshakePair(t, key,
		&HandshakeOptions{Random: bytes.NewReader(nonce)},
		&HandshakeOptions{Filter: filter})
	require.NoError(t, errA)
	require.NoError(t, errB)
	connA.Close()
	connB.Close()

	_, _, _, _, _, errB = handshakePair(t, key,
		&HandshakeOptions{Random: bytes.NewReader(nonce)},
		&HandshakeOptions{Filter: filter})
	assert.True(t, IsHandshakeError(errB))
	assert.True(t, goerrors.Is(errB, ErrReplay))
}

func TestHandshakeRandomFailure(t *testing.T) {
	connA, _ := net.Pipe()
	_, err := Handshake(context.Background(), connA, newKey(t), &HandshakeOptions{Random: bytes.NewReader(nil)})
	assert.True(t, IsHandshakeError(err))
}

func TestHandshakeTimeout(t *testing.T) {
	connA, connB := net.Pipe()
	defer connB.Close()

	start := time.Now()
	_, err := Handshake(context.Background(), connA, newKey(t), &HandshakeOptions{Timeout: time.Millisecond * 200})
	assert.True(t, IsHandshakeError(err))
	assert.Less(t, time.Since(start), time.Second*5)
}

func TestHandshakeCancel(t *testing.T) {
	connA, connB := net.Pipe()
	defer connB.Close()

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(time.Millisecond*100, cancel)
	_, err := Handshake(ctx, connA, newKey(t), nil)
	assert.True(t, IsHandshakeError(err))
}

// noDeadlineConn rejects every deadline.
type noDeadlineConn struct {
	net.Conn
}

func (noDeadlineConn) SetDeadline(time.Time) error {
	return goerrors.New("deadline not supported")
}

func TestHandshakeDeadlineFailureIsLogged(t *testing.T) {
	mockCtl := gomock.NewController(t)
	defer mockCtl.Finish()

	var lock sync.Mutex
	var debug []string
	handler := mocks.NewLogHandler(mockCtl)
	handler.EXPECT().Handle(gomock.Any()).AnyTimes().Do(func(msg clog.Message) {
		if m, ok := msg.(*clog.GeneralMessage); ok && m.Severity == clog.Severity_Debug {
			lock.Lock()
			debug = append(debug, m.String())
			lock.Unlock()
		}
	})
	clog.RegisterHandler(handler)
	defer clog.RegisterHandler(discardHandler{})

	key := newKey(t)
	connA, connB := net.Pipe()
	defer connA.Close()
	defer connB.Close()

	var errA, errB error
	var g errgroup.Group
	g.Go(func() error {
		_, errA = Handshake(context.Background(), noDeadlineConn{connA}, key, &HandshakeOptions{Timeout: time.Second})
		return nil
	})
	g.Go(func() error {
		_, errB = Handshake(context.Background(), connB, key, nil)
		return nil
	})
	common.Must(g.Wait())
	require.NoError(t, errA)
	require.NoError(t, errB)

	lock.Lock()
	defer lock.Unlock()
	var logged int
	for _, m := range debug {
		if strings.Contains(m, "failed to set handshake deadline") {
			logged++
		}
	}
	// the timeout and the reset both fail
	assert.GreaterOrEqual(t, logged, 2)
}
