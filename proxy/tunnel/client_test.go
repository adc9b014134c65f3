package tunnel_test

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtls/xrelay/common"
	xnet "github.com/xtls/xrelay/common/net"
	. "github.com/xtls/xrelay/proxy/tunnel"
	"github.com/xtls/xrelay/transport/internet"
)

func TestStdio(t *testing.T) {
	inReader, inWriter := io.Pipe()
	outReader, outWriter := io.Pipe()
	stdio := &Stdio{In: inReader, Out: outWriter}

	go inWriter.Write([]byte("in"))
	b := make([]byte, 2)
	common.Must2(io.ReadFull(stdio, b))
	assert.Equal(t, "in", string(b))

	go stdio.Write([]byte("out"))
	b = make([]byte, 3)
	common.Must2(io.ReadFull(outReader, b))
	assert.Equal(t, "out", string(b))

	require.NoError(t, stdio.Close())
	_, err := inWriter.Write([]byte("x"))
	assert.Equal(t, io.ErrClosedPipe, err)
	_, err = outReader.Read(b)
	assert.Equal(t, io.EOF, err)
}

func TestClientDialFailure(t *testing.T) {
	l, err := internet.ListenSystem(context.Background(), loopback, nil)
	require.NoError(t, err)
	dest := xnet.DestinationFromAddr(l.Addr())
	common.Must(l.Close())

	app, local := net.Pipe()
	err = NewClient(&Config{Destination: dest, Key: newKey(t)}).Run(context.Background(), local)
	assert.Error(t, err)
	assert.False(t, IsHandshakeError(err))

	// the local endpoint is closed on return
	_, err = app.Read(make([]byte, 1))
	assert.Equal(t, io.EOF, err)
}

func TestClientHandshakeFailure(t *testing.T) {
	l, err := internet.ListenSystem(context.Background(), loopback, nil)
	require.NoError(t, err)
	defer l.Close()

	go func() {
		conn, err := l.Accept()
		if err != nil {
			return
		}
		conn.Write([]byte("short"))
		conn.Close()
	}()

	app, local := net.Pipe()
	defer app.Close()
	err = NewClient(&Config{
		Destination:      xnet.DestinationFromAddr(l.Addr()),
		Key:              newKey(t),
		HandshakeTimeout: time.Second * 5,
	}).Run(context.Background(), local)
	assert.True(t, IsHandshakeError(err))
}
