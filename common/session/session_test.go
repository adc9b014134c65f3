package session_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	c "github.com/xtls/xrelay/common/ctx"
	"github.com/xtls/xrelay/common/net"
	. "github.com/xtls/xrelay/common/session"
)

func TestNewIDNeverZero(t *testing.T) {
	for i := 0; i < 1000; i++ {
		assert.NotEqual(t, c.ID(0), NewID())
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, InboundFromContext(ctx))
	assert.Equal(t, c.ID(0), c.IDFromContext(ctx))

	inbound := &Inbound{
		Source: &net.TCPAddr{IP: net.ParseIP("127.0.0.1"), Port: 4000},
		Tag:    "reverse",
	}
	ctx = ContextWithInbound(c.ContextWithID(ctx, 7), inbound)
	assert.Same(t, inbound, InboundFromContext(ctx))
	assert.Equal(t, c.ID(7), c.IDFromContext(ctx))
}
