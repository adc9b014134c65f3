// Package session provides functions for sessions of incoming requests.
package session // import "github.com/xtls/xrelay/common/session"

import (
	"context"
	"math/rand"

	c "github.com/xtls/xrelay/common/ctx"
	"github.com/xtls/xrelay/common/net"
)

type sessionKey int

const (
	inboundSessionKey sessionKey = iota
)

// NewID generates a new ID. The generated ID is high likely to be unique, but not cryptographically secure.
// The generated ID will never be 0.
func NewID() c.ID {
	for {
		id := c.ID(rand.Uint32())
		if id != 0 {
			return id
		}
	}
}

// Inbound is the metadata of an inbound connection.
type Inbound struct {
	// Source address of the inbound connection.
	Source net.Addr
	// Gateway address the connection was accepted on.
	Gateway net.Addr
	// Tag of the handler that accepted the connection.
	Tag string
}

func ContextWithInbound(ctx context.Context, inbound *Inbound) context.Context {
	return context.WithValue(ctx, inboundSessionKey, inbound)
}

func InboundFromContext(ctx context.Context) *Inbound {
	if inbound, ok := ctx.Value(inboundSessionKey).(*Inbound); ok {
		return inbound
	}
	return nil
}
