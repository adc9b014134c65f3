// Package antireplay remembers recently seen handshake nonces.
package antireplay

import (
	"github.com/xtls/xrelay/common/errors"
)

// Filter records a value and reports whether it was new. Implementations are
// safe for concurrent use.
type Filter interface {
	// Check returns false if sum has been seen within the filter's window.
	Check(sum []byte) bool
}

const (
	KindBloom  = "bloom"
	KindCuckoo = "cuckoo"
	KindMap    = "map"
	KindNone   = "none"

	// DefaultInterval is the expiration window in seconds of time-based filters.
	DefaultInterval = 120
)

// New creates the filter named by kind. An empty kind selects bloom. The
// interval only applies to the cuckoo and map filters.
func New(kind string, interval int64) (Filter, error) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	switch kind {
	case "", KindBloom:
		return NewBloomRing(), nil
	case KindCuckoo:
		return NewReplayFilter(interval), nil
	case KindMap:
		return NewMapFilter(interval), nil
	case KindNone:
		return nil, nil
	default:
		return nil, errors.New("unknown replay filter: ", kind)
	}
}
