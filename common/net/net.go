// Package net is a drop-in replacement to Golang's net package, with some more functionalities.
package net // import "github.com/xtls/xrelay/common/net"

import "time"

// DefaultDialTimeout bounds how long the relay waits for a TCP connect.
const DefaultDialTimeout = 16 * time.Second
