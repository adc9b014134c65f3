package conf

import (
	"github.com/xtls/xrelay/transport/internet"
)

type SocketConfig struct {
	AcceptProxyProtocol bool  `json:"acceptProxyProtocol"`
	TCPKeepAliveIdle    int32 `json:"tcpKeepAliveIdle"`
	ReuseAddr           *bool `json:"reuseAddr"`
}

// Build implements Buildable.
func (c *SocketConfig) Build() *internet.SocketConfig {
	config := &internet.SocketConfig{ReuseAddr: true}
	if c == nil {
		return config
	}
	config.AcceptProxyProtocol = c.AcceptProxyProtocol
	config.TCPKeepAliveIdle = c.TCPKeepAliveIdle
	if c.ReuseAddr != nil {
		config.ReuseAddr = *c.ReuseAddr
	}
	return config
}
