package conf

import (
	"strings"
	"time"

	"github.com/xtls/xrelay/common/antireplay"
	"github.com/xtls/xrelay/common/buf"
	"github.com/xtls/xrelay/common/crypto"
	"github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/net"
	"github.com/xtls/xrelay/infra/conf/cfgcommon/duration"
	"github.com/xtls/xrelay/proxy/tunnel"
)

const defaultHandshakeTimeout = 10 * time.Second

type KeyConfig struct {
	File   string `json:"file"`
	Format string `json:"format"`
}

type Config struct {
	LogConfig        *LogConfig         `json:"log"`
	Listen           string             `json:"listen"`
	Destination      string             `json:"destination"`
	Key              *KeyConfig         `json:"key"`
	BufferSize       int32              `json:"bufferSize"`
	HandshakeTimeout *duration.Duration `json:"handshakeTimeout"`
	IdleTimeout      duration.Duration  `json:"idleTimeout"`
	ReplayFilter     string             `json:"replayFilter"`
	SocketConfig     *SocketConfig      `json:"sockopt"`
}

// Override method accepts another Config overrides the current attribute
func (c *Config) Override(o *Config) {
	if o.LogConfig != nil {
		if c.LogConfig == nil {
			c.LogConfig = new(LogConfig)
		}
		c.LogConfig.Override(o.LogConfig)
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.Destination != "" {
		c.Destination = o.Destination
	}
	if o.Key != nil {
		if c.Key == nil {
			c.Key = new(KeyConfig)
		}
		if o.Key.File != "" {
			c.Key.File = o.Key.File
		}
		if o.Key.Format != "" {
			c.Key.Format = o.Key.Format
		}
	}
	if o.BufferSize != 0 {
		c.BufferSize = o.BufferSize
	}
	if o.HandshakeTimeout != nil {
		c.HandshakeTimeout = o.HandshakeTimeout
	}
	if o.IdleTimeout != 0 {
		c.IdleTimeout = o.IdleTimeout
	}
	if o.ReplayFilter != "" {
		c.ReplayFilter = o.ReplayFilter
	}
	if o.SocketConfig != nil {
		c.SocketConfig = o.SocketConfig
	}
}

// IsReverse reports whether the config describes the listening side.
func (c *Config) IsReverse() bool {
	return c.Listen != ""
}

// parseListen accepts "host:port", ":port" or a bare port.
func parseListen(listen string) (net.Destination, error) {
	if !strings.Contains(listen, ":") {
		listen = ":" + listen
	}
	if strings.HasPrefix(listen, ":") {
		listen = "0.0.0.0" + listen
	}
	return net.ParseDestination(listen)
}

// Build validates the config and loads the key.
func (c *Config) Build() (*tunnel.Config, error) {
	config := &tunnel.Config{
		HandshakeTimeout: defaultHandshakeTimeout,
		IdleTimeout:      c.IdleTimeout.Build(),
		SocketConfig:     c.SocketConfig.Build(),
	}

	if c.Destination == "" {
		return nil, errors.New("destination is not specified")
	}
	dest, err := net.ParseDestination(c.Destination)
	if err != nil {
		return nil, errors.New("invalid destination").Base(err)
	}
	config.Destination = dest

	if c.IsReverse() {
		listen, err := parseListen(c.Listen)
		if err != nil {
			return nil, errors.New("invalid listen address").Base(err)
		}
		config.Listen = listen

		filter, err := antireplay.New(c.ReplayFilter, antireplay.DefaultInterval)
		if err != nil {
			return nil, err
		}
		config.ReplayFilter = filter
	}

	if c.Key == nil || c.Key.File == "" {
		return nil, errors.New("key file is not specified")
	}
	key, err := crypto.LoadKeyFile(c.Key.File, c.Key.Format)
	if err != nil {
		return nil, err
	}
	config.Key = key

	if c.BufferSize < 0 || c.BufferSize > buf.Size {
		return nil, errors.New("bufferSize must be between 1 and ", buf.Size, ", got ", c.BufferSize)
	}
	config.BufferSize = c.BufferSize

	if c.HandshakeTimeout != nil {
		config.HandshakeTimeout = c.HandshakeTimeout.Build()
	}
	if config.HandshakeTimeout < 0 || config.IdleTimeout < 0 {
		return nil, errors.New("timeouts must not be negative")
	}

	return config, nil
}
