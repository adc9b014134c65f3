package internet

// SocketConfig holds the socket options of the listener and of dialed connections.
type SocketConfig struct {
	// ReuseAddr sets SO_REUSEADDR on the listening socket.
	ReuseAddr bool
	// AcceptProxyProtocol makes the listener require a PROXY protocol header
	// on every accepted connection.
	AcceptProxyProtocol bool
	// TCPKeepAliveIdle in seconds. 0 keeps the system default, negative disables keepalive.
	TCPKeepAliveIdle int32
}
