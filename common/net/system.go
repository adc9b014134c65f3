package net

import "net"

// DialTCP is an alias of net.DialTCP.
var (
	DialTCP = net.DialTCP
	Dial    = net.Dial
)

type ListenConfig = net.ListenConfig

var (
	Listen    = net.Listen
	ListenTCP = net.ListenTCP
)

// ParseIP is an alias of net.ParseIP
var ParseIP = net.ParseIP

var (
	SplitHostPort = net.SplitHostPort
	JoinHostPort  = net.JoinHostPort
)

var Pipe = net.Pipe

type (
	Addr = net.Addr
	Conn = net.Conn
)

type (
	TCPAddr = net.TCPAddr
	TCPConn = net.TCPConn
)

// IP is an alias for net.IP.
type IP = net.IP

type (
	Error   = net.Error
	OpError = net.OpError
)

type (
	Dialer      = net.Dialer
	Listener    = net.Listener
	TCPListener = net.TCPListener
)

var ErrClosed = net.ErrClosed

var ResolveTCPAddr = net.ResolveTCPAddr
