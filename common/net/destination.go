package net

import (
	"strings"

	"github.com/xtls/xrelay/common/errors"
)

// Destination is a TCP endpoint: a host name or IP literal plus a port.
type Destination struct {
	Address string
	Port    Port
}

// TCPDestination creates a TCP destination with given address
func TCPDestination(address string, port Port) Destination {
	return Destination{
		Address: address,
		Port:    port,
	}
}

// DestinationFromAddr generates a Destination from a net address.
func DestinationFromAddr(addr Addr) Destination {
	switch addr := addr.(type) {
	case *TCPAddr:
		return TCPDestination(addr.IP.String(), Port(addr.Port))
	default:
		host, port, err := SplitHostPort(addr.String())
		if err != nil {
			return Destination{}
		}
		p, _ := PortFromString(port)
		return TCPDestination(host, p)
	}
}

// ParseDestination converts a destination from its string presentation,
// "host:port" with an optional "tcp:" prefix.
func ParseDestination(dest string) (Destination, error) {
	dest = strings.TrimPrefix(dest, "tcp:")
	host, port, err := SplitHostPort(dest)
	if err != nil {
		return Destination{}, errors.New("invalid destination ", dest).Base(err)
	}
	p, err := PortFromString(port)
	if err != nil {
		return Destination{}, err
	}
	d := TCPDestination(host, p)
	if !d.IsValid() {
		return Destination{}, errors.New("invalid destination ", dest)
	}
	return d, nil
}

// NetAddr returns the network address in this Destination in string form.
func (d Destination) NetAddr() string {
	return JoinHostPort(d.Address, d.Port.String())
}

// String returns the strings form of this Destination.
func (d Destination) String() string {
	return "tcp:" + d.NetAddr()
}

// IsValid returns true if this Destination is valid.
func (d Destination) IsValid() bool {
	return d.Address != "" && d.Port != 0
}
