// Package tunnel relays TCP streams between a plaintext endpoint and an
// AES-128-CTR encrypted peer.
package tunnel

import (
	goerrors "errors"

	"github.com/xtls/xrelay/common/errors"
)

var (
	// ErrHandshake is matched by every error returned from Handshake.
	ErrHandshake = errors.New("handshake failed")
	// ErrTransport is matched by every failure of an established relay.
	ErrTransport = errors.New("transport failed")

	ErrReplay      = errors.New("peer nonce was seen before")
	ErrNonceReuse  = errors.New("peer nonce equals local nonce")
	ErrPeerCounter = errors.New("peer register has a non-zero counter")
)

type handshakeError struct {
	error
}

func (e handshakeError) Error() string {
	return e.error.Error()
}

func (e handshakeError) Unwrap() error {
	return e.error
}

func (e handshakeError) Is(target error) bool {
	return target == ErrHandshake
}

// IsHandshakeError returns true if err comes from the handshake.
func IsHandshakeError(err error) bool {
	return goerrors.Is(err, ErrHandshake)
}

type transportError struct {
	error
}

func (e transportError) Error() string {
	return e.error.Error()
}

func (e transportError) Unwrap() error {
	return e.error
}

func (e transportError) Is(target error) bool {
	return target == ErrTransport
}

// IsTransportError returns true if err ended an established relay.
func IsTransportError(err error) bool {
	return goerrors.Is(err, ErrTransport)
}
