package crypto

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/xtls/xrelay/common/errors"
)

// NonceSize is the size of the random half of a Register.
const NonceSize = 8

// NewNonce draws a 64-bit nonce from random. A nil random uses crypto/rand.
func NewNonce(random io.Reader) (uint64, error) {
	if random == nil {
		random = rand.Reader
	}
	var b [NonceSize]byte
	if _, err := io.ReadFull(random, b[:]); err != nil {
		return 0, errors.New("random source failed").Base(err)
	}
	return binary.BigEndian.Uint64(b[:]), nil
}
