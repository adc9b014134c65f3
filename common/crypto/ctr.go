package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/xtls/xrelay/common/errors"
)

const (
	// BlockSize is the AES block size, also the size of one keystream block.
	BlockSize = aes.BlockSize
	// RegisterSize is the wire size of a Register.
	RegisterSize = 16
)

var ErrCounterExhausted = errors.New("block counter exhausted")

// Register is a 128-bit counter block: a per-connection nonce in the high
// half and a block counter in the low half, both big-endian on the wire.
type Register struct {
	Nonce   uint64
	Counter uint64
}

// NewRegister returns the initial register for nonce.
func NewRegister(nonce uint64) Register {
	return Register{Nonce: nonce}
}

// ParseRegister decodes a 16 byte register.
func ParseRegister(b []byte) (Register, error) {
	if len(b) != RegisterSize {
		return Register{}, errors.New("invalid register size ", len(b))
	}
	return Register{
		Nonce:   binary.BigEndian.Uint64(b[:NonceSize]),
		Counter: binary.BigEndian.Uint64(b[NonceSize:]),
	}, nil
}

// Put encodes the register into b, which must be at least RegisterSize bytes.
func (r Register) Put(b []byte) {
	binary.BigEndian.PutUint64(b[:NonceSize], r.Nonce)
	binary.BigEndian.PutUint64(b[NonceSize:RegisterSize], r.Counter)
}

// Bytes returns the wire form of the register.
func (r Register) Bytes() []byte {
	b := make([]byte, RegisterSize)
	r.Put(b)
	return b
}

func (r Register) String() string {
	return hex.EncodeToString(r.Bytes())
}

// CounterState is the position in one direction's keystream. It is not safe
// for concurrent use; each direction of a connection owns exactly one.
type CounterState struct {
	block     cipher.Block
	register  Register
	cache     [BlockSize]byte
	offset    int
	exhausted bool
}

// NewCounterState starts a keystream at register under key.
func NewCounterState(key *Key, register Register) *CounterState {
	return &CounterState{
		block:    key.Block(),
		register: register,
		offset:   BlockSize,
	}
}

// Register returns the register of the next keystream block to be generated.
func (s *CounterState) Register() Register {
	return s.register
}

// Transform XORs src with the keystream into dst and advances the state.
// Splitting an input across several calls yields the same output as a
// single call. dst and src may overlap entirely or not at all. It fails
// with ErrCounterExhausted once all 2^64 blocks of the register are used.
func (s *CounterState) Transform(dst, src []byte) error {
	if len(dst) < len(src) {
		panic("crypto: output smaller than input")
	}
	for i := 0; i < len(src); {
		if s.offset == BlockSize {
			if err := s.refill(); err != nil {
				return err
			}
		}
		n := subtle.XORBytes(dst[i:], src[i:], s.cache[s.offset:])
		s.offset += n
		i += n
	}
	return nil
}

func (s *CounterState) refill() error {
	if s.exhausted {
		return ErrCounterExhausted
	}
	var in [BlockSize]byte
	s.register.Put(in[:])
	s.block.Encrypt(s.cache[:], in[:])
	if s.register.Counter == math.MaxUint64 {
		s.exhausted = true
	} else {
		s.register.Counter++
	}
	s.offset = 0
	return nil
}

// Reset wipes the state. Any later Transform fails.
func (s *CounterState) Reset() {
	for i := range s.cache {
		s.cache[i] = 0
	}
	s.register = Register{}
	s.offset = BlockSize
	s.block = nil
	s.exhausted = true
}
