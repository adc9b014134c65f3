package crypto_test

import (
	"bytes"
	goerrors "errors"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/xtls/xrelay/common/crypto"
)

func TestNewNonceFromReader(t *testing.T) {
	nonce, err := NewNonce(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), nonce)

	_, err = NewNonce(bytes.NewReader([]byte{1, 2, 3}))
	assert.Error(t, err)

	_, err = NewNonce(iotest.ErrReader(goerrors.New("exhausted")))
	assert.Error(t, err)
}

func TestNewNonceUnique(t *testing.T) {
	const n = 100000
	seen := make(map[uint64]struct{}, n)
	for i := 0; i < n; i++ {
		nonce, err := NewNonce(nil)
		require.NoError(t, err)
		_, dup := seen[nonce]
		require.False(t, dup, "nonce collision after %d draws", i)
		seen[nonce] = struct{}{}
	}
}

// Truncating nonces to 16 bits makes the birthday bound observable: n draws
// should produce about n(n-1)/2/2^16 colliding pairs.
func TestNewNonceBirthdayBound(t *testing.T) {
	const n = 2000
	counts := make(map[uint16]int)
	for i := 0; i < n; i++ {
		nonce, err := NewNonce(nil)
		require.NoError(t, err)
		counts[uint16(nonce>>48)]++
	}

	pairs := 0
	for _, c := range counts {
		pairs += c * (c - 1) / 2
	}
	expected := float64(n) * float64(n-1) / 2 / 65536
	assert.InDelta(t, expected, float64(pairs), expected, "colliding pairs %d, expected about %.1f", pairs, expected)
}
