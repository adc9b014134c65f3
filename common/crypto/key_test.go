package crypto_test

import (
	"bytes"
	goerrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	. "github.com/xtls/xrelay/common/crypto"
)

func TestLoadKeyRaw(t *testing.T) {
	raw := bytes.Repeat([]byte{0xab}, KeySize)
	key, err := LoadKey(bytes.NewReader(raw), KeyFormatRaw)
	require.NoError(t, err)
	require.NotNil(t, key.Block())

	for _, size := range []int{0, KeySize - 1, KeySize + 1, 64} {
		_, err := LoadKey(bytes.NewReader(make([]byte, size)), KeyFormatRaw)
		assert.True(t, goerrors.Is(err, ErrInvalidKeySize), "size %d: %v", size, err)
	}

	_, err = LoadKey(iotest.ErrReader(goerrors.New("boom")), "")
	assert.Error(t, err)
}

func TestLoadKeyPassphrase(t *testing.T) {
	a, err := LoadKey(strings.NewReader("correct horse battery staple\n"), KeyFormatPassphrase)
	require.NoError(t, err)
	b, err := DeriveKey([]byte("correct horse battery staple"))
	require.NoError(t, err)

	in := make([]byte, BlockSize)
	outA := make([]byte, BlockSize)
	outB := make([]byte, BlockSize)
	a.Block().Encrypt(outA, in)
	b.Block().Encrypt(outB, in)
	assert.Equal(t, outA, outB)

	_, err = LoadKey(strings.NewReader(" \n"), KeyFormatPassphrase)
	assert.Error(t, err)
}

func TestLoadKeyUnknownFormat(t *testing.T) {
	_, err := LoadKey(strings.NewReader("00"), "hex")
	assert.Error(t, err)
}

func TestLoadKeyFile(t *testing.T) {
	dir := t.TempDir()
	raw, err := GenerateKey(nil)
	require.NoError(t, err)
	require.Len(t, raw, KeySize)

	path := filepath.Join(dir, "key.bin")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, err = LoadKeyFile(path, KeyFormatRaw)
	require.NoError(t, err)

	_, err = LoadKeyFile(filepath.Join(dir, "missing"), KeyFormatRaw)
	assert.Error(t, err)
}

func TestGenerateKeyRandomFailure(t *testing.T) {
	_, err := GenerateKey(iotest.ErrReader(goerrors.New("no entropy")))
	assert.Error(t, err)
}
