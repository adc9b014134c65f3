package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"os"

	"github.com/xtls/xrelay/common/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// KeySize is the size of the pre-shared AES-128 key.
	KeySize = 16

	// KeyFormatRaw is a key file holding exactly KeySize raw bytes.
	KeyFormatRaw = "raw"
	// KeyFormatPassphrase is a key file holding a passphrase that is stretched with PBKDF2.
	KeyFormatPassphrase = "passphrase"

	passphraseSalt       = "xrelay/aes-128-ctr/v1"
	passphraseIterations = 4096
)

var ErrInvalidKeySize = errors.New("key must be exactly 16 bytes")

// Key is the shared static secret together with its expanded AES round keys.
// It is immutable and safe for concurrent use.
type Key struct {
	block cipher.Block
}

// NewKey expands a 16 byte key.
func NewKey(raw []byte) (*Key, error) {
	if len(raw) != KeySize {
		return nil, errors.New("got ", len(raw), " bytes").Base(ErrInvalidKeySize)
	}
	block, err := aes.NewCipher(raw)
	if err != nil {
		return nil, errors.New("failed to expand key").Base(err)
	}
	return &Key{block: block}, nil
}

// DeriveKey stretches a passphrase into a Key with PBKDF2-SHA256.
func DeriveKey(passphrase []byte) (*Key, error) {
	raw := pbkdf2.Key(passphrase, []byte(passphraseSalt), passphraseIterations, KeySize, sha256.New)
	return NewKey(raw)
}

// Block returns the AES block cipher of this key.
func (k *Key) Block() cipher.Block {
	return k.block
}

// LoadKey reads key material in the given format from r.
func LoadKey(r io.Reader, format string) (*Key, error) {
	switch format {
	case "", KeyFormatRaw:
		raw, err := io.ReadAll(io.LimitReader(r, KeySize+1))
		if err != nil {
			return nil, errors.New("failed to read key").Base(err)
		}
		return NewKey(raw)
	case KeyFormatPassphrase:
		passphrase, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.New("failed to read passphrase").Base(err)
		}
		passphrase = bytes.TrimSpace(passphrase)
		if len(passphrase) == 0 {
			return nil, errors.New("empty passphrase")
		}
		return DeriveKey(passphrase)
	default:
		return nil, errors.New("unknown key format: ", format)
	}
}

// LoadKeyFile reads a key file from disk.
func LoadKeyFile(path string, format string) (*Key, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.New("failed to open key file ", path).Base(err)
	}
	defer file.Close()

	key, err := LoadKey(file, format)
	if err != nil {
		return nil, errors.New("failed to load key file ", path).Base(err)
	}
	return key, nil
}

// GenerateKey draws a fresh raw key. A nil random uses crypto/rand.
func GenerateKey(random io.Reader) ([]byte, error) {
	if random == nil {
		random = rand.Reader
	}
	raw := make([]byte, KeySize)
	if _, err := io.ReadFull(random, raw); err != nil {
		return nil, errors.New("failed to generate key").Base(err)
	}
	return raw, nil
}
