// Package crypto provides the AES-128 counter mode keystream used by the
// relay, along with key loading and nonce generation.
package crypto // import "github.com/xtls/xrelay/common/crypto"
