// Package tokens signs and verifies lock tokens and encodes the record that
// travels inside a scannable code.
//
// A token binds its identifier to its expiry:
//
//	signature = hex(HMAC-SHA256(secret, "<tokenId>:<expiry>"))
//
// where expiry is in seconds since the Unix epoch.
package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
)

var ErrNoSecret = errors.New("token signing secret is not configured")

// SecretProvider supplies the HMAC key. It is consulted once, when the codec
// is built.
type SecretProvider interface {
	Secret() ([]byte, error)
}

// StaticSecret is a SecretProvider backed by a configuration value.
type StaticSecret string

func (s StaticSecret) Secret() ([]byte, error) {
	return []byte(s), nil
}

// Codec computes and checks token signatures.
type Codec struct {
	key []byte
}

// NewCodec reads the secret from p. An empty secret is an error: the server
// must not start without one.
func NewCodec(p SecretProvider) (*Codec, error) {
	key, err := p.Secret()
	if err != nil {
		return nil, err
	}
	if len(key) == 0 {
		return nil, ErrNoSecret
	}
	return &Codec{key: key}, nil
}

func (c *Codec) mac(tokenID string, expiry int64) []byte {
	h := hmac.New(sha256.New, c.key)
	h.Write([]byte(tokenID + ":" + strconv.FormatInt(expiry, 10)))
	return h.Sum(nil)
}

// Sign returns the hex signature for (tokenID, expiry).
func (c *Codec) Sign(tokenID string, expiry int64) string {
	return hex.EncodeToString(c.mac(tokenID, expiry))
}

// Verify recomputes the signature and compares it in constant time.
func (c *Codec) Verify(tokenID string, expiry int64, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, c.mac(tokenID, expiry))
}
