package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedPayload = errors.New("malformed token payload")

// Payload is the only content of a scannable code. Nothing beyond these three
// fields is trusted; display data is always re-read from the policy.
type Payload struct {
	TokenID   string `json:"tokenId"`
	Expiry    int64  `json:"expiry"`
	Signature string `json:"signature"`
}

// Encode renders the payload as compact JSON.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePayload parses a scanned string. All three fields are required.
func DecodePayload(s string) (Payload, error) {
	var p Payload
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(s)))
	if err := dec.Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if p.TokenID == "" || p.Signature == "" || p.Expiry == 0 {
		return Payload{}, fmt.Errorf("%w: missing field", ErrMalformedPayload)
	}
	return p, nil
}
