// Package signature authenticates aggregator payloads with HMAC-SHA256
// over a canonical JSON serialization.
//
// Contract with the aggregator: the digest covers the FULL payload with
// the "signature" field removed, serialized per Canonical, keyed by the
// shared secret, rendered as lowercase hex.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const Field = "signature"

type Signer struct {
	secret []byte
}

func NewSigner(secret []byte) *Signer {
	return &Signer{secret: secret}
}

// Sign computes the hex digest of payload with the signature field
// excluded. The input map is not modified.
func (s *Signer) Sign(payload map[string]any) (string, error) {
	stripped := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == Field {
			continue
		}
		stripped[k] = v
	}

	canonical, err := Canonical(stripped)
	if err != nil {
		return "", fmt.Errorf("signature.Sign: %w", err)
	}

	mac := hmac.New(sha256.New, s.secret)
	mac.Write(canonical)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

// Verify recomputes the payload digest and compares it against the
// presented signature in constant time. It never panics and never
// returns an error: a malformed payload, an empty secret or a length
// mismatch all verify as false.
func (s *Signer) Verify(payload map[string]any, presented string) bool {
	if len(s.secret) == 0 || presented == "" {
		return false
	}

	expected, err := s.Sign(payload)
	if err != nil {
		return false
	}

	return hmac.Equal([]byte(expected), []byte(presented))
}
