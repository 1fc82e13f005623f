// Package checksum fingerprints uploaded files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrMismatch = errors.New("checksum mismatch")

// Sum is the lowercase hex sha256 of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Matcher checks an upload against the checksum the client declared.
type Matcher struct {
	expected string
}

func NewMatcher(expected string) *Matcher {
	return &Matcher{expected: strings.ToLower(strings.TrimSpace(expected))}
}

// Match returns the computed sum, and ErrMismatch when it differs from the
// declared one. An empty declaration matches anything.
func (m *Matcher) Match(data []byte) (string, error) {
	sum := Sum(data)
	if m.expected != "" && sum != m.expected {
		return sum, ErrMismatch
	}
	return sum, nil
}
