package security

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Charset lists the single-byte symbols a generated secret may contain.
type Charset string

// PasswordCharset leaves out glyphs that are easy to misread (0/O, 1/l/I).
const PasswordCharset Charset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var ErrNoAcceptableSecret = errors.New("no generated secret was accepted")

// Draw returns length symbols picked uniformly from the charset. Random bytes
// at or above the largest multiple of the charset size are discarded so the
// modulo does not favour early symbols.
func (set Charset) Draw(length int) (string, error) {
	switch {
	case length < 0:
		return "", fmt.Errorf("secret length %d is negative", length)
	case length == 0:
		return "", nil
	case len(set) == 0 || len(set) > 256:
		return "", fmt.Errorf("charset size %d is outside 1..256", len(set))
	}

	size := len(set)
	ceiling := 256 - 256%size
	out := make([]byte, 0, length)
	buffer := make([]byte, length+length/2+1)
	for len(out) < length {
		if _, err := rand.Read(buffer); err != nil {
			return "", err
		}
		for _, b := range buffer {
			if int(b) >= ceiling {
				continue
			}
			out = append(out, set[int(b)%size])
			if len(out) == length {
				break
			}
		}
	}
	return string(out), nil
}

// GeneratePassword draws up to attempts candidates and returns the first one
// accept approves.
func GeneratePassword(set Charset, length int, attempts int, accept func(string) bool) (string, error) {
	for range attempts {
		candidate, err := set.Draw(length)
		if err != nil {
			return "", err
		}
		if accept == nil || accept(candidate) {
			return candidate, nil
		}
	}
	return "", ErrNoAcceptableSecret
}
