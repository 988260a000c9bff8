// Package accesscode generates the one-time numeric codes that open
// reserved compartments. Codes come from crypto/rand and are compared in
// constant time, so neither guessing nor timing reveals a valid code.
package accesscode

import (
	"crypto/rand"
	"crypto/subtle"
	"math/big"

	"lockers/internal/pkg/errs"
)

const (
	// MinCodeLength is the shortest code the issuer will produce.
	MinCodeLength = 4

	// MaxCodeLength bounds the code length; keypads on locker hardware
	// accept at most twelve digits.
	MaxCodeLength = 12

	// DefaultCodeLength matches the six-digit codes customers are used to
	// from SMS verification flows.
	DefaultCodeLength = 6
)

// RandomCodeIssuer issues fixed-length numeric access codes.
type RandomCodeIssuer struct {
	length int
}

// NewRandomCodeIssuer creates an issuer producing codes of the given number
// of digits.
func NewRandomCodeIssuer(length int) (*RandomCodeIssuer, error) {
	if length < MinCodeLength || length > MaxCodeLength {
		return nil, errs.NewValueIsOutOfRangeError("codeLength", length, MinCodeLength, MaxCodeLength)
	}

	return &RandomCodeIssuer{length: length}, nil
}

// Issue returns a fresh numeric code. Leading zeros are preserved, so every
// code has exactly the configured length.
func (i *RandomCodeIssuer) Issue() (string, error) {
	digits := make([]byte, i.length)
	for pos := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[pos] = byte('0' + n.Int64())
	}
	return string(digits), nil
}

// Validate reports whether the presented code matches the issued one.
// The comparison runs in constant time and an empty issued code never
// matches anything.
func (i *RandomCodeIssuer) Validate(issued, presented string) bool {
	if issued == "" || len(issued) != len(presented) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(issued), []byte(presented)) == 1
}
