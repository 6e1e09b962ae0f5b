package cipher

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. The typed errors below unwrap to these so callers can
// match with errors.Is without caring about the details.
var (
	ErrInvalidKey       = errors.New("key must be a positive integer")
	ErrInvalidAlphabet  = errors.New("alphabet cannot be empty")
	ErrInvalidCharacter = errors.New("text contains characters outside the alphabet")
)

// InvalidKeyError reports a key that cannot describe a grid width.
type InvalidKeyError struct {
	Key int
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid key %d: %v", e.Key, ErrInvalidKey)
}

func (e *InvalidKeyError) Unwrap() error { return ErrInvalidKey }

// InvalidAlphabetError reports an empty alphabet.
type InvalidAlphabetError struct{}

func (e *InvalidAlphabetError) Error() string {
	return ErrInvalidAlphabet.Error()
}

func (e *InvalidAlphabetError) Unwrap() error { return ErrInvalidAlphabet }

// InvalidCharacterError reports text that contains runes outside the alphabet.
type InvalidCharacterError struct {
	// Invalid holds each offending rune once, in order of first appearance.
	Invalid []rune
	// Offset is the rune index of the first offending rune.
	Offset int
	// Ciphertext is set when the rejected text was ciphertext.
	Ciphertext bool
}

func (e *InvalidCharacterError) Error() string {
	subject := "text"
	if e.Ciphertext {
		subject = "ciphertext"
	}
	quoted := make([]string, len(e.Invalid))
	for i, r := range e.Invalid {
		quoted[i] = fmt.Sprintf("%q", r)
	}
	return fmt.Sprintf("%s contains characters outside the alphabet at offset %d: %s",
		subject, e.Offset, strings.Join(quoted, ", "))
}

func (e *InvalidCharacterError) Unwrap() error { return ErrInvalidCharacter }
