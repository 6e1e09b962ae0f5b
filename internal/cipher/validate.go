package cipher

import (
	"fmt"
	"strings"
)

// Policy selects how text outside the alphabet is handled.
type Policy string

const (
	// PolicyStrict rejects text containing runes outside the alphabet.
	PolicyStrict Policy = "strict"
	// PolicyPermissive drops runes outside the alphabet before transforming.
	PolicyPermissive Policy = "permissive"
)

// ParsePolicy resolves a policy name. An empty name selects PolicyStrict.
func ParsePolicy(name string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(name))) {
	case "", PolicyStrict:
		return PolicyStrict, nil
	case PolicyPermissive:
		return PolicyPermissive, nil
	default:
		return "", fmt.Errorf("unknown policy %q (want %q or %q)", name, PolicyStrict, PolicyPermissive)
	}
}

// ValidateKey rejects keys that are not positive.
func ValidateKey(key int) error {
	if key <= 0 {
		return &InvalidKeyError{Key: key}
	}
	return nil
}

// ValidateAlphabet rejects a nil or empty alphabet.
func ValidateAlphabet(alphabet *Alphabet) error {
	if alphabet.Empty() {
		return &InvalidAlphabetError{}
	}
	return nil
}

// ValidateText rejects text containing runes outside alphabet.
func ValidateText(text string, alphabet *Alphabet) error {
	return validateText(text, alphabet, false)
}

func validateText(text string, alphabet *Alphabet, ciphertext bool) error {
	var (
		invalid []rune
		seen    map[rune]struct{}
		first   = -1
		offset  int
	)
	for _, r := range text {
		if !alphabet.Contains(r) {
			if first < 0 {
				first = offset
				seen = make(map[rune]struct{})
			}
			if _, ok := seen[r]; !ok {
				seen[r] = struct{}{}
				invalid = append(invalid, r)
			}
		}
		offset++
	}
	if first < 0 {
		return nil
	}
	return &InvalidCharacterError{Invalid: invalid, Offset: first, Ciphertext: ciphertext}
}

// Validate runs the key, alphabet and text checks in that order and
// returns the first failure.
func Validate(text string, key int, alphabet *Alphabet) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ValidateAlphabet(alphabet); err != nil {
		return err
	}
	return ValidateText(text, alphabet)
}

// Scytale binds a key, an alphabet and a policy.
type Scytale struct {
	key      int
	alphabet *Alphabet
	policy   Policy
}

// New validates key and alphabet and returns a ready cipher.
func New(key int, alphabet string, policy Policy) (*Scytale, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	a := NewAlphabet(alphabet)
	if err := ValidateAlphabet(a); err != nil {
		return nil, err
	}
	switch policy {
	case PolicyStrict, PolicyPermissive:
	default:
		return nil, fmt.Errorf("unknown policy %q", policy)
	}
	return &Scytale{key: key, alphabet: a, policy: policy}, nil
}

// Key returns the column count.
func (s *Scytale) Key() int { return s.key }

// Alphabet returns the alphabet the cipher accepts.
func (s *Scytale) Alphabet() *Alphabet { return s.alphabet }

// Policy returns how runes outside the alphabet are handled.
func (s *Scytale) Policy() Policy { return s.policy }

// Encrypt transforms plaintext. Under PolicyStrict any rune outside the
// alphabet fails with *InvalidCharacterError.
func (s *Scytale) Encrypt(text string) (string, error) {
	plain, err := s.prepare(text, false)
	if err != nil {
		return "", err
	}
	return string(encryptRunes(plain, s.key)), nil
}

// Decrypt transforms ciphertext. Under PolicyStrict any rune outside the
// alphabet fails with *InvalidCharacterError.
func (s *Scytale) Decrypt(text string) (string, error) {
	cipherText, err := s.prepare(text, true)
	if err != nil {
		return "", err
	}
	return string(decryptRunes(cipherText, s.key)), nil
}

func (s *Scytale) prepare(text string, ciphertext bool) ([]rune, error) {
	if s.policy == PolicyPermissive {
		return filterRunes(text, s.alphabet), nil
	}
	if err := validateText(text, s.alphabet, ciphertext); err != nil {
		return nil, err
	}
	return []rune(text), nil
}
