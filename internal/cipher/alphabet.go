package cipher

// DefaultAlphabet is the Ukrainian alphabet followed by a space. Existing
// ciphertexts depend on it, so it must not change.
const DefaultAlphabet = "АБВГҐДЕЄЖЗИІЇЙКЛМНОПРСТУФХЦЧШЩЬЮЯ "

// Alphabet is an ordered set of runes with constant-time membership.
// The zero value is an empty alphabet.
type Alphabet struct {
	symbols []rune
	set     map[rune]struct{}
}

// NewAlphabet builds an alphabet from the runes of s. Repeated runes keep
// their first position.
func NewAlphabet(s string) *Alphabet {
	a := &Alphabet{set: make(map[rune]struct{}, len(s))}
	for _, r := range s {
		if _, seen := a.set[r]; seen {
			continue
		}
		a.set[r] = struct{}{}
		a.symbols = append(a.symbols, r)
	}
	return a
}

// Default returns a fresh copy of DefaultAlphabet.
func Default() *Alphabet {
	return NewAlphabet(DefaultAlphabet)
}

// Contains reports whether r belongs to the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	if a == nil {
		return false
	}
	_, ok := a.set[r]
	return ok
}

// Len returns the number of distinct runes.
func (a *Alphabet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.symbols)
}

// Empty reports whether the alphabet has no runes.
func (a *Alphabet) Empty() bool {
	return a.Len() == 0
}

// String returns the runes in their original order, duplicates removed.
func (a *Alphabet) String() string {
	if a == nil {
		return ""
	}
	return string(a.symbols)
}
