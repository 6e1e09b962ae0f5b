package cipher

// Filter returns the runes of text that belong to alphabet, in their
// original order. Everything else is dropped.
func Filter(text string, alphabet *Alphabet) string {
	return string(filterRunes(text, alphabet))
}

func filterRunes(text string, alphabet *Alphabet) []rune {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		if alphabet.Contains(r) {
			out = append(out, r)
		}
	}
	return out
}

// Encrypt filters text down to alphabet and transposes it through a grid
// that is key columns wide: runes are written row by row and read back
// column by column. The last row may be short; no padding is added.
func Encrypt(text string, key int, alphabet string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return string(encryptRunes(filterRunes(text, NewAlphabet(alphabet)), key)), nil
}

// Decrypt reverses Encrypt for the same key. The alphabet is accepted for
// symmetry only; cipherText is used as given.
func Decrypt(cipherText string, key int, alphabet string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return string(decryptRunes([]rune(cipherText), key)), nil
}

// encryptRunes reads the row-major grid column by column.
func encryptRunes(plain []rune, key int) []rune {
	n := len(plain)
	cols, rows, _ := gridShape(n, key)
	out := make([]rune, 0, n)
	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			if idx := row*cols + col; idx < n {
				out = append(out, plain[idx])
			}
		}
	}
	return out
}

// decryptRunes rebuilds the row-major order from column-major ciphertext.
// Only the first n%key columns reach the last row of a ragged grid, so the
// columns are located by their heights rather than by a fixed stride.
func decryptRunes(cipherText []rune, key int) []rune {
	n := len(cipherText)
	if n == 0 {
		return []rune{}
	}
	cols, rows, full := gridShape(n, key)

	starts := make([]int, cols)
	offset := 0
	for col := 0; col < cols; col++ {
		starts[col] = offset
		offset += columnHeight(col, rows, full)
	}

	out := make([]rune, 0, n)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if row < columnHeight(col, rows, full) {
				out = append(out, cipherText[starts[col]+row])
			}
		}
	}
	return out
}

// gridShape returns the populated column count, the row count and how many
// columns reach the last row. Columns past the n-th stay empty, so a key of
// at least n is a one-row grid and the transform is the identity.
func gridShape(n, key int) (cols, rows, full int) {
	if n == 0 {
		return 0, 0, 0
	}
	cols = min(key, n)
	rows = (n-1)/cols + 1
	full = n % cols
	if full == 0 {
		full = cols
	}
	return cols, rows, full
}

func columnHeight(col, rows, full int) int {
	if col < full {
		return rows
	}
	return rows - 1
}
