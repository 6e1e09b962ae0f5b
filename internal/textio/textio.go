// Package textio reads and writes cipher texts in legacy Cyrillic charsets
// such as windows-1251 and koi8-u as well as UTF-8.
package textio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultCharset is used when no label is given.
const DefaultCharset = "utf-8"

const bom = "\uFEFF"

// Canonical resolves a charset label (case-insensitive, WHATWG aliases
// allowed) to its canonical name.
func Canonical(label string) (string, error) {
	label = normaliseLabel(label)
	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", label, err)
	}
	return name, nil
}

// Read decodes r from the named charset into a UTF-8 string. A leading
// byte order mark and a single trailing line ending are removed.
func Read(r io.Reader, label string) (string, error) {
	label = normaliseLabel(label)
	decoded, err := charset.NewReaderLabel(label, r)
	if err != nil {
		return "", fmt.Errorf("open %s reader: %w", label, err)
	}
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", label, err)
	}
	text := strings.TrimPrefix(string(data), bom)
	switch {
	case strings.HasSuffix(text, "\r\n"):
		text = text[:len(text)-2]
	case strings.HasSuffix(text, "\n"):
		text = text[:len(text)-1]
	}
	return text, nil
}

// ReadFile reads and decodes the file at path.
func ReadFile(path, label string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return Read(f, label)
}

// Write encodes text into the named charset. Runes the charset cannot
// represent are an error rather than being replaced.
func Write(w io.Writer, text, label string) error {
	label = normaliseLabel(label)
	enc, err := htmlindex.Get(label)
	if err != nil {
		return fmt.Errorf("unknown charset %q: %w", label, err)
	}
	encoded, err := enc.NewEncoder().String(text)
	if err != nil {
		return fmt.Errorf("encode %s: %w", label, err)
	}
	_, err = io.WriteString(w, encoded)
	return err
}

// WriteFile encodes text into the named charset and writes it to path.
func WriteFile(path, text, label string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, text, label); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func normaliseLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return DefaultCharset
	}
	return label
}
