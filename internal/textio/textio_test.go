package textio

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "ШИФР СКИТАЛА"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestReadCharsets(t *testing.T) {
	tests := []struct {
		name  string
		label string
		input []byte
	}{
		{"utf-8", "utf-8", []byte(sample)},
		{"empty label", "", []byte(sample)},
		{"windows-1251", "windows-1251", mustHex(t, "d8c8d4d020d1cac8d2c0cbc0")},
		{"cp1251 alias", "CP1251", mustHex(t, "d8c8d4d020d1cac8d2c0cbc0")},
		{"koi8-u", "koi8-u", mustHex(t, "fbe9e6f220f3ebe9f4e1ece1")},
		{"bom and newline", "utf-8", []byte("\uFEFF" + sample + "\r\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(bytes.NewReader(tt.input), tt.label)
			require.NoError(t, err)
			assert.Equal(t, sample, got)
		})
	}
}

func TestReadKeepsInnerNewlines(t *testing.T) {
	got, err := Read(strings.NewReader("А\nБ\n\n"), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, "А\nБ\n", got)
}

func TestReadUnknownCharset(t *testing.T) {
	_, err := Read(strings.NewReader(sample), "klingon")
	require.Error(t, err)
}

func TestWriteCharsets(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, "windows-1251"))
	assert.Equal(t, mustHex(t, "d8c8d4d020d1cac8d2c0cbc0"), buf.Bytes())

	buf.Reset()
	require.NoError(t, Write(&buf, "Ґ", "windows-1251"))
	assert.Equal(t, []byte{0xa5}, buf.Bytes())

	buf.Reset()
	require.NoError(t, Write(&buf, sample, ""))
	assert.Equal(t, sample, buf.String())
}

func TestWriteUnrepresentable(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Write(&buf, "世界", "windows-1251"))
	require.Error(t, Write(&buf, sample, "klingon"))
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cipher.txt")
	require.NoError(t, WriteFile(path, sample, "koi8-u"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mustHex(t, "fbe9e6f220f3ebe9f4e1ece1"), raw)

	got, err := ReadFile(path, "koi8-u")
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"), "")
	require.Error(t, err)
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"":             "utf-8",
		"UTF8":         "utf-8",
		"cp1251":       "windows-1251",
		"windows-1251": "windows-1251",
		"koi8-u":       "koi8-u",
	}
	for in, want := range tests {
		got, err := Canonical(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := Canonical("klingon")
	require.Error(t, err)
}
