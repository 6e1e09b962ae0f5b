package cipher

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestScytaleOperations(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		params   map[string]interface{}
		expected string
	}{
		{"int key", "ШИФР СКИТАЛА", map[string]interface{}{"key": 4}, "Ш ТИСАФКЛРИА"},
		{"json key", "ШИФР СКИТАЛА", map[string]interface{}{"key": float64(4)}, "Ш ТИСАФКЛРИА"},
		{"toml key", "ШИФР СКИТАЛА", map[string]interface{}{"key": int64(4)}, "Ш ТИСАФКЛРИА"},
		{"string key", "ШИФР СКИТАЛА", map[string]interface{}{"key": " 4 "}, "Ш ТИСАФКЛРИА"},
		{"custom alphabet", "ABCDE", map[string]interface{}{"key": 3, "alphabet": "ABCDE"}, "ADBEC"},
		{"permissive", "ПРИВІТ, СВІТЕ!", map[string]interface{}{"key": 3, "policy": "permissive"}, "ПВ ІРІСТИТВЕ"},
		{"empty input", "", map[string]interface{}{"key": 3}, ""},
		{"huge key", "ШИФР СКИТАЛА", map[string]interface{}{"key": math.MaxInt}, "ШИФР СКИТАЛА"},
	}

	ctx := context.Background()
	encoder, _ := GetOperation(OpScytaleEncrypt)
	decoder, _ := GetOperation(OpScytaleDecrypt)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := encoder.Execute(ctx, []byte(tt.input), tt.params)
			if err != nil {
				t.Fatalf("encrypt failed: %v", err)
			}
			if string(encoded) != tt.expected {
				t.Errorf("encrypt: expected %q, got %q", tt.expected, string(encoded))
			}

			decoded, err := decoder.Execute(ctx, encoded, tt.params)
			if err != nil {
				t.Fatalf("decrypt failed: %v", err)
			}
			if string(decoded) != Filter(tt.input, NewAlphabet(alphabetParam(tt.params))) {
				t.Errorf("decrypt: got %q", string(decoded))
			}
		})
	}
}

func alphabetParam(params map[string]interface{}) string {
	if a, ok := params["alphabet"].(string); ok {
		return a
	}
	return DefaultAlphabet
}

func TestScytaleOperationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		params  map[string]interface{}
		wantErr string
		target  error
	}{
		{"missing key", []byte("АБВ"), nil, `missing required parameter "key"`, nil},
		{"zero key", []byte("АБВ"), map[string]interface{}{"key": 0}, "invalid key 0", ErrInvalidKey},
		{"negative key", []byte("АБВ"), map[string]interface{}{"key": "-3"}, "invalid key -3", ErrInvalidKey},
		{"fractional key", []byte("АБВ"), map[string]interface{}{"key": 2.5}, "must be an integer", nil},
		{"bad key type", []byte("АБВ"), map[string]interface{}{"key": true}, "must be an integer", nil},
		{"bad alphabet type", []byte("АБВ"), map[string]interface{}{"key": 2, "alphabet": 7}, "must be a string", nil},
		{"empty alphabet", []byte("АБВ"), map[string]interface{}{"key": 2, "alphabet": ""}, "alphabet cannot be empty", ErrInvalidAlphabet},
		{"unknown policy", []byte("АБВ"), map[string]interface{}{"key": 2, "policy": "loose"}, "unknown policy", nil},
		{"strict foreign rune", []byte("АБ!"), map[string]interface{}{"key": 2}, "outside the alphabet", ErrInvalidCharacter},
		{"invalid utf8", []byte{0xff, 0xfe}, map[string]interface{}{"key": 2}, "not valid UTF-8", nil},
	}

	ctx := context.Background()
	encoder, _ := GetOperation(OpScytaleEncrypt)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encoder.Execute(ctx, tt.input, tt.params)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %q", tt.wantErr, err.Error())
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected errors.Is(%v), got %v", tt.target, err)
			}
		})
	}
}

func TestOperationMetadata(t *testing.T) {
	encoder, ok := GetOperation(OpScytaleEncrypt)
	if !ok {
		t.Fatal("scytale_encrypt not registered")
	}
	if encoder.Type() != OperationTypeEncrypt {
		t.Errorf("expected type %q, got %q", OperationTypeEncrypt, encoder.Type())
	}
	if encoder.Description() == "" {
		t.Error("expected description")
	}

	reverse, ok := encoder.Reverse()
	if !ok {
		t.Fatal("scytale_encrypt should be reversible")
	}
	if reverse.Name() != OpScytaleDecrypt {
		t.Errorf("expected reverse %q, got %q", OpScytaleDecrypt, reverse.Name())
	}

	back, _ := reverse.Reverse()
	if back.Name() != OpScytaleEncrypt {
		t.Errorf("expected reverse of reverse to be %q, got %q", OpScytaleEncrypt, back.Name())
	}
}
