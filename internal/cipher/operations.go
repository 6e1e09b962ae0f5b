package cipher

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Operation parameter names.
const (
	ParamKey      = "key"
	ParamAlphabet = "alphabet"
	ParamPolicy   = "policy"
)

// Registered operation names.
const (
	OpScytaleEncrypt = "scytale_encrypt"
	OpScytaleDecrypt = "scytale_decrypt"
)

// ScytaleEncryptOp transposes UTF-8 plaintext with the Scytale cipher
type ScytaleEncryptOp struct {
	BaseOperation
}

func (op *ScytaleEncryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	s, err := scytaleFromParams(params)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(input) {
		return nil, fmt.Errorf("scytale encrypt: input is not valid UTF-8")
	}
	out, err := s.Encrypt(string(input))
	if err != nil {
		return nil, fmt.Errorf("scytale encrypt: %w", err)
	}
	return []byte(out), nil
}

// ScytaleDecryptOp restores plaintext produced by ScytaleEncryptOp
type ScytaleDecryptOp struct {
	BaseOperation
}

func (op *ScytaleDecryptOp) Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error) {
	s, err := scytaleFromParams(params)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(input) {
		return nil, fmt.Errorf("scytale decrypt: input is not valid UTF-8")
	}
	out, err := s.Decrypt(string(input))
	if err != nil {
		return nil, fmt.Errorf("scytale decrypt: %w", err)
	}
	return []byte(out), nil
}

func scytaleFromParams(params map[string]interface{}) (*Scytale, error) {
	key, err := intParam(params, ParamKey)
	if err != nil {
		return nil, err
	}

	alphabet := DefaultAlphabet
	if raw, ok := params[ParamAlphabet]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a string, got %T", ParamAlphabet, raw)
		}
		alphabet = s
	}

	policyName := ""
	if raw, ok := params[ParamPolicy]; ok {
		s, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("parameter %q must be a string, got %T", ParamPolicy, raw)
		}
		policyName = s
	}
	policy, err := ParsePolicy(policyName)
	if err != nil {
		return nil, err
	}

	return New(key, alphabet, policy)
}

// intParam accepts the integer shapes produced by Go callers, JSON (float64)
// and TOML (int64) decoding, and decimal strings from the command line.
func intParam(params map[string]interface{}, name string) (int, error) {
	raw, ok := params[name]
	if !ok {
		return 0, fmt.Errorf("missing required parameter %q", name)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		if v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("parameter %q out of range: %d", name, v)
		}
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0, fmt.Errorf("parameter %q must be an integer, got %v", name, v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("parameter %q must be an integer: %w", name, err)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("parameter %q must be an integer, got %T", name, raw)
	}
}

// init registers the Scytale operations
func init() {
	encrypt := &ScytaleEncryptOp{
		BaseOperation: BaseOperation{
			NameValue:        OpScytaleEncrypt,
			TypeValue:        OperationTypeEncrypt,
			DescriptionValue: "Transpose text through a key-column Scytale grid",
		},
	}
	decrypt := &ScytaleDecryptOp{
		BaseOperation: BaseOperation{
			NameValue:        OpScytaleDecrypt,
			TypeValue:        OperationTypeDecrypt,
			DescriptionValue: "Restore text transposed by scytale_encrypt",
		},
	}
	encrypt.ReverseOp = decrypt
	decrypt.ReverseOp = encrypt

	RegisterOperation(encrypt)
	RegisterOperation(decrypt)
}
