package cipher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestPipelineExecution(t *testing.T) {
	tests := []struct {
		name       string
		operations []OperationConfig
		input      string
		expected   string
	}{
		{
			name: "single operation",
			operations: []OperationConfig{
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 4}},
			},
			input:    "ШИФР СКИТАЛА",
			expected: "Ш ТИСАФКЛРИА",
		},
		{
			name: "double transposition",
			operations: []OperationConfig{
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 3}},
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 5}},
			},
			input:    "ЗУСТРІЧ ОПІВНОЧІ",
			expected: "ЗІОЧТУСЧРІП ОНІВ",
		},
		{
			name: "encrypt then decrypt",
			operations: []OperationConfig{
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 6}},
				{Name: OpScytaleDecrypt, Parameters: map[string]interface{}{"key": 6}},
			},
			input:    "ЗУСТРІЧ ОПІВНОЧІ",
			expected: "ЗУСТРІЧ ОПІВНОЧІ",
		},
		{
			name:       "empty pipeline",
			operations: nil,
			input:      "БУДЬ-ЩО",
			expected:   "БУДЬ-ЩО",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &Pipeline{
				Operations: tt.operations,
				Reversible: true,
			}

			result, err := pipeline.Execute(ctx, []byte(tt.input))
			if err != nil {
				t.Fatalf("pipeline execution failed: %v", err)
			}

			if string(result) != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, string(result))
			}
		})
	}
}

func TestPipelineReversibility(t *testing.T) {
	tests := []struct {
		name       string
		operations []OperationConfig
		input      string
	}{
		{
			name: "single step",
			operations: []OperationConfig{
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 4}},
			},
			input: "ШИФР СКИТАЛА",
		},
		{
			name: "three keys",
			operations: []OperationConfig{
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 2}},
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 7}},
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 3}},
			},
			input: "ЗУСТРІЧ ОПІВНОЧІ БІЛЯ СТАРОГО МЛИНА",
		},
		{
			name: "custom alphabet",
			operations: []OperationConfig{
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 3, "alphabet": latin}},
				{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 4, "alphabet": latin}},
			},
			input: "ABCDEFGHIJK",
		},
	}

	ctx := context.Background()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pipeline := &Pipeline{
				Operations: tt.operations,
				Reversible: true,
			}

			encoded, err := pipeline.Execute(ctx, []byte(tt.input))
			if err != nil {
				t.Fatalf("forward pipeline failed: %v", err)
			}

			reversed, err := pipeline.Reverse()
			if err != nil {
				t.Fatalf("failed to reverse pipeline: %v", err)
			}

			decoded, err := reversed.Execute(ctx, encoded)
			if err != nil {
				t.Fatalf("reverse pipeline failed: %v", err)
			}

			if string(decoded) != tt.input {
				t.Errorf("roundtrip failed: expected %q, got %q", tt.input, string(decoded))
			}
		})
	}
}

func TestPipelineReverseOrder(t *testing.T) {
	pipeline := &Pipeline{
		Operations: []OperationConfig{
			{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 2}},
			{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 9}},
		},
		Reversible: true,
	}

	reversed, err := pipeline.Reverse()
	if err != nil {
		t.Fatalf("reverse: %v", err)
	}
	if len(reversed.Operations) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(reversed.Operations))
	}
	if reversed.Operations[0].Name != OpScytaleDecrypt || reversed.Operations[0].Parameters["key"] != 9 {
		t.Errorf("unexpected first step: %+v", reversed.Operations[0])
	}
	if reversed.Operations[1].Name != OpScytaleDecrypt || reversed.Operations[1].Parameters["key"] != 2 {
		t.Errorf("unexpected second step: %+v", reversed.Operations[1])
	}
}

func TestPipelineErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown operation", func(t *testing.T) {
		pipeline := &Pipeline{Operations: []OperationConfig{{Name: "rot13"}}}
		if _, err := pipeline.Execute(ctx, []byte("АБВ")); err == nil {
			t.Fatal("expected error for unknown operation")
		}
		if _, err := (&Pipeline{Operations: pipeline.Operations, Reversible: true}).Reverse(); err == nil {
			t.Fatal("expected error reversing unknown operation")
		}
	})

	t.Run("not reversible", func(t *testing.T) {
		pipeline := &Pipeline{Operations: []OperationConfig{{Name: OpScytaleEncrypt}}}
		if _, err := pipeline.Reverse(); err == nil {
			t.Fatal("expected error for non-reversible pipeline")
		}
	})

	t.Run("step failure is wrapped", func(t *testing.T) {
		pipeline := &Pipeline{Operations: []OperationConfig{
			{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 2}},
			{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": -1}},
		}}
		_, err := pipeline.Execute(ctx, []byte("АБВ"))
		if !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("expected ErrInvalidKey, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		pipeline := &Pipeline{Operations: []OperationConfig{
			{Name: OpScytaleEncrypt, Parameters: map[string]interface{}{"key": 2}},
		}}
		_, err := pipeline.Execute(cancelled, []byte("АБВ"))
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestPipelineFromJSON(t *testing.T) {
	raw := `{
		"operations": [
			{"name": "scytale_encrypt", "parameters": {"key": 3}},
			{"name": "scytale_encrypt", "parameters": {"key": 5}}
		],
		"reversible": true
	}`

	var pipeline Pipeline
	if err := json.Unmarshal([]byte(raw), &pipeline); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	result, err := pipeline.Execute(context.Background(), []byte("ЗУСТРІЧ ОПІВНОЧІ"))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if string(result) != "ЗІОЧТУСЧРІП ОНІВ" {
		t.Errorf("unexpected result %q", string(result))
	}
}
