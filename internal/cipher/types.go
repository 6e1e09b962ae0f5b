package cipher

import (
	"context"
	"fmt"
)

// OperationType defines the direction of a transformation operation
type OperationType string

const (
	OperationTypeEncrypt OperationType = "encrypt"
	OperationTypeDecrypt OperationType = "decrypt"
)

// Operation represents a single transformation that can be applied to data
type Operation interface {
	// Name returns the unique identifier for this operation
	Name() string

	// Type returns the direction of this operation
	Type() OperationType

	// Description returns a human-readable description
	Description() string

	// Execute applies the operation to UTF-8 input
	Execute(ctx context.Context, input []byte, params map[string]interface{}) ([]byte, error)

	// Reverse returns the inverse operation if available
	Reverse() (Operation, bool)
}

// OperationConfig represents configuration for an operation in a pipeline
type OperationConfig struct {
	Name       string                 `json:"name" toml:"op"`
	Parameters map[string]interface{} `json:"parameters,omitempty" toml:"params"`
}

// Pipeline represents a chain of operations that are applied sequentially
type Pipeline struct {
	Operations []OperationConfig `json:"operations"`
	Reversible bool              `json:"reversible"`
}

// Execute runs the pipeline on the input data
func (p *Pipeline) Execute(ctx context.Context, input []byte) ([]byte, error) {
	result := input
	var err error

	for i, opConfig := range p.Operations {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline cancelled before step %d: %w", i, err)
		}

		op, exists := GetOperation(opConfig.Name)
		if !exists {
			return nil, fmt.Errorf("unknown operation at step %d: %s", i, opConfig.Name)
		}

		result, err = op.Execute(ctx, result, opConfig.Parameters)
		if err != nil {
			return nil, fmt.Errorf("operation %s failed at step %d: %w", opConfig.Name, i, err)
		}
	}

	return result, nil
}

// Reverse creates a reversed pipeline if all operations are reversible
func (p *Pipeline) Reverse() (*Pipeline, error) {
	if !p.Reversible {
		return nil, fmt.Errorf("pipeline is not reversible")
	}

	reversed := &Pipeline{
		Operations: make([]OperationConfig, len(p.Operations)),
		Reversible: true,
	}

	// Each step keeps its parameters; only the direction flips.
	for i, opConfig := range p.Operations {
		op, exists := GetOperation(opConfig.Name)
		if !exists {
			return nil, fmt.Errorf("unknown operation: %s", opConfig.Name)
		}

		reverseOp, ok := op.Reverse()
		if !ok {
			return nil, fmt.Errorf("operation %s is not reversible", opConfig.Name)
		}

		reversed.Operations[len(p.Operations)-1-i] = OperationConfig{
			Name:       reverseOp.Name(),
			Parameters: opConfig.Parameters,
		}
	}

	return reversed, nil
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	NameValue        string
	TypeValue        OperationType
	DescriptionValue string
	ReverseOp        Operation
}

func (b *BaseOperation) Name() string {
	return b.NameValue
}

func (b *BaseOperation) Type() OperationType {
	return b.TypeValue
}

func (b *BaseOperation) Description() string {
	return b.DescriptionValue
}

func (b *BaseOperation) Reverse() (Operation, bool) {
	if b.ReverseOp == nil {
		return nil, false
	}
	return b.ReverseOp, true
}
