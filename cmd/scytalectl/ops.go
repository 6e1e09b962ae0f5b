package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/VladLeus/scytale-cipher/internal/cipher"
)

func runOps(args []string) int {
	fs := flag.NewFlagSet("ops", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	opType := fs.String("type", "", "only list operations of this type (encrypt or decrypt)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var ops []cipher.Operation
	switch cipher.OperationType(*opType) {
	case "":
		ops = cipher.ListOperations()
	case cipher.OperationTypeEncrypt, cipher.OperationTypeDecrypt:
		ops = cipher.ListOperationsByType(cipher.OperationType(*opType))
	default:
		fmt.Fprintf(os.Stderr, "unknown operation type: %s\n", *opType)
		return 2
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, op := range ops {
		reverse := "-"
		if r, ok := op.Reverse(); ok {
			reverse = r.Name()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", op.Name(), op.Type(), reverse, op.Description())
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}
	return 0
}
