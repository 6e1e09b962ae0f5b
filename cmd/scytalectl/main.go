package main

import (
	"flag"
	"fmt"
	"os"
)

const productName = "scytale"
const cliBanner = productName + " CLI (scytalectl)"

func init() {
	defaultUsage := flag.Usage
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintln(out, cliBanner)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Commands:")
		fmt.Fprintln(out, "  encrypt     transpose plaintext with the Scytale cipher")
		fmt.Fprintln(out, "  decrypt     restore plaintext from Scytale ciphertext")
		fmt.Fprintln(out, "  validate    check key, alphabet and text without transforming")
		fmt.Fprintln(out, "  pipeline    run a configured preset; steps inherit -alphabet and -policy")
		fmt.Fprintln(out, "  ops         list registered operations")
		fmt.Fprintln(out, "  config      print or check the resolved configuration")
		fmt.Fprintln(out, "  version     print the version")
		fmt.Fprintln(out)
		if defaultUsage != nil {
			defaultUsage()
		}
	}
}

func main() {
	flag.Parse()
	if maybePrintVersion() {
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(dispatch(args))
}

func dispatch(args []string) int {
	switch args[0] {
	case "encrypt":
		return runEncrypt(args[1:])
	case "decrypt":
		return runDecrypt(args[1:])
	case "validate":
		return runValidate(args[1:])
	case "pipeline":
		return runPipeline(args[1:])
	case "ops":
		return runOps(args[1:])
	case "config":
		return runConfig(args[1:])
	case "version":
		return runVersion(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		flag.Usage()
		return 2
	}
}
