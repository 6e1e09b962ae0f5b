package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/VladLeus/scytale-cipher/internal/config"
	"github.com/VladLeus/scytale-cipher/internal/logging"
	"github.com/VladLeus/scytale-cipher/internal/textio"
)

func runConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "config subcommand required")
		return 2
	}

	switch args[0] {
	case "print":
		return runConfigPrint(args[1:])
	case "check":
		return runConfigCheck(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand: %s\n", args[0])
		return 2
	}
}

func loadConfigFlag(name string, args []string) (config.Config, int) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts commonOptions
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "%s takes no positional arguments\n", name)
		return config.Config{}, 2
	}
	cfg, err := opts.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return config.Config{}, 1
	}
	return cfg, 0
}

func runConfigPrint(args []string) int {
	cfg, code := loadConfigFlag("config print", args)
	if code != 0 {
		return code
	}

	printResolvedConfig(os.Stdout, cfg)
	return 0
}

func runConfigCheck(args []string) int {
	cfg, code := loadConfigFlag("config check", args)
	if code != 0 {
		return code
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}
	if _, err := textio.Canonical(cfg.Charset); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}

	logger, err := openAuditLogger(cfg.AuditLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Close()
	_ = logger.Emit(logging.AuditEvent{
		EventType: logging.EventConfigLoaded,
		Decision:  logging.DecisionInfo,
		Metadata:  map[string]any{"key": cfg.Key, "policy": cfg.Policy, "presets": len(cfg.Presets)},
	})

	fmt.Fprintln(os.Stdout, "ok")
	return 0
}

func printResolvedConfig(out io.Writer, cfg config.Config) {
	fmt.Fprintf(out, "key: %d\n", cfg.Key)
	fmt.Fprintf(out, "alphabet: %q\n", cfg.Alphabet)
	fmt.Fprintf(out, "policy: %s\n", cfg.Policy)
	fmt.Fprintf(out, "fold: %t\n", cfg.Fold)
	fmt.Fprintf(out, "charset: %s\n", cfg.Charset)
	fmt.Fprintf(out, "audit_log: %s\n", cfg.AuditLog)
	fmt.Fprintln(out, "presets:")

	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		preset := cfg.Presets[name]
		fmt.Fprintf(out, "  %s:\n", name)
		if preset.Description != "" {
			fmt.Fprintf(out, "    description: %s\n", preset.Description)
		}
		for i, step := range preset.Steps {
			fmt.Fprintf(out, "    step %d: %s %v\n", i, step.Name, step.Parameters)
		}
	}
}
