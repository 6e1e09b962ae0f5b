package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/VladLeus/scytale-cipher/internal/cipher"
	"github.com/VladLeus/scytale-cipher/internal/config"
	"github.com/VladLeus/scytale-cipher/internal/logging"
)

func runPipeline(args []string) int {
	fs := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts commonOptions
	opts.register(fs)
	preset := fs.String("preset", "", "name of the configured preset to run")
	reverse := fs.Bool("reverse", false, "run the preset backwards to decrypt")
	// Steps without their own alphabet or policy use the resolved -alphabet
	// and -policy values.
	alphabet := fs.String("alphabet", "", "alphabet for steps that set none (default from config)")
	policy := fs.String("policy", "", "policy for steps that set none (default from config)")
	list := fs.Bool("list", false, "list configured presets and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "pipeline takes no positional arguments")
		return 2
	}

	cfg, err := opts.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	opts.apply(fs, &cfg)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "alphabet":
			cfg.Alphabet = *alphabet
		case "policy":
			cfg.Policy = *policy
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		return 1
	}

	if *list {
		names := make([]string, 0, len(cfg.Presets))
		for name := range cfg.Presets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			p := cfg.Presets[name]
			fmt.Fprintf(os.Stdout, "%s\t%d steps\t%s\n", name, len(p.Steps), p.Description)
		}
		return 0
	}

	name := strings.TrimSpace(*preset)
	if name == "" {
		fmt.Fprintln(os.Stderr, "--preset is required")
		return 2
	}
	p, ok := cfg.Presets[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown preset: %s\n", name)
		return 2
	}

	logger, err := openAuditLogger(cfg.AuditLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Close()
	logger = logger.WithComponent(productName + "ctl.pipeline")

	pipeline := resolveSteps(p.Pipeline(), cfg)
	if *reverse {
		pipeline, err = pipeline.Reverse()
		if err != nil {
			fmt.Fprintf(os.Stderr, "reverse preset %s: %v\n", name, err)
			return 1
		}
	}

	input, err := opts.readInput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return 1
	}
	if cfg.Fold {
		input = cipher.Normalize(input)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := pipeline.Execute(ctx, []byte(input))
	if err != nil {
		_ = logger.Emit(logging.AuditEvent{
			EventType: logging.EventPipelineRun,
			Decision:  logging.DecisionDeny,
			Reason:    err.Error(),
			Metadata:  map[string]any{"preset": name, "reverse": *reverse},
		})
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	output := string(result)
	if err := opts.writeOutput(cfg, output); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}

	_ = logger.Emit(logging.AuditEvent{
		EventType: logging.EventPipelineRun,
		Decision:  logging.DecisionAllow,
		Metadata: map[string]any{
			"preset":        name,
			"reverse":       *reverse,
			"steps":         len(pipeline.Operations),
			"input_length":  utf8.RuneCountInString(input),
			"output_length": utf8.RuneCountInString(output),
		},
	})
	return 0
}

// resolveSteps fills each step's missing alphabet and policy from cfg and,
// when folding, folds step alphabets the same way as the input. The preset's
// own parameter maps are left untouched.
func resolveSteps(p *cipher.Pipeline, cfg config.Config) *cipher.Pipeline {
	resolved := &cipher.Pipeline{
		Operations: make([]cipher.OperationConfig, len(p.Operations)),
		Reversible: p.Reversible,
	}
	for i, step := range p.Operations {
		params := make(map[string]interface{}, len(step.Parameters)+2)
		for k, v := range step.Parameters {
			params[k] = v
		}
		if _, ok := params[cipher.ParamAlphabet]; !ok {
			params[cipher.ParamAlphabet] = cfg.Alphabet
		}
		if _, ok := params[cipher.ParamPolicy]; !ok {
			params[cipher.ParamPolicy] = cfg.Policy
		}
		if a, ok := params[cipher.ParamAlphabet].(string); ok && cfg.Fold {
			params[cipher.ParamAlphabet] = cipher.Normalize(a)
		}
		resolved.Operations[i] = cipher.OperationConfig{Name: step.Name, Parameters: params}
	}
	return resolved
}
