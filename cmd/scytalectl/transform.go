package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/VladLeus/scytale-cipher/internal/cipher"
	"github.com/VladLeus/scytale-cipher/internal/config"
	"github.com/VladLeus/scytale-cipher/internal/logging"
)

// cipherOptions extends the common flags with the cipher parameters.
type cipherOptions struct {
	commonOptions
	key      int
	alphabet string
	policy   string
}

func (o *cipherOptions) register(fs *flag.FlagSet) {
	o.commonOptions.register(fs)
	fs.IntVar(&o.key, "key", 0, "number of grid columns (default from config)")
	fs.StringVar(&o.alphabet, "alphabet", "", "alphabet to operate over (default from config)")
	fs.StringVar(&o.policy, "policy", "", "strict rejects foreign characters, permissive drops them (default from config)")
}

func (o *cipherOptions) resolve(fs *flag.FlagSet) (config.Config, error) {
	cfg, err := o.load()
	if err != nil {
		return config.Config{}, err
	}
	o.apply(fs, &cfg)
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "key":
			cfg.Key = o.key
		case "alphabet":
			cfg.Alphabet = o.alphabet
		case "policy":
			cfg.Policy = o.policy
		}
	})
	return cfg, nil
}

type direction int

const (
	directionEncrypt direction = iota
	directionDecrypt
)

func (d direction) String() string {
	if d == directionDecrypt {
		return "decrypt"
	}
	return "encrypt"
}

func (d direction) event() logging.EventType {
	if d == directionDecrypt {
		return logging.EventDecrypt
	}
	return logging.EventEncrypt
}

func runEncrypt(args []string) int {
	return runTransform(directionEncrypt, args)
}

func runDecrypt(args []string) int {
	return runTransform(directionDecrypt, args)
}

func runTransform(dir direction, args []string) int {
	fs := flag.NewFlagSet(dir.String(), flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts cipherOptions
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "%s takes no positional arguments\n", dir)
		return 2
	}

	cfg, err := opts.resolve(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger, err := openAuditLogger(cfg.AuditLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Close()

	input, err := opts.readInput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return 1
	}

	alphabet := cfg.Alphabet
	if cfg.Fold {
		input = cipher.Normalize(input)
		alphabet = cipher.Normalize(alphabet)
	}

	policy, err := cipher.ParsePolicy(cfg.Policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	s, err := cipher.New(cfg.Key, alphabet, policy)
	if err != nil {
		emitDenied(logger, dir.String(), cfg, err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var output string
	if dir == directionDecrypt {
		output, err = s.Decrypt(input)
	} else {
		output, err = s.Encrypt(input)
	}
	if err != nil {
		emitDenied(logger, dir.String(), cfg, err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := opts.writeOutput(cfg, output); err != nil {
		fmt.Fprintf(os.Stderr, "write output: %v\n", err)
		return 1
	}

	_ = logger.Emit(logging.AuditEvent{
		EventType: dir.event(),
		Decision:  logging.DecisionAllow,
		Metadata: map[string]any{
			"key":           cfg.Key,
			"policy":        string(policy),
			"alphabet_size": s.Alphabet().Len(),
			"input_length":  utf8.RuneCountInString(input),
			"output_length": utf8.RuneCountInString(output),
		},
	})
	return 0
}

func emitDenied(logger *logging.AuditLogger, operation string, cfg config.Config, err error) {
	_ = logger.Emit(logging.AuditEvent{
		EventType: logging.EventValidationFailed,
		Decision:  logging.DecisionDeny,
		Reason:    err.Error(),
		Metadata: map[string]any{
			"operation": operation,
			"key":       cfg.Key,
			"policy":    cfg.Policy,
		},
	})
}

func runValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var opts cipherOptions
	opts.register(fs)
	ciphertext := fs.Bool("ciphertext", false, "report the input as ciphertext")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "validate takes no positional arguments")
		return 2
	}

	cfg, err := opts.resolve(fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}

	logger, err := openAuditLogger(cfg.AuditLog)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer logger.Close()

	input, err := opts.readInput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		return 1
	}

	alphabet := cfg.Alphabet
	if cfg.Fold {
		input = cipher.Normalize(input)
		alphabet = cipher.Normalize(alphabet)
	}

	err = cipher.Validate(input, cfg.Key, cipher.NewAlphabet(alphabet))
	var charErr *cipher.InvalidCharacterError
	if errors.As(err, &charErr) {
		charErr.Ciphertext = *ciphertext
	}
	if err != nil {
		emitDenied(logger, "validate", cfg, err)
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Fprintln(os.Stdout, "ok")
	return 0
}
