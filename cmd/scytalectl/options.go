package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/VladLeus/scytale-cipher/internal/config"
	"github.com/VladLeus/scytale-cipher/internal/logging"
	"github.com/VladLeus/scytale-cipher/internal/textio"
)

// commonOptions are the flags shared by every command that reads text.
// Flags the user did not set fall back to the resolved configuration.
type commonOptions struct {
	configPath string
	fold       bool
	charset    string
	auditLog   string
	text       string
	in         string
	out        string
}

func (o *commonOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "path to a TOML config file (skips ~/.scytale and ./scytale.toml)")
	fs.BoolVar(&o.fold, "fold", true, "compose to NFC and upper-case text and alphabet before use")
	fs.StringVar(&o.charset, "charset", textio.DefaultCharset, "charset of input and output files (utf-8, windows-1251, koi8-u, ...)")
	fs.StringVar(&o.auditLog, "audit-log", "", "append JSON audit events to this file")
	fs.StringVar(&o.text, "text", "", "input text (takes precedence over -in)")
	fs.StringVar(&o.in, "in", "", "input file (default stdin)")
	fs.StringVar(&o.out, "out", "", "output file (default stdout)")
}

func (o *commonOptions) load() (config.Config, error) {
	if strings.TrimSpace(o.configPath) != "" {
		return config.LoadFile(o.configPath)
	}
	return config.Load()
}

// apply copies explicitly set common flags over cfg.
func (o *commonOptions) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "fold":
			cfg.Fold = o.fold
		case "charset":
			cfg.Charset = o.charset
		case "audit-log":
			cfg.AuditLog = o.auditLog
		}
	})
}

func (o *commonOptions) readInput(cfg config.Config) (string, error) {
	if o.text != "" {
		return o.text, nil
	}
	if o.in == "" || o.in == "-" {
		return textio.Read(os.Stdin, cfg.Charset)
	}
	return textio.ReadFile(o.in, cfg.Charset)
}

func (o *commonOptions) writeOutput(cfg config.Config, text string) error {
	if o.out == "" || o.out == "-" {
		return textio.Write(os.Stdout, text+"\n", cfg.Charset)
	}
	return textio.WriteFile(o.out, text, cfg.Charset)
}

func openAuditLogger(path string) (*logging.AuditLogger, error) {
	if strings.TrimSpace(path) == "" {
		return logging.Discard(productName + "ctl"), nil
	}
	logger, err := logging.NewAuditLogger(productName+"ctl", logging.WithoutStderr(), logging.WithFile(path))
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	return logger, nil
}
